package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/callops-team/call-assistant/errors"
	"github.com/callops-team/call-assistant/internal/domain/entities"
	callUsecase "github.com/callops-team/call-assistant/internal/usecase/call"
	"github.com/callops-team/call-assistant/pkg/retell"
)

// signatureHeader carries the vendor's HMAC over the raw request body
const signatureHeader = "x-retell-signature"

// WebhookHandler handles Retell webhook events
type WebhookHandler struct {
	callService   callUsecase.Service
	webhookSecret string
	logger        *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(callService callUsecase.Service, webhookSecret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		callService:   callService,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// HandleRetellWebhook verifies and processes a Retell webhook delivery.
// Signature verification is skipped when no webhook secret is configured.
func (h *WebhookHandler) HandleRetellWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if h.webhookSecret != "" {
		signature := c.Request().Header.Get(signatureHeader)
		if !retell.VerifyHMAC(h.webhookSecret, body, signature) {
			h.logger.Warn("webhook signature rejected",
				zap.String("request_id", getRequestID(c)),
				zap.Int("body_bytes", len(body)),
			)
			return HandleError(h.logger, c, errors.ErrInvalidWebhookSignature())
		}
	}

	var event entities.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	h.logger.Info("webhook received",
		zap.String("event_type", event.EventType),
		zap.String("call_id", event.StringField("call_id")),
	)

	result, err := h.callService.HandleWebhookEvent(c.Request().Context(), &event)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrWebhookProcessingFailed(event.EventType, err))
	}

	return c.JSON(http.StatusOK, result)
}
