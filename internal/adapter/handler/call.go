package handler

import (
	stdErrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/callops-team/call-assistant/errors"
	callDto "github.com/callops-team/call-assistant/internal/adapter/dto/call"
	"github.com/callops-team/call-assistant/internal/domain/entities"
	callUsecase "github.com/callops-team/call-assistant/internal/usecase/call"
)

// CallHandler handles call lifecycle endpoints
type CallHandler struct {
	callService callUsecase.Service
	logger      *zap.Logger
}

// NewCallHandler creates a new call handler
func NewCallHandler(callService callUsecase.Service, logger *zap.Logger) *CallHandler {
	return &CallHandler{
		callService: callService,
		logger:      logger,
	}
}

// StartCall creates an agent for the request and opens a web call
func (h *CallHandler) StartCall(c echo.Context) error {
	var req callDto.StartCallRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	out, err := h.callService.StartCall(c.Request().Context(), callUsecase.StartCallInput{
		DriverName:  req.DriverName,
		PhoneNumber: req.PhoneNumber,
		LoadNumber:  req.LoadNumber,
		AgentPrompt: req.AgentPrompt,
		AgentLogic:  req.AgentLogic,
	})
	if err != nil {
		return HandleError(h.logger, c, errors.ErrCallStartFailed(err))
	}

	return HandleSuccess(h.logger, c, &callDto.StartCallResponse{
		CallID:      out.CallID,
		AgentID:     out.AgentID,
		AccessToken: out.AccessToken,
		Status:      string(out.Status),
	})
}

// GetCall retrieves a call record by vendor call ID
func (h *CallHandler) GetCall(c echo.Context) error {
	callID := c.Param("call_id")

	record, err := h.callService.GetCall(c.Request().Context(), callID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrCallNotFound) {
			return HandleError(h.logger, c, errors.ErrCallNotFound(callID))
		}
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, callDto.FromCallRecord(record))
}

// GetCallStatus reports the call status, reconciled with the vendor
func (h *CallHandler) GetCallStatus(c echo.Context) error {
	callID := c.Param("call_id")

	status, err := h.callService.GetCallStatus(c.Request().Context(), callID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrCallNotFound) {
			return HandleError(h.logger, c, errors.ErrCallNotFound(callID))
		}
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, &callDto.CallStatusResponse{
		CallID:       status.CallID,
		Status:       string(status.Status),
		VendorStatus: status.VendorStatus,
		StartedAt:    status.StartedAt,
		EndedAt:      status.EndedAt,
	})
}

// GetTranscript reprocesses and returns the call's structured transcript
func (h *CallHandler) GetTranscript(c echo.Context) error {
	callID := c.Param("call_id")

	processed, err := h.callService.GetProcessedTranscript(c.Request().Context(), callID)
	if err != nil {
		switch {
		case stdErrors.Is(err, entities.ErrCallNotFound):
			return HandleError(h.logger, c, errors.ErrCallNotFound(callID))
		case stdErrors.Is(err, entities.ErrTranscriptNotReady):
			return HandleError(h.logger, c, errors.ErrTranscriptNotAvailable(callID))
		default:
			return HandleError(h.logger, c, err)
		}
	}

	return HandleSuccess(h.logger, c, callDto.FromProcessedTranscript(callID, processed))
}

// SyncCall refreshes the local record from the vendor's call object
func (h *CallHandler) SyncCall(c echo.Context) error {
	callID := c.Param("call_id")

	record, err := h.callService.SyncCall(c.Request().Context(), callID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrCallNotFound) {
			return HandleError(h.logger, c, errors.ErrCallNotFound(callID))
		}
		return HandleError(h.logger, c, errors.ErrCallSyncFailed(callID, err))
	}

	return HandleSuccess(h.logger, c, callDto.FromCallRecord(record))
}

// ListCalls lists recent calls for an agent
func (h *CallHandler) ListCalls(c echo.Context) error {
	var req callDto.ListCallsRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.Limit == 0 {
		req.Limit = 20
	}

	records, err := h.callService.ListCallsByAgent(c.Request().Context(), req.AgentID, req.Limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	out := make([]*callDto.CallResponse, 0, len(records))
	for i := range records {
		out = append(out, callDto.FromCallRecord(&records[i]))
	}
	return HandleSuccess(h.logger, c, out)
}
