package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/callops-team/call-assistant/internal/domain/entities"
	callUsecase "github.com/callops-team/call-assistant/internal/usecase/call"
	"github.com/callops-team/call-assistant/pkg/retell"
)

type fakeCallService struct {
	events     []entities.WebhookEvent
	err        error
	result     *callUsecase.WebhookResult
	startInput *callUsecase.StartCallInput
	startOut   *callUsecase.StartCallOutput
	transcript *entities.ProcessedTranscript
}

func (f *fakeCallService) StartCall(_ context.Context, input callUsecase.StartCallInput) (*callUsecase.StartCallOutput, error) {
	f.startInput = &input
	if f.startOut == nil {
		return nil, f.err
	}
	return f.startOut, nil
}

func (f *fakeCallService) HandleWebhookEvent(_ context.Context, event *entities.WebhookEvent) (*callUsecase.WebhookResult, error) {
	f.events = append(f.events, *event)
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &callUsecase.WebhookResult{Status: event.EventType, CallID: event.StringField("call_id")}, nil
}

func (f *fakeCallService) GetCall(context.Context, string) (*entities.CallRecord, error) {
	return nil, entities.ErrCallNotFound
}

func (f *fakeCallService) GetCallStatus(context.Context, string) (*callUsecase.CallStatusOutput, error) {
	return nil, entities.ErrCallNotFound
}

func (f *fakeCallService) SyncCall(context.Context, string) (*entities.CallRecord, error) {
	return nil, entities.ErrCallNotFound
}

func (f *fakeCallService) GetProcessedTranscript(context.Context, string) (*entities.ProcessedTranscript, error) {
	if f.transcript != nil {
		return f.transcript, nil
	}
	return nil, entities.ErrCallNotFound
}

func (f *fakeCallService) ListCallsByAgent(context.Context, string, int) ([]entities.CallRecord, error) {
	return nil, nil
}

func postWebhook(h *WebhookHandler, body, signature string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/webhook/retell", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set(signatureHeader, signature)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = h.HandleRetellWebhook(c)
	return rec
}

func TestHandleRetellWebhook_ValidSignature(t *testing.T) {
	svc := &fakeCallService{}
	h := NewWebhookHandler(svc, "secret", zap.NewNop())

	body := `{"event_type":"call_started","data":{"call_id":"call_1","agent_id":"agent_1"}}`
	rec := postWebhook(h, body, retell.Sign("secret", []byte(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if len(svc.events) != 1 || svc.events[0].EventType != "call_started" {
		t.Fatalf("event not forwarded: %+v", svc.events)
	}
}

func TestHandleRetellWebhook_InvalidSignature(t *testing.T) {
	svc := &fakeCallService{}
	h := NewWebhookHandler(svc, "secret", zap.NewNop())

	body := `{"event_type":"call_started","data":{"call_id":"call_1"}}`
	rec := postWebhook(h, body, "deadbeef")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401: %s", rec.Code, rec.Body.String())
	}
	if len(svc.events) != 0 {
		t.Fatalf("event should not be forwarded on bad signature")
	}
}

func TestHandleRetellWebhook_NoSecretSkipsVerification(t *testing.T) {
	svc := &fakeCallService{}
	h := NewWebhookHandler(svc, "", zap.NewNop())

	body := `{"event_type":"call_ended","data":{"call_id":"call_2"}}`
	rec := postWebhook(h, body, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if len(svc.events) != 1 {
		t.Fatalf("event not forwarded without secret")
	}
}

func TestHandleRetellWebhook_CallStartedReturnsAgentConfig(t *testing.T) {
	promptID := uuid.New()
	svc := &fakeCallService{
		result: &callUsecase.WebhookResult{
			Status: "call_started",
			CallID: "call_1",
			AgentConfig: &callUsecase.AgentConfig{
				InitialMessage: "Hello, this is dispatch calling about your load.",
				PromptID:       &promptID,
			},
		},
	}
	h := NewWebhookHandler(svc, "", zap.NewNop())

	body := `{"event_type":"call_started","data":{"call_id":"call_1","agent_id":"agent_1"}}`
	rec := postWebhook(h, body, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var ack struct {
		Status      string `json:"status"`
		AgentConfig *struct {
			InitialMessage string `json:"initial_message"`
			PromptID       string `json:"prompt_id"`
		} `json:"agent_config"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &ack); err != nil {
		t.Fatalf("failed to decode acknowledgement: %v", err)
	}
	if ack.Status != "call_started" || ack.AgentConfig == nil {
		t.Fatalf("acknowledgement missing agent config: %s", rec.Body.String())
	}
	if ack.AgentConfig.PromptID != promptID.String() {
		t.Fatalf("prompt id = %q, want %q", ack.AgentConfig.PromptID, promptID)
	}
	if !strings.Contains(ack.AgentConfig.InitialMessage, "dispatch") {
		t.Fatalf("unexpected initial message: %q", ack.AgentConfig.InitialMessage)
	}
}

func TestHandleRetellWebhook_MalformedBody(t *testing.T) {
	svc := &fakeCallService{}
	h := NewWebhookHandler(svc, "", zap.NewNop())

	rec := postWebhook(h, "{not json", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleRetellWebhook_ProcessingError(t *testing.T) {
	svc := &fakeCallService{err: entities.ErrMissingCallID}
	h := NewWebhookHandler(svc, "", zap.NewNop())

	body := `{"event_type":"call_started","data":{}}`
	rec := postWebhook(h, body, "")

	if rec.Code == http.StatusOK {
		t.Fatalf("expected error status, got 200")
	}
}
