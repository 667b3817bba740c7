package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/callops-team/call-assistant/internal/domain/entities"
	callUsecase "github.com/callops-team/call-assistant/internal/usecase/call"
	"github.com/callops-team/call-assistant/pkg/validator"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	return e
}

func TestStartCallHandler(t *testing.T) {
	svc := &fakeCallService{
		startOut: &callUsecase.StartCallOutput{
			CallID:      "call_1",
			AgentID:     "agent_1",
			AccessToken: "tok",
			Status:      entities.CallStatusRegistered,
		},
	}
	h := NewCallHandler(svc, zap.NewNop())
	e := newEcho()

	body := `{"driver_name":"Mike","phone_number":"+15550100","load_number":"LD-1","agent_prompt":"Confirm ETA"}`
	req := httptest.NewRequest(http.MethodPost, "/api/call/start", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.StartCall(e.NewContext(req, rec)); err != nil {
		t.Fatalf("StartCall handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	if svc.startInput == nil || svc.startInput.DriverName != "Mike" || svc.startInput.LoadNumber != "LD-1" {
		t.Fatalf("input not forwarded: %+v", svc.startInput)
	}

	var resp struct {
		Data struct {
			CallID      string `json:"call_id"`
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.CallID != "call_1" || resp.Data.AccessToken != "tok" {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
}

func TestStartCallHandler_ValidationFailure(t *testing.T) {
	svc := &fakeCallService{}
	h := NewCallHandler(svc, zap.NewNop())
	e := newEcho()

	// missing driver_name and an invalid phone number
	body := `{"phone_number":"not-a-number","load_number":"LD-1","agent_prompt":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/api/call/start", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	_ = h.StartCall(e.NewContext(req, rec))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	if svc.startInput != nil {
		t.Fatalf("service should not be called on validation failure")
	}
}

func TestGetTranscriptHandler(t *testing.T) {
	svc := &fakeCallService{
		transcript: &entities.ProcessedTranscript{
			Summary:          "Driver confirmed delivery.",
			KeyPoints:        []string{"Question: What is the ETA?"},
			Sentiment:        entities.SentimentPositive,
			Duration:         "0:03:00",
			ParticipantCount: 2,
		},
	}
	h := NewCallHandler(svc, zap.NewNop())
	e := newEcho()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/calls/:call_id/transcript")
	c.SetParamNames("call_id")
	c.SetParamValues("call_1")

	if err := h.GetTranscript(c); err != nil {
		t.Fatalf("GetTranscript handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Driver confirmed delivery.") {
		t.Fatalf("transcript not in response: %s", rec.Body.String())
	}
}

func TestGetTranscriptHandler_NotFound(t *testing.T) {
	h := NewCallHandler(&fakeCallService{}, zap.NewNop())
	e := newEcho()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("call_id")
	c.SetParamValues("missing")

	_ = h.GetTranscript(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}
