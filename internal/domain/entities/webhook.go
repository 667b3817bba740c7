package entities

import (
	"encoding/json"
	"fmt"
)

// Webhook event types sent by the voice platform
const (
	WebhookEventCallStarted  = "call_started"
	WebhookEventCallEnded    = "call_ended"
	WebhookEventCallAnalyzed = "call_analyzed"
)

// WebhookEvent is the envelope for every voice-platform webhook delivery
type WebhookEvent struct {
	EventType string                 `json:"event_type"`
	Data      map[string]interface{} `json:"data"`
}

// CallStartedData is the payload of a call_started event
type CallStartedData struct {
	CallID         string `json:"call_id"`
	AgentID        string `json:"agent_id"`
	CallType       string `json:"call_type"`
	CustomerNumber string `json:"customer_number,omitempty"`
}

// CallAnalysisData is the payload of a call_analyzed event
type CallAnalysisData struct {
	CallID       string                 `json:"call_id"`
	CallAnalysis map[string]interface{} `json:"call_analysis"`
	Transcript   string                 `json:"transcript"`
	RecordingURL string                 `json:"recording_url,omitempty"`
}

// DecodeData unmarshals the event's loosely typed data map into a typed
// payload struct.
func (e *WebhookEvent) DecodeData(v interface{}) error {
	raw, err := json.Marshal(e.Data)
	if err != nil {
		return fmt.Errorf("failed to re-encode webhook data: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode webhook data: %w", err)
	}
	return nil
}

// StringField reads an optional string field from the raw data map
func (e *WebhookEvent) StringField(key string) string {
	if v, ok := e.Data[key].(string); ok {
		return v
	}
	return ""
}
