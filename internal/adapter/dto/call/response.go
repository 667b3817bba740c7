package call

import (
	"time"

	"github.com/callops-team/call-assistant/internal/domain/entities"
)

// StartCallResponse represents the response after starting a web call
type StartCallResponse struct {
	CallID      string `json:"call_id"`
	AgentID     string `json:"agent_id"`
	AccessToken string `json:"access_token"`
	Status      string `json:"status"`
}

// CallResponse represents a call record in responses
type CallResponse struct {
	CallID           string                 `json:"call_id"`
	AgentID          string                 `json:"agent_id"`
	CallType         string                 `json:"call_type"`
	Status           string                 `json:"status"`
	DriverName       string                 `json:"driver_name,omitempty"`
	LoadNumber       string                 `json:"load_number,omitempty"`
	PhoneNumber      string                 `json:"phone_number,omitempty"`
	RawTranscript    string                 `json:"raw_transcript,omitempty"`
	ProcessedSummary string                 `json:"processed_summary,omitempty"`
	CallAnalysis     map[string]interface{} `json:"call_analysis,omitempty"`
	RecordingURL     string                 `json:"recording_url,omitempty"`
	StartedAt        *time.Time             `json:"started_at,omitempty"`
	EndedAt          *time.Time             `json:"ended_at,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
}

// CallStatusResponse reports local and vendor views of a call's status
type CallStatusResponse struct {
	CallID       string     `json:"call_id"`
	Status       string     `json:"status"`
	VendorStatus string     `json:"vendor_status,omitempty"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
}

// TranscriptResponse represents a processed transcript in responses
type TranscriptResponse struct {
	CallID           string   `json:"call_id"`
	Summary          string   `json:"summary"`
	KeyPoints        []string `json:"key_points"`
	Sentiment        string   `json:"sentiment"`
	Duration         string   `json:"duration"`
	ParticipantCount int      `json:"participant_count"`
}

// FromCallRecord maps a call record entity to its response shape
func FromCallRecord(record *entities.CallRecord) *CallResponse {
	return &CallResponse{
		CallID:           record.CallID,
		AgentID:          record.AgentID,
		CallType:         string(record.CallType),
		Status:           string(record.Status),
		DriverName:       record.DriverName,
		LoadNumber:       record.LoadNumber,
		PhoneNumber:      record.PhoneNumber,
		RawTranscript:    record.RawTranscript,
		ProcessedSummary: record.ProcessedSummary,
		CallAnalysis:     record.Analysis(),
		RecordingURL:     record.RecordingURL,
		StartedAt:        record.StartedAt,
		EndedAt:          record.EndedAt,
		CreatedAt:        record.CreatedAt,
	}
}

// FromProcessedTranscript maps a processed transcript to its response shape
func FromProcessedTranscript(callID string, processed *entities.ProcessedTranscript) *TranscriptResponse {
	return &TranscriptResponse{
		CallID:           callID,
		Summary:          processed.Summary,
		KeyPoints:        processed.KeyPoints,
		Sentiment:        processed.Sentiment,
		Duration:         processed.Duration,
		ParticipantCount: processed.ParticipantCount,
	}
}
