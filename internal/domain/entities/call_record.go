package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CallStatus tracks the lifecycle of a call
type CallStatus string

const (
	CallStatusActive     CallStatus = "active"     // Call in progress
	CallStatusRegistered CallStatus = "registered" // Web call created, not yet connected
	CallStatusCompleted  CallStatus = "completed"  // Call ended, transcript may follow
	CallStatusFailed     CallStatus = "failed"     // Call could not complete
)

// CallType distinguishes phone calls from browser-based web calls
type CallType string

const (
	CallTypePhone CallType = "phone_call"
	CallTypeWeb   CallType = "web_call"
)

// CallRecord is the stored record of a single voice call and its lifecycle
type CallRecord struct {
	ID               uuid.UUID                                  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CallID           string                                     `json:"call_id" gorm:"type:varchar(255);not null;uniqueIndex"`
	AgentID          string                                     `json:"agent_id" gorm:"type:varchar(255);not null;index"`
	PromptID         *uuid.UUID                                 `json:"prompt_id,omitempty" gorm:"type:uuid;index"`
	RawTranscript    string                                     `json:"raw_transcript" gorm:"type:text"`
	ProcessedSummary string                                     `json:"processed_summary,omitempty" gorm:"type:text"`
	CallAnalysis     datatypes.JSONType[map[string]interface{}] `json:"call_analysis,omitempty" gorm:"type:jsonb"`
	RecordingURL     string                                     `json:"recording_url,omitempty" gorm:"type:text"`
	AccessToken      string                                     `json:"access_token,omitempty" gorm:"type:text"`
	CallType         CallType                                   `json:"call_type" gorm:"type:varchar(50);default:'phone_call'"`
	Status           CallStatus                                 `json:"status" gorm:"type:varchar(50);not null;index;default:'active'"`
	DriverName       string                                     `json:"driver_name,omitempty" gorm:"type:varchar(255)"`
	LoadNumber       string                                     `json:"load_number,omitempty" gorm:"type:varchar(100)"`
	PhoneNumber      string                                     `json:"phone_number,omitempty" gorm:"type:varchar(50)"`
	LLMID            string                                     `json:"llm_id,omitempty" gorm:"type:varchar(255)"`
	StartedAt        *time.Time                                 `json:"started_at,omitempty" gorm:"type:timestamp"`
	EndedAt          *time.Time                                 `json:"ended_at,omitempty" gorm:"type:timestamp"`
	CreatedAt        time.Time                                  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time                                  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (CallRecord) TableName() string {
	return "call_records"
}

// NewCallRecord creates a call record for a call that just started
func NewCallRecord(callID, agentID string, callType CallType) *CallRecord {
	now := time.Now()
	return &CallRecord{
		ID:        uuid.New(),
		CallID:    callID,
		AgentID:   agentID,
		CallType:  callType,
		Status:    CallStatusActive,
		StartedAt: &now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsTerminal reports whether the call has reached a final state
func (r *CallRecord) IsTerminal() bool {
	return r.Status == CallStatusCompleted || r.Status == CallStatusFailed
}

// MarkAsCompleted closes the call record
func (r *CallRecord) MarkAsCompleted() {
	r.Status = CallStatusCompleted
	now := time.Now()
	r.EndedAt = &now
	r.UpdatedAt = now
}

// MarkAsFailed marks the call as failed
func (r *CallRecord) MarkAsFailed() {
	r.Status = CallStatusFailed
	now := time.Now()
	r.EndedAt = &now
	r.UpdatedAt = now
}

// AttachAnalysis stores the vendor transcript and analysis on the record and
// closes it. The processed summary is kept alongside the raw transcript so
// list views do not have to reprocess.
func (r *CallRecord) AttachAnalysis(transcript string, analysis map[string]interface{}, recordingURL, summary string) {
	r.RawTranscript = transcript
	r.CallAnalysis = datatypes.NewJSONType(analysis)
	r.RecordingURL = recordingURL
	r.ProcessedSummary = summary
	r.MarkAsCompleted()
}

// Analysis returns the stored call analysis map, nil when absent
func (r *CallRecord) Analysis() map[string]interface{} {
	return r.CallAnalysis.Data()
}
