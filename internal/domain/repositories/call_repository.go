package repositories

import (
	"context"

	"github.com/callops-team/call-assistant/internal/domain/entities"
)

// CallRepository defines the interface for call record data access
type CallRepository interface {
	// Create creates a new call record
	Create(ctx context.Context, record *entities.CallRecord) error

	// FindByCallID finds a call record by vendor call ID
	FindByCallID(ctx context.Context, callID string) (*entities.CallRecord, error)

	// Save upserts a call record keyed on vendor call ID
	Save(ctx context.Context, record *entities.CallRecord) error

	// UpdateStatus updates only the call status
	UpdateStatus(ctx context.Context, callID string, status entities.CallStatus) error

	// ListByAgentID lists call records for an agent, newest first
	ListByAgentID(ctx context.Context, agentID string, limit int) ([]entities.CallRecord, error)

	// ListByStatus lists call records in a given status, oldest first
	ListByStatus(ctx context.Context, status entities.CallStatus, limit int) ([]entities.CallRecord, error)
}
