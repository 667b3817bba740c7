package call

import (
	"context"

	"github.com/callops-team/call-assistant/internal/domain/entities"
)

// Service defines the interface for call use case
type Service interface {
	// StartCall creates a throwaway agent for the request and opens a web call
	StartCall(ctx context.Context, input StartCallInput) (*StartCallOutput, error)

	// HandleWebhookEvent routes a verified webhook event by type and returns
	// the acknowledgement sent back to the vendor; call_started answers with
	// the agent configuration derived from the agent's active prompt
	HandleWebhookEvent(ctx context.Context, event *entities.WebhookEvent) (*WebhookResult, error)

	// GetCall retrieves a call record, falling back to the vendor when the
	// call is unknown locally
	GetCall(ctx context.Context, callID string) (*entities.CallRecord, error)

	// GetCallStatus reports the call status, reconciling with the vendor when
	// the local record looks stale
	GetCallStatus(ctx context.Context, callID string) (*CallStatusOutput, error)

	// SyncCall pulls the vendor's call object and refreshes the local record
	SyncCall(ctx context.Context, callID string) (*entities.CallRecord, error)

	// GetProcessedTranscript reprocesses the stored transcript on demand
	GetProcessedTranscript(ctx context.Context, callID string) (*entities.ProcessedTranscript, error)

	// ListCallsByAgent lists recent calls handled by an agent
	ListCallsByAgent(ctx context.Context, agentID string, limit int) ([]entities.CallRecord, error)
}
