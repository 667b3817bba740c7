package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/callops-team/call-assistant/internal/domain/entities"
)

// PromptRepository defines the interface for conversation prompt data access
type PromptRepository interface {
	// Create creates a new prompt
	Create(ctx context.Context, prompt *entities.ConversationPrompt) error

	// FindByID finds a prompt by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ConversationPrompt, error)

	// FindActiveByAgentID finds the active prompt linked to an agent
	FindActiveByAgentID(ctx context.Context, agentID string) (*entities.ConversationPrompt, error)

	// LinkToAgent activates a prompt for an agent, deactivating any other link
	LinkToAgent(ctx context.Context, agentID string, promptID uuid.UUID) error
}
