package agent

import (
	"context"

	"github.com/callops-team/call-assistant/pkg/retell"
)

// Service defines the interface for agent management
type Service interface {
	// CreateAgent provisions a voice agent backed by a fresh LLM config
	CreateAgent(ctx context.Context, input CreateAgentInput) (*retell.Agent, error)

	// ListAgents lists all agents on the vendor account
	ListAgents(ctx context.Context) ([]retell.Agent, error)

	// GetAgent retrieves a single agent
	GetAgent(ctx context.Context, agentID string) (*retell.Agent, error)

	// UpdateAgent patches agent settings
	UpdateAgent(ctx context.Context, agentID string, fields map[string]interface{}) (*retell.Agent, error)
}
