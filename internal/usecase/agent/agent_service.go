package agent

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/callops-team/call-assistant/pkg/retell"
)

// Platform is the slice of the vendor API agent management needs
type Platform interface {
	CreateAgent(ctx context.Context, agentName, voiceID, prompt, webhookURL string) (*retell.Agent, error)
	ListAgents(ctx context.Context) ([]retell.Agent, error)
	GetAgent(ctx context.Context, agentID string) (*retell.Agent, error)
	UpdateAgent(ctx context.Context, agentID string, payload map[string]interface{}) (*retell.Agent, error)
}

// Ensure AgentService implements Service interface
var _ Service = (*AgentService)(nil)

// AgentService manages vendor voice agents
type AgentService struct {
	platform   Platform
	logger     *zap.Logger
	voiceID    string
	webhookURL string
}

// NewAgentService creates a new agent service
func NewAgentService(platform Platform, logger *zap.Logger, voiceID, webhookURL string) *AgentService {
	return &AgentService{
		platform:   platform,
		logger:     logger,
		voiceID:    voiceID,
		webhookURL: webhookURL,
	}
}

// CreateAgentInput represents input for creating an agent
type CreateAgentInput struct {
	Name    string
	VoiceID string
	Prompt  string
}

// CreateAgent provisions a voice agent backed by a fresh LLM config
func (s *AgentService) CreateAgent(ctx context.Context, input CreateAgentInput) (*retell.Agent, error) {
	voiceID := input.VoiceID
	if voiceID == "" {
		voiceID = s.voiceID
	}

	agent, err := s.platform.CreateAgent(ctx, input.Name, voiceID, input.Prompt, s.webhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	s.logger.Info("agent created",
		zap.String("agent_id", agent.AgentID),
		zap.String("agent_name", agent.AgentName),
	)
	return agent, nil
}

// ListAgents lists all agents on the vendor account
func (s *AgentService) ListAgents(ctx context.Context) ([]retell.Agent, error) {
	agents, err := s.platform.ListAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	return agents, nil
}

// GetAgent retrieves a single agent
func (s *AgentService) GetAgent(ctx context.Context, agentID string) (*retell.Agent, error) {
	agent, err := s.platform.GetAgent(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get agent %s: %w", agentID, err)
	}
	return agent, nil
}

// UpdateAgent patches agent settings
func (s *AgentService) UpdateAgent(ctx context.Context, agentID string, fields map[string]interface{}) (*retell.Agent, error) {
	agent, err := s.platform.UpdateAgent(ctx, agentID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update agent %s: %w", agentID, err)
	}
	return agent, nil
}
