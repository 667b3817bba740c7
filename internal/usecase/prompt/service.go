package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/callops-team/call-assistant/internal/domain/entities"
	"github.com/callops-team/call-assistant/internal/domain/repositories"
)

// Conversation directions reported by Interpret
const (
	DirectionIntroduction         = "introduction"
	DirectionProblemSolving       = "problem_solving"
	DirectionSales                = "sales"
	DirectionConclusion           = "conclusion"
	DirectionInformationGathering = "information_gathering"
)

// Service resolves conversation prompts and derives canned conversational
// guidance from them
type Service interface {
	CreatePrompt(ctx context.Context, name, content, instructions string) (*entities.ConversationPrompt, error)
	GetPromptByID(ctx context.Context, id uuid.UUID) (*entities.ConversationPrompt, error)
	GetActivePromptForAgent(ctx context.Context, agentID string) (*entities.ConversationPrompt, error)
	ActivateForAgent(ctx context.Context, promptID uuid.UUID, agentID string) error
	Interpret(prompt *entities.ConversationPrompt, history, userInput string) *entities.PromptInterpretation
}

type promptService struct {
	repo   repositories.PromptRepository
	logger *zap.Logger
}

// NewService constructs a prompt service
func NewService(repo repositories.PromptRepository, logger *zap.Logger) Service {
	return &promptService{repo: repo, logger: logger}
}

// CreatePrompt stores a new conversation prompt
func (s *promptService) CreatePrompt(ctx context.Context, name, content, instructions string) (*entities.ConversationPrompt, error) {
	created := entities.NewConversationPrompt(name, content, instructions)
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create prompt: %w", err)
	}
	return created, nil
}

// GetPromptByID looks up a prompt by ID
func (s *promptService) GetPromptByID(ctx context.Context, id uuid.UUID) (*entities.ConversationPrompt, error) {
	prompt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prompt: %w", err)
	}
	return prompt, nil
}

// GetActivePromptForAgent looks up the active prompt for an agent. A missing
// prompt is not an error; callers fall back to a default greeting.
func (s *promptService) GetActivePromptForAgent(ctx context.Context, agentID string) (*entities.ConversationPrompt, error) {
	prompt, err := s.repo.FindActiveByAgentID(ctx, agentID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to fetch agent prompt",
				zap.String("agent_id", agentID),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("failed to fetch agent prompt: %w", err)
	}
	return prompt, nil
}

// ActivateForAgent makes promptID the agent's active prompt, deactivating
// any previous link
func (s *promptService) ActivateForAgent(ctx context.Context, promptID uuid.UUID, agentID string) error {
	found, err := s.repo.FindByID(ctx, promptID)
	if err != nil {
		return fmt.Errorf("failed to fetch prompt: %w", err)
	}
	if found == nil {
		return entities.ErrPromptNotFound
	}

	if err := s.repo.LinkToAgent(ctx, agentID, promptID); err != nil {
		return fmt.Errorf("failed to activate prompt: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("prompt activated",
			zap.String("agent_id", agentID),
			zap.String("prompt_id", promptID.String()),
		)
	}
	return nil
}

// Interpret derives an agent response, follow-up questions and a conversation
// direction from the prompt and the conversation so far. Keyword heuristics
// only; no model calls.
func (s *promptService) Interpret(prompt *entities.ConversationPrompt, history, userInput string) *entities.PromptInterpretation {
	return &entities.PromptInterpretation{
		AgentResponse:         agentResponse(prompt, history, userInput),
		FollowUpQuestions:     followUpQuestions(history),
		ConversationDirection: conversationDirection(history),
	}
}

func agentResponse(prompt *entities.ConversationPrompt, history, userInput string) string {
	content := ""
	instructions := ""
	if prompt != nil {
		content = prompt.Content
		instructions = prompt.AgentInstructions
	}

	if strings.Contains(strings.ToLower(userInput), "greeting") || history == "" {
		// Truncate on codepoints; byte slicing could split a rune.
		if runes := []rune(content); len(runes) > 100 {
			content = string(runes[:100])
		}
		return fmt.Sprintf("Hello! %s...", content)
	}

	lower := strings.ToLower(instructions)
	switch {
	case strings.Contains(lower, "support"):
		return "I understand you need assistance. How can I help you today?"
	case strings.Contains(lower, "sales"):
		return "I'd be happy to discuss our products and services with you."
	default:
		return "Thank you for sharing that. Let me help you with your inquiry."
	}
}

func followUpQuestions(history string) []string {
	if history == "" {
		return []string{
			"What brings you here today?",
			"How can I assist you?",
			"Is there something specific you'd like to know about?",
		}
	}
	return []string{
		"Can you tell me more about that?",
		"What would you like to know next?",
		"Is there anything else I can help clarify?",
	}
}

func conversationDirection(history string) string {
	if history == "" {
		return DirectionIntroduction
	}

	lower := strings.ToLower(history)
	switch {
	case strings.Contains(lower, "problem") || strings.Contains(lower, "issue"):
		return DirectionProblemSolving
	case strings.Contains(lower, "buy") || strings.Contains(lower, "purchase"):
		return DirectionSales
	case strings.Contains(lower, "thank"):
		return DirectionConclusion
	default:
		return DirectionInformationGathering
	}
}
