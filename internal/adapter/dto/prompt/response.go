package prompt

import (
	"time"

	"github.com/callops-team/call-assistant/internal/domain/entities"
)

// PromptResponse represents a conversation prompt in responses
type PromptResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Content           string    `json:"content"`
	AgentInstructions string    `json:"agent_instructions,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// InterpretResponse represents derived conversational guidance
type InterpretResponse struct {
	AgentResponse         string   `json:"agent_response"`
	FollowUpQuestions     []string `json:"follow_up_questions"`
	ConversationDirection string   `json:"conversation_direction"`
}

// FromPrompt maps a prompt entity to its response shape
func FromPrompt(p *entities.ConversationPrompt) *PromptResponse {
	return &PromptResponse{
		ID:                p.ID.String(),
		Name:              p.Name,
		Content:           p.Content,
		AgentInstructions: p.AgentInstructions,
		CreatedAt:         p.CreatedAt,
	}
}

// FromInterpretation maps derived guidance to its response shape
func FromInterpretation(i *entities.PromptInterpretation) *InterpretResponse {
	return &InterpretResponse{
		AgentResponse:         i.AgentResponse,
		FollowUpQuestions:     i.FollowUpQuestions,
		ConversationDirection: i.ConversationDirection,
	}
}
