package entities

import (
	"time"

	"github.com/google/uuid"
)

// ConversationPrompt is a reusable system prompt plus conversation logic for
// a voice agent
type ConversationPrompt struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name              string    `json:"name" gorm:"type:varchar(255);not null"`
	Content           string    `json:"content" gorm:"type:text;not null"`
	AgentInstructions string    `json:"agent_instructions" gorm:"type:text"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (ConversationPrompt) TableName() string {
	return "conversation_prompts"
}

// NewConversationPrompt creates a new prompt
func NewConversationPrompt(name, content, instructions string) *ConversationPrompt {
	return &ConversationPrompt{
		ID:                uuid.New(),
		Name:              name,
		Content:           content,
		AgentInstructions: instructions,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
}

// AgentPrompt links a prompt to a vendor agent; at most one link per agent is
// active at a time
type AgentPrompt struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AgentID   string    `json:"agent_id" gorm:"type:varchar(255);not null;index"`
	PromptID  uuid.UUID `json:"prompt_id" gorm:"type:uuid;not null;index"`
	IsActive  bool      `json:"is_active" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (AgentPrompt) TableName() string {
	return "agent_prompts"
}

// PromptInterpretation is the canned conversational guidance derived from a
// prompt and the conversation so far
type PromptInterpretation struct {
	AgentResponse         string   `json:"agent_response"`
	FollowUpQuestions     []string `json:"follow_up_questions"`
	ConversationDirection string   `json:"conversation_direction"`
}
