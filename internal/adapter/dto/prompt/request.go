package prompt

// CreatePromptRequest represents the request to store a conversation prompt
type CreatePromptRequest struct {
	Name              string `json:"name" validate:"required,min=1,max=255"`
	Content           string `json:"content" validate:"required,min=1"`
	AgentInstructions string `json:"agent_instructions,omitempty"`
}

// ActivatePromptRequest represents the request to activate a prompt for an agent
type ActivatePromptRequest struct {
	AgentID string `json:"agent_id" validate:"required"`
}

// InterpretRequest represents the request to derive conversational guidance
type InterpretRequest struct {
	ConversationHistory string `json:"conversation_history,omitempty"`
	UserInput           string `json:"user_input,omitempty"`
}
