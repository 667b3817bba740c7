package agent

// CreateAgentRequest represents the request to create a voice agent
type CreateAgentRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	VoiceID string `json:"voice_id,omitempty"`
	Prompt  string `json:"prompt" validate:"required,min=1"`
}

// UpdateAgentRequest represents the request to patch agent settings
type UpdateAgentRequest struct {
	AgentName *string `json:"agent_name,omitempty" validate:"omitempty,min=1,max=255"`
	VoiceID   *string `json:"voice_id,omitempty"`
}
