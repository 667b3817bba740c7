package agent

import "github.com/callops-team/call-assistant/pkg/retell"

// AgentResponse represents a voice agent in responses
type AgentResponse struct {
	AgentID   string `json:"agent_id"`
	AgentName string `json:"agent_name"`
	VoiceID   string `json:"voice_id"`
	Language  string `json:"language,omitempty"`
	LLMID     string `json:"llm_id,omitempty"`
}

// FromAgent maps a vendor agent to its response shape
func FromAgent(a *retell.Agent) *AgentResponse {
	return &AgentResponse{
		AgentID:   a.AgentID,
		AgentName: a.AgentName,
		VoiceID:   a.VoiceID,
		Language:  a.Language,
		LLMID:     a.LLMID,
	}
}
