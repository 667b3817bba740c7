package call

// StartCallRequest represents the request to start a driver call
type StartCallRequest struct {
	DriverName  string `json:"driver_name" validate:"required,min=1,max=255"`
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
	LoadNumber  string `json:"load_number" validate:"required,min=1,max=100"`
	AgentPrompt string `json:"agent_prompt" validate:"required,min=1"`
	AgentLogic  string `json:"agent_logic,omitempty"`
}

// ListCallsRequest represents query parameters for listing calls
type ListCallsRequest struct {
	AgentID string `query:"agent_id" validate:"required"`
	Limit   int    `query:"limit" validate:"omitempty,min=1,max=100"`
}
