package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/callops-team/call-assistant/errors"
	agentDto "github.com/callops-team/call-assistant/internal/adapter/dto/agent"
	agentUsecase "github.com/callops-team/call-assistant/internal/usecase/agent"
)

// AgentHandler handles voice-agent management endpoints
type AgentHandler struct {
	agentService agentUsecase.Service
	logger       *zap.Logger
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(agentService agentUsecase.Service, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
		logger:       logger,
	}
}

// CreateAgent provisions a voice agent
func (h *AgentHandler) CreateAgent(c echo.Context) error {
	var req agentDto.CreateAgentRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	created, err := h.agentService.CreateAgent(c.Request().Context(), agentUsecase.CreateAgentInput{
		Name:    req.Name,
		VoiceID: req.VoiceID,
		Prompt:  req.Prompt,
	})
	if err != nil {
		return HandleError(h.logger, c, errors.ErrAgentCreationFailed(err))
	}

	return HandleSuccess(h.logger, c, agentDto.FromAgent(created))
}

// ListAgents lists all agents on the vendor account
func (h *AgentHandler) ListAgents(c echo.Context) error {
	agents, err := h.agentService.ListAgents(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	out := make([]*agentDto.AgentResponse, 0, len(agents))
	for i := range agents {
		out = append(out, agentDto.FromAgent(&agents[i]))
	}
	return HandleSuccess(h.logger, c, out)
}

// GetAgent retrieves a single agent
func (h *AgentHandler) GetAgent(c echo.Context) error {
	agentID := c.Param("agent_id")

	found, err := h.agentService.GetAgent(c.Request().Context(), agentID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrAgentNotFound(agentID))
	}

	return HandleSuccess(h.logger, c, agentDto.FromAgent(found))
}

// UpdateAgent patches agent settings
func (h *AgentHandler) UpdateAgent(c echo.Context) error {
	agentID := c.Param("agent_id")

	var req agentDto.UpdateAgentRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	fields := map[string]interface{}{}
	if req.AgentName != nil {
		fields["agent_name"] = *req.AgentName
	}
	if req.VoiceID != nil {
		fields["voice_id"] = *req.VoiceID
	}

	updated, err := h.agentService.UpdateAgent(c.Request().Context(), agentID, fields)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, agentDto.FromAgent(updated))
}
