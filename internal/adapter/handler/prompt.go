package handler

import (
	stdErrors "errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/callops-team/call-assistant/errors"
	promptDto "github.com/callops-team/call-assistant/internal/adapter/dto/prompt"
	"github.com/callops-team/call-assistant/internal/domain/entities"
	promptUsecase "github.com/callops-team/call-assistant/internal/usecase/prompt"
)

// PromptHandler handles conversation prompt endpoints
type PromptHandler struct {
	promptService promptUsecase.Service
	logger        *zap.Logger
}

// NewPromptHandler creates a new prompt handler
func NewPromptHandler(promptService promptUsecase.Service, logger *zap.Logger) *PromptHandler {
	return &PromptHandler{
		promptService: promptService,
		logger:        logger,
	}
}

// CreatePrompt stores a new conversation prompt
func (h *PromptHandler) CreatePrompt(c echo.Context) error {
	var req promptDto.CreatePromptRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	created, err := h.promptService.CreatePrompt(c.Request().Context(), req.Name, req.Content, req.AgentInstructions)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, promptDto.FromPrompt(created))
}

// GetPrompt retrieves a prompt by ID
func (h *PromptHandler) GetPrompt(c echo.Context) error {
	id, err := uuid.Parse(c.Param("prompt_id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid prompt id"))
	}

	found, err := h.promptService.GetPromptByID(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if found == nil {
		return HandleError(h.logger, c, errors.ErrPromptNotFound(id.String()))
	}

	return HandleSuccess(h.logger, c, promptDto.FromPrompt(found))
}

// ActivatePrompt makes a prompt the active one for an agent
func (h *PromptHandler) ActivatePrompt(c echo.Context) error {
	id, err := uuid.Parse(c.Param("prompt_id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid prompt id"))
	}

	var req promptDto.ActivatePromptRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.promptService.ActivateForAgent(c.Request().Context(), id, req.AgentID); err != nil {
		if stdErrors.Is(err, entities.ErrPromptNotFound) {
			return HandleError(h.logger, c, errors.ErrPromptNotFound(id.String()))
		}
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{
		"prompt_id": id.String(),
		"agent_id":  req.AgentID,
	})
}

// Interpret derives conversational guidance from the agent's active prompt
func (h *PromptHandler) Interpret(c echo.Context) error {
	agentID := c.Param("agent_id")

	var req promptDto.InterpretRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	active, err := h.promptService.GetActivePromptForAgent(c.Request().Context(), agentID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	interpretation := h.promptService.Interpret(active, req.ConversationHistory, req.UserInput)
	return HandleSuccess(h.logger, c, promptDto.FromInterpretation(interpretation))
}
