package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/callops-team/call-assistant/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	webhookHandler *WebhookHandler
	callHandler    *CallHandler
	agentHandler   *AgentHandler
	promptHandler  *PromptHandler
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, webhookHandler *WebhookHandler, callHandler *CallHandler, agentHandler *AgentHandler, promptHandler *PromptHandler) *Router {
	return &Router{
		cfg:            cfg,
		webhookHandler: webhookHandler,
		callHandler:    callHandler,
		agentHandler:   agentHandler,
		promptHandler:  promptHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/", rt.root)
	e.GET("/health", rt.healthCheck)

	// Vendor webhooks
	e.POST("/webhook/retell", rt.webhookHandler.HandleRetellWebhook)

	api := e.Group("/api")

	// Call lifecycle
	api.POST("/call/start", rt.callHandler.StartCall)
	api.GET("/call/:call_id/status", rt.callHandler.GetCallStatus)
	api.POST("/call/:call_id/sync", rt.callHandler.SyncCall)
	api.GET("/calls", rt.callHandler.ListCalls)
	api.GET("/calls/:call_id", rt.callHandler.GetCall)
	api.GET("/calls/:call_id/transcript", rt.callHandler.GetTranscript)

	// Agent management
	api.POST("/agent/create", rt.agentHandler.CreateAgent)
	api.GET("/agents", rt.agentHandler.ListAgents)
	api.GET("/agent/:agent_id", rt.agentHandler.GetAgent)
	api.PATCH("/agent/:agent_id", rt.agentHandler.UpdateAgent)
	api.POST("/agent/:agent_id/interpret", rt.promptHandler.Interpret)

	// Conversation prompts
	api.POST("/prompts", rt.promptHandler.CreatePrompt)
	api.GET("/prompts/:prompt_id", rt.promptHandler.GetPrompt)
	api.POST("/prompts/:prompt_id/activate", rt.promptHandler.ActivatePrompt)

	// Deployment smoke checks
	api.GET("/test/retell-config", rt.retellConfig)
}

// root returns basic service info
func (rt *Router) root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"service": "call-assistant",
		"status":  "running",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}

// retellConfig reports which vendor credentials are present, without leaking
// their values
func (rt *Router) retellConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"api_key_configured":        rt.cfg.Retell.APIKey != "",
		"webhook_secret_configured": rt.cfg.Retell.WebhookSecret != "",
		"from_number":               rt.cfg.Retell.FromNumber,
		"base_url":                  rt.cfg.Retell.BaseURL,
	})
}
