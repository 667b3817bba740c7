package retell

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/callops-team/call-assistant/pkg/config"
)

// Client is a minimal Retell AI API client. Calls are not retried; errors
// are wrapped with the failing endpoint and status.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a Retell client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewClient(cfg *config.RetellConfig) *Client {
	var apiKey, base string
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.BaseURL
	}
	if apiKey == "" {
		apiKey = os.Getenv("RETELL_API_KEY")
	}
	if base == "" {
		base = os.Getenv("RETELL_BASE_URL")
		if base == "" {
			base = "https://api.retellai.com"
		}
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: base,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// AgentRequest is the payload for /create-agent
type AgentRequest struct {
	AgentName      string          `json:"agent_name"`
	VoiceID        string          `json:"voice_id"`
	Language       string          `json:"language"`
	ResponseEngine *ResponseEngine `json:"response_engine,omitempty"`
	WebhookURL     string          `json:"webhook_url,omitempty"`
}

// ResponseEngine selects the LLM driving an agent
type ResponseEngine struct {
	Type  string `json:"type"`
	LLMID string `json:"llm_id"`
}

// Agent is the minimal agent shape returned by the API
type Agent struct {
	AgentID   string `json:"agent_id"`
	AgentName string `json:"agent_name"`
	VoiceID   string `json:"voice_id"`
	Language  string `json:"language,omitempty"`
	LLMID     string `json:"llm_id,omitempty"`
}

// LLMRequest is the payload for /create-retell-llm
type LLMRequest struct {
	GeneralPrompt string        `json:"general_prompt"`
	Model         string        `json:"model"`
	GeneralTools  []interface{} `json:"general_tools"`
}

// LLM is the minimal LLM shape returned by the API
type LLM struct {
	LLMID string `json:"llm_id"`
}

// WebCallRequest is the payload for /v2/create-web-call
type WebCallRequest struct {
	AgentID  string            `json:"agent_id"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// WebCall is the minimal web-call shape returned by the API
type WebCall struct {
	CallID      string `json:"call_id"`
	AccessToken string `json:"access_token,omitempty"`
	AgentID     string `json:"agent_id,omitempty"`
	LLMID       string `json:"llm_id,omitempty"`
	CallStatus  string `json:"call_status,omitempty"`
}

// CallDetails carries the vendor's full call object. Fields this backend does
// not interpret stay in the map.
type CallDetails map[string]interface{}

// String reads a string field from the call details
func (d CallDetails) String(key string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return ""
}

// Analysis returns the call_analysis sub-object, nil when absent
func (d CallDetails) Analysis() map[string]interface{} {
	if v, ok := d["call_analysis"].(map[string]interface{}); ok {
		return v
	}
	return nil
}

// CreateLLM creates a Retell LLM with the given prompt
func (c *Client) CreateLLM(ctx context.Context, prompt string) (*LLM, error) {
	payload := LLMRequest{
		GeneralPrompt: prompt,
		Model:         "gpt-4o-mini",
		GeneralTools:  []interface{}{},
	}

	var llm LLM
	if err := c.do(ctx, http.MethodPost, "/create-retell-llm", payload, &llm); err != nil {
		return nil, fmt.Errorf("create llm: %w", err)
	}
	return &llm, nil
}

// CreateAgent creates a new voice agent. A dedicated LLM is created first so
// the agent carries the caller's prompt.
func (c *Client) CreateAgent(ctx context.Context, agentName, voiceID, prompt, webhookURL string) (*Agent, error) {
	llm, err := c.CreateLLM(ctx, prompt)
	if err != nil {
		return nil, err
	}

	payload := AgentRequest{
		AgentName: agentName,
		VoiceID:   voiceID,
		Language:  "en-US",
		ResponseEngine: &ResponseEngine{
			Type:  "retell-llm",
			LLMID: llm.LLMID,
		},
		WebhookURL: webhookURL,
	}

	var agent Agent
	if err := c.do(ctx, http.MethodPost, "/create-agent", payload, &agent); err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}
	if agent.LLMID == "" {
		agent.LLMID = llm.LLMID
	}
	return &agent, nil
}

// CreateWebCall creates a browser-based call on an existing agent
func (c *Client) CreateWebCall(ctx context.Context, agentID string, metadata map[string]string) (*WebCall, error) {
	payload := WebCallRequest{
		AgentID:  agentID,
		Metadata: metadata,
	}

	var call WebCall
	if err := c.do(ctx, http.MethodPost, "/v2/create-web-call", payload, &call); err != nil {
		return nil, fmt.Errorf("create web call: %w", err)
	}
	return &call, nil
}

// GetCall fetches full call details by vendor call ID
func (c *Client) GetCall(ctx context.Context, callID string) (CallDetails, error) {
	var details CallDetails
	if err := c.do(ctx, http.MethodGet, "/v2/get-call/"+callID, nil, &details); err != nil {
		return nil, fmt.Errorf("get call %s: %w", callID, err)
	}
	return details, nil
}

// ListAgents lists all agents
func (c *Client) ListAgents(ctx context.Context) ([]Agent, error) {
	var agents []Agent
	if err := c.do(ctx, http.MethodGet, "/list-agents", nil, &agents); err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return agents, nil
}

// GetAgent fetches a single agent
func (c *Client) GetAgent(ctx context.Context, agentID string) (*Agent, error) {
	var agent Agent
	if err := c.do(ctx, http.MethodGet, "/get-agent/"+agentID, nil, &agent); err != nil {
		return nil, fmt.Errorf("get agent %s: %w", agentID, err)
	}
	return &agent, nil
}

// UpdateAgent patches an existing agent
func (c *Client) UpdateAgent(ctx context.Context, agentID string, payload map[string]interface{}) (*Agent, error) {
	var agent Agent
	if err := c.do(ctx, http.MethodPatch, "/update-agent/"+agentID, payload, &agent); err != nil {
		return nil, fmt.Errorf("update agent %s: %w", agentID, err)
	}
	return &agent, nil
}

// do executes one API request and decodes the JSON response into out
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("retell returned status %d: %s", resp.StatusCode, string(detail))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
