package retell

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/callops-team/call-assistant/pkg/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.RetellConfig{APIKey: "test-key", BaseURL: baseURL})
}

func TestCreateWebCall_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/v2/create-web-call" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Fatalf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		var payload WebCallRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.AgentID != "agent-1" {
			t.Fatalf("unexpected agent id %s", payload.AgentID)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"call_id":      "call-123",
			"access_token": "tok",
			"call_status":  "registered",
		})
	}))
	defer ts.Close()

	call, err := newTestClient(ts.URL).CreateWebCall(context.Background(), "agent-1", map[string]string{"load": "L42"})
	if err != nil {
		t.Fatalf("create web call failed: %v", err)
	}
	if call.CallID != "call-123" {
		t.Fatalf("unexpected call id %s", call.CallID)
	}
	if call.AccessToken != "tok" {
		t.Fatalf("unexpected access token %s", call.AccessToken)
	}
}

func TestCreateAgent_CreatesLLMFirst(t *testing.T) {
	var sawLLM bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/create-retell-llm":
			sawLLM = true
			var payload LLMRequest
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Fatalf("invalid llm payload: %v", err)
			}
			if payload.GeneralPrompt == "" {
				t.Fatal("expected prompt in llm payload")
			}
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"llm_id": "llm-9"})
		case "/create-agent":
			if !sawLLM {
				t.Fatal("agent created before llm")
			}
			var payload AgentRequest
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Fatalf("invalid agent payload: %v", err)
			}
			if payload.ResponseEngine == nil || payload.ResponseEngine.LLMID != "llm-9" {
				t.Fatalf("agent not wired to created llm: %+v", payload.ResponseEngine)
			}
			json.NewEncoder(w).Encode(map[string]string{"agent_id": "agent-7", "agent_name": payload.AgentName})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	agent, err := newTestClient(ts.URL).CreateAgent(context.Background(), "Support Agent", "voice-1", "Be helpful.", "")
	if err != nil {
		t.Fatalf("create agent failed: %v", err)
	}
	if agent.AgentID != "agent-7" {
		t.Fatalf("unexpected agent id %s", agent.AgentID)
	}
	if agent.LLMID != "llm-9" {
		t.Fatalf("expected llm id carried over, got %s", agent.LLMID)
	}
}

func TestGetCall_ErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	}))
	defer ts.Close()

	if _, err := newTestClient(ts.URL).GetCall(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestGetCall_DetailsAccessors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"call_id":     "call-5",
			"call_status": "completed",
			"transcript":  "Agent: hello",
			"call_analysis": map[string]interface{}{
				"duration": 125,
			},
		})
	}))
	defer ts.Close()

	details, err := newTestClient(ts.URL).GetCall(context.Background(), "call-5")
	if err != nil {
		t.Fatalf("get call failed: %v", err)
	}
	if details.String("call_status") != "completed" {
		t.Fatalf("unexpected status %s", details.String("call_status"))
	}
	analysis := details.Analysis()
	if analysis == nil {
		t.Fatal("expected call_analysis map")
	}
	if _, ok := analysis["duration"]; !ok {
		t.Fatal("expected duration in analysis")
	}
}
