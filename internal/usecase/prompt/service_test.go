package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/callops-team/call-assistant/internal/domain/entities"
)

func TestInterpret_Greeting(t *testing.T) {
	svc := &promptService{}
	p := entities.NewConversationPrompt("dispatch", "Welcome to dispatch support, we coordinate loads and delivery windows for carriers across the region every day", "support")

	out := svc.Interpret(p, "", "")

	if !strings.HasPrefix(out.AgentResponse, "Hello! ") {
		t.Fatalf("expected greeting, got %q", out.AgentResponse)
	}
	if out.ConversationDirection != DirectionIntroduction {
		t.Fatalf("direction = %q, want introduction", out.ConversationDirection)
	}
	if len(out.FollowUpQuestions) != 3 {
		t.Fatalf("got %d follow-ups, want 3", len(out.FollowUpQuestions))
	}
}

func TestInterpret_GreetingTruncatesOnRunes(t *testing.T) {
	svc := &promptService{}
	content := strings.Repeat("é", 150)
	p := entities.NewConversationPrompt("accented", content, "")

	out := svc.Interpret(p, "", "")

	if !utf8.ValidString(out.AgentResponse) {
		t.Fatalf("greeting contains invalid UTF-8: %q", out.AgentResponse)
	}
	if want := "Hello! " + strings.Repeat("é", 100) + "..."; out.AgentResponse != want {
		t.Fatalf("greeting = %q, want 100-codepoint truncation", out.AgentResponse)
	}
}

func TestInterpret_SupportInstructions(t *testing.T) {
	svc := &promptService{}
	p := entities.NewConversationPrompt("dispatch", "content", "Act as a support agent")

	out := svc.Interpret(p, "User: my shipment is late", "when will it arrive")

	if !strings.Contains(out.AgentResponse, "assistance") {
		t.Fatalf("expected support response, got %q", out.AgentResponse)
	}
}

func TestInterpret_Direction(t *testing.T) {
	svc := &promptService{}

	tests := []struct {
		name    string
		history string
		want    string
	}{
		{"problem", "User: I have a problem with my order", DirectionProblemSolving},
		{"sales", "User: I want to purchase the premium plan", DirectionSales},
		{"conclusion", "User: thank you so much", DirectionConclusion},
		{"default", "User: tell me about delivery windows", DirectionInformationGathering},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := svc.Interpret(nil, tt.history, "input")
			if out.ConversationDirection != tt.want {
				t.Fatalf("direction = %q, want %q", out.ConversationDirection, tt.want)
			}
		})
	}
}

func TestInterpret_NilPromptFallback(t *testing.T) {
	svc := &promptService{}

	out := svc.Interpret(nil, "User: something", "anything")
	if out.AgentResponse == "" {
		t.Fatalf("expected a fallback response")
	}
}
