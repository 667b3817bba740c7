package transcript

import (
	"reflect"
	"strings"
	"testing"

	"github.com/callops-team/call-assistant/internal/domain/entities"
)

func TestNormalize(t *testing.T) {
	p := NewProcessor()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \n\t  ", ""},
		{"collapses runs", "  a   b  ", "a b"},
		{"collapses newlines and tabs", "a\n\nb\tc", "a b c"},
		{"removes timestamps", "[00:01:15] Hello [00:01:20] world", "Hello world"},
		{"strips leading speaker label", "Agent: Hello there", "Hello there"},
		{"keeps interior speaker labels", "Agent: Hello. Customer: Hi.", "Hello. Customer: Hi."},
		{"numbered speaker label", "Speaker 1: Good morning", "Good morning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Normalize(tt.input)
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	p := NewProcessor()

	inputs := []string{
		"",
		"  a   b  ",
		"[00:01:15] Agent: Hello\nCustomer: Hi there",
		"Speaker 1: one. Speaker 2: two.",
	}

	for _, input := range inputs {
		once := p.Normalize(input)
		twice := p.Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestSummarize(t *testing.T) {
	p := NewProcessor()

	t.Run("empty returns sentinel", func(t *testing.T) {
		if got := p.Summarize(""); got != NoTranscriptSummary {
			t.Fatalf("got %q, want %q", got, NoTranscriptSummary)
		}
	})

	t.Run("three sentences or fewer unchanged", func(t *testing.T) {
		text := "First thing. Second thing. Third thing."
		if got := p.Summarize(text); got != text {
			t.Fatalf("got %q, want input unchanged", got)
		}
	})

	t.Run("keyword sentences kept with closing fallback", func(t *testing.T) {
		text := "Call started. We had a problem with the order. It was resolved. Everything fine now"
		want := "Call started. We had a problem with the order. Everything fine now."
		if got := p.Summarize(text); got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})

	t.Run("stops at three sentences", func(t *testing.T) {
		text := "Opening. A question came up. An issue was found. A solution was applied. Closing"
		got := p.Summarize(text)
		if n := len(strings.Split(got, ". ")); n > 3 {
			t.Fatalf("summary has %d sentences, want at most 3: %q", n, got)
		}
		if !strings.HasSuffix(got, ".") {
			t.Fatalf("summary missing terminal period: %q", got)
		}
	})
}

func TestExtractKeyPoints(t *testing.T) {
	p := NewProcessor()

	t.Run("empty transcript", func(t *testing.T) {
		got := p.ExtractKeyPoints("")
		if len(got) != 0 {
			t.Fatalf("got %v, want empty", got)
		}
	})

	t.Run("labels each category", func(t *testing.T) {
		text := "What is the status? There was an error in the system. We can fix it quickly."
		want := []string{
			"Question: What is the status?",
			"Issue: There was an error in the system.",
			"Solution: We can fix it quickly.",
		}
		got := p.ExtractKeyPoints(text)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
	})

	t.Run("caps at five", func(t *testing.T) {
		text := "One? Two? Three? Four? " +
			"First issue here. Second issue here. " +
			"First fix here. Second fix here."
		got := p.ExtractKeyPoints(text)
		if len(got) != 5 {
			t.Fatalf("got %d key points, want 5: %v", len(got), got)
		}
		for _, kp := range got[:3] {
			if !strings.HasPrefix(kp, "Question: ") {
				t.Fatalf("expected question slots first, got %v", got)
			}
		}
	})
}

func TestClassifySentiment(t *testing.T) {
	p := NewProcessor()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", entities.SentimentNeutral},
		{"positive", "Thank you, this is great", entities.SentimentPositive},
		{"negative", "This is a terrible problem", entities.SentimentNegative},
		{"tie is neutral", "Thank you for reporting this problem", entities.SentimentNeutral},
		{"no lexicon hits", "The shipment left the warehouse", entities.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ClassifySentiment(tt.text); got != tt.want {
				t.Fatalf("ClassifySentiment(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestEstimateDuration(t *testing.T) {
	p := NewProcessor()

	t.Run("uses analysis duration", func(t *testing.T) {
		got := p.EstimateDuration("some text", map[string]interface{}{"duration": float64(125)})
		if got != "0:02:05" {
			t.Fatalf("got %q, want 0:02:05", got)
		}
	})

	t.Run("accepts plain int duration", func(t *testing.T) {
		got := p.EstimateDuration("", map[string]interface{}{"duration": 3725})
		if got != "1:02:05" {
			t.Fatalf("got %q, want 1:02:05", got)
		}
	})

	t.Run("ignores non-numeric duration", func(t *testing.T) {
		got := p.EstimateDuration("short text", map[string]interface{}{"duration": "125"})
		if got != "1:00" {
			t.Fatalf("got %q, want 1:00", got)
		}
	})

	t.Run("estimates from word count", func(t *testing.T) {
		words150 := strings.TrimSpace(strings.Repeat("word ", 150))
		if got := p.EstimateDuration(words150, nil); got != "1:00" {
			t.Fatalf("150 words: got %q, want 1:00", got)
		}

		words301 := strings.TrimSpace(strings.Repeat("word ", 301))
		if got := p.EstimateDuration(words301, nil); got != "2:00" {
			t.Fatalf("301 words: got %q, want 2:00", got)
		}
	})

	t.Run("floors at one minute", func(t *testing.T) {
		if got := p.EstimateDuration("just a few words", nil); got != "1:00" {
			t.Fatalf("got %q, want 1:00", got)
		}
	})
}

func TestCountParticipants(t *testing.T) {
	p := NewProcessor()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty floors at two", "", 2},
		{"single label floors at two", "Agent: hello out there", 2},
		{"agent and customer", "Agent: hi Customer: hello", 2},
		{"three numbered speakers", "Speaker 1: hi Speaker 2: yo Speaker 3: hey", 3},
		{"repeated labels counted once", "Agent: one Agent: two Customer: three User: four", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.CountParticipants(tt.text); got != tt.want {
				t.Fatalf("CountParticipants(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestProcess(t *testing.T) {
	p := NewProcessor()

	t.Run("empty transcript", func(t *testing.T) {
		got := p.Process("", nil)
		if got.Summary != NoTranscriptSummary {
			t.Fatalf("summary = %q, want sentinel", got.Summary)
		}
		if len(got.KeyPoints) != 0 {
			t.Fatalf("key points = %v, want empty", got.KeyPoints)
		}
		if got.Sentiment != entities.SentimentNeutral {
			t.Fatalf("sentiment = %q, want neutral", got.Sentiment)
		}
		if got.Duration != "1:00" {
			t.Fatalf("duration = %q, want 1:00", got.Duration)
		}
		if got.ParticipantCount != 2 {
			t.Fatalf("participants = %d, want 2", got.ParticipantCount)
		}
	})

	t.Run("full pipeline", func(t *testing.T) {
		raw := "[00:00:05] Agent: Hello, thank you for calling. " +
			"Customer: I have an issue with my order. " +
			"Agent: I can help you fix that. Is there anything else?"
		got := p.Process(raw, map[string]interface{}{"duration": float64(95)})

		if got.Summary == NoTranscriptSummary {
			t.Fatalf("unexpected sentinel summary")
		}
		if len(got.KeyPoints) == 0 {
			t.Fatalf("expected key points, got none")
		}
		if got.Duration != "0:01:35" {
			t.Fatalf("duration = %q, want 0:01:35", got.Duration)
		}
		if got.ParticipantCount != 2 {
			t.Fatalf("participants = %d, want 2", got.ParticipantCount)
		}
	})
}
