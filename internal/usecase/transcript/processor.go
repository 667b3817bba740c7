package transcript

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/callops-team/call-assistant/internal/domain/entities"
)

// Sentinel values returned when the transcript carries no usable signal.
const (
	// NoTranscriptSummary is returned for empty transcripts.
	NoTranscriptSummary = "No transcript available"

	// MinParticipants assumes at least an agent and a counterpart on every call.
	MinParticipants = 2
)

// maxKeyPoints caps the combined question/issue/solution list.
const maxKeyPoints = 5

// Speaking rate used to estimate duration from transcript length.
const wordsPerMinute = 150

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	timestampRe  = regexp.MustCompile(`\[\d{2}:\d{2}:\d{2}\]`)
	// Line-anchored, but Normalize collapses newlines before this runs, so in
	// practice only a label at the very start of the text is removed.
	speakerPrefixRe = regexp.MustCompile(`(?m)^(Speaker \d+:|Agent:|User:|Customer:)\s*`)

	questionRe = regexp.MustCompile(`[^.!?]*\?`)
	issueRe    = regexp.MustCompile(`(?i)[^.!?]*(?:problem|issue|trouble|error)[^.!?]*[.!?]`)
	solutionRe = regexp.MustCompile(`(?i)[^.!?]*(?:solution|resolve|fix|help)[^.!?]*[.!?]`)

	speakerLabelRes = []*regexp.Regexp{
		regexp.MustCompile(`Speaker \d+:`),
		regexp.MustCompile(`Agent:`),
		regexp.MustCompile(`User:`),
		regexp.MustCompile(`Customer:`),
		regexp.MustCompile(`Representative:`),
	}
)

// Keyword lexicons. Matching is case-insensitive substring presence, not
// whole-word or frequency counting.
var (
	summaryKeywords = []string{"problem", "issue", "solution", "purchase", "order", "help", "question"}

	positiveWords = []string{"thank", "great", "excellent", "good", "happy", "satisfied", "perfect", "wonderful"}
	negativeWords = []string{"problem", "issue", "bad", "terrible", "awful", "disappointed", "angry", "frustrated"}
)

// Processor turns a raw call transcript into a structured summary using
// deterministic heuristics. Every method is a pure function of its input and
// always returns a value; the zero Processor is ready to use.
type Processor struct{}

// NewProcessor creates a new Processor instance
func NewProcessor() *Processor {
	return &Processor{}
}

// Process runs the full pipeline: normalization followed by the five
// independent extraction passes. The analysis map is the vendor-supplied call
// analysis and may be nil.
func (p *Processor) Process(raw string, analysis map[string]interface{}) *entities.ProcessedTranscript {
	text := p.Normalize(raw)

	return &entities.ProcessedTranscript{
		Summary:          p.Summarize(text),
		KeyPoints:        p.ExtractKeyPoints(text),
		Sentiment:        p.ClassifySentiment(text),
		Duration:         p.EstimateDuration(text, analysis),
		ParticipantCount: p.CountParticipants(text),
	}
}

// Normalize strips timestamp markers, collapses whitespace and removes a
// leading speaker label from the raw transcript.
func (p *Processor) Normalize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	cleaned := timestampRe.ReplaceAllString(raw, "")
	cleaned = whitespaceRe.ReplaceAllString(strings.TrimSpace(cleaned), " ")
	cleaned = speakerPrefixRe.ReplaceAllString(cleaned, "")

	return strings.TrimSpace(cleaned)
}

// Summarize builds a short summary from the normalized transcript. Transcripts
// of three or fewer ". "-delimited sentences are returned unchanged.
func (p *Processor) Summarize(text string) string {
	if text == "" {
		return NoTranscriptSummary
	}

	sentences := strings.Split(text, ". ")
	if len(sentences) <= 3 {
		return text
	}

	summary := []string{sentences[0]}

	// Interior sentences only; first match wins per slot, original order kept.
	for _, sentence := range sentences[1 : len(sentences)-1] {
		if containsAny(sentence, summaryKeywords) {
			summary = append(summary, sentence)
			if len(summary) >= 3 {
				break
			}
		}
	}

	if len(sentences) > 1 && len(summary) < 3 {
		summary = append(summary, sentences[len(sentences)-1])
	}

	return strings.Join(summary, ". ") + "."
}

// ExtractKeyPoints collects labeled question, issue and solution fragments.
// A sentence matching both an issue and a solution keyword is listed under
// both labels; that duplication is part of the contract.
func (p *Processor) ExtractKeyPoints(text string) []string {
	keyPoints := []string{}

	if text == "" {
		return keyPoints
	}

	questions := questionRe.FindAllString(text, -1)
	for _, q := range firstN(questions, 3) {
		keyPoints = append(keyPoints, "Question: "+strings.TrimSpace(q))
	}

	issues := issueRe.FindAllString(text, -1)
	for _, i := range firstN(issues, 2) {
		keyPoints = append(keyPoints, "Issue: "+strings.TrimSpace(i))
	}

	solutions := solutionRe.FindAllString(text, -1)
	for _, s := range firstN(solutions, 2) {
		keyPoints = append(keyPoints, "Solution: "+strings.TrimSpace(s))
	}

	return firstN(keyPoints, maxKeyPoints)
}

// ClassifySentiment scores the transcript against two fixed lexicons. Each
// lexicon entry counts once no matter how often it appears.
func (p *Processor) ClassifySentiment(text string) string {
	if text == "" {
		return entities.SentimentNeutral
	}

	lower := strings.ToLower(text)

	positive := 0
	for _, word := range positiveWords {
		if strings.Contains(lower, word) {
			positive++
		}
	}

	negative := 0
	for _, word := range negativeWords {
		if strings.Contains(lower, word) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return entities.SentimentPositive
	case negative > positive:
		return entities.SentimentNegative
	default:
		return entities.SentimentNeutral
	}
}

// EstimateDuration renders the vendor-reported duration when present,
// otherwise estimates from transcript length at an average speaking rate.
func (p *Processor) EstimateDuration(text string, analysis map[string]interface{}) string {
	if analysis != nil {
		if seconds, ok := numericField(analysis, "duration"); ok {
			return formatSeconds(seconds)
		}
	}

	wordCount := len(strings.Fields(text))
	minutes := wordCount / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}

	return fmt.Sprintf("%d:00", minutes)
}

// CountParticipants counts distinct speaker labels in the transcript.
// Distinctness is over the literal matched string, so "Speaker 1:" and
// "Speaker 2:" are two participants.
func (p *Processor) CountParticipants(text string) int {
	unique := map[string]struct{}{}

	for _, re := range speakerLabelRes {
		for _, match := range re.FindAllString(text, -1) {
			unique[match] = struct{}{}
		}
	}

	if len(unique) < MinParticipants {
		return MinParticipants
	}
	return len(unique)
}

// containsAny reports whether s contains any keyword, case-insensitively.
func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// firstN returns at most n leading elements of items.
func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// numericField reads a numeric value from a decoded JSON map, accepting the
// types encoding/json produces plus plain ints from in-process callers.
func numericField(m map[string]interface{}, key string) (int, bool) {
	switch v := m[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

// formatSeconds renders a second count as H:MM:SS, e.g. 125 -> "0:02:05".
func formatSeconds(total int) string {
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}
