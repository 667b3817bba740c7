package entities

// Sentiment labels produced by the transcript processor
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// ProcessedTranscript is the structured summary derived from a raw call
// transcript. It is recomputed from the raw transcript on every request and
// never updated in place.
type ProcessedTranscript struct {
	Summary          string   `json:"summary"`
	KeyPoints        []string `json:"key_points"`
	Sentiment        string   `json:"sentiment"`
	Duration         string   `json:"duration,omitempty"`
	ParticipantCount int      `json:"participant_count"`
}
