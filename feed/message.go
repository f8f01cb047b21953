package feed

// Message is one feed frame as broadcast by the transcription agent.
// Timestamp and Source are carried by the agent but not required; only
// Type, Language and Text drive routing.
type Message struct {
	Type      string  `json:"type"`
	Language  string  `json:"language"`
	Text      string  `json:"text"`
	Timestamp float64 `json:"timestamp,omitempty"`
	Source    string  `json:"source,omitempty"`
}

const (
	TypeTranscription = "transcription"
	TypeTranslation   = "translation"
)
