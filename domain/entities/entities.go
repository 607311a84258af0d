package entities

import "time"

// Annotation is the parsed outcome of a single generative-AI call.
// Fields stay empty when the model response carries no matching line.
type Annotation struct {
	Transcript string `json:"transcript"`
	Sentiment  string `json:"sentiment"`
}

// HistoryEntry is one answered question, immutable once appended.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	AudioFile string    `json:"audio_file"`
}

// Book is a snapshot of the currently loaded reference document.
// Version increments on every replacement so callers can tell which
// context a question was answered against.
type Book struct {
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Version    int       `json:"version"`
	UploadedAt time.Time `json:"uploaded_at"`
}
