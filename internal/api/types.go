package api

// UploadResponse is the success payload for the transcribe-and-classify flow
type UploadResponse struct {
	ProcessedFile         string `json:"processed_file"`
	TranscriptionFile     string `json:"transcription_file"`
	Sentiment             string `json:"sentiment"`
	SentimentAnalysisFile string `json:"sentiment_analysis_file"`
}

// AskResponse is the success payload for the ask-the-book flow
type AskResponse struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	AudioFile string `json:"audio_file"`
}

// UploadBookResponse is the success payload for a book upload
type UploadBookResponse struct {
	Book       string `json:"book"`
	Characters int    `json:"characters"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
