package repositories

import "context"

// Annotator abstracts the hosted generative-AI endpoint used for
// transcription, sentiment analysis, and grounded question answering.
type Annotator interface {
	// Annotate sends waveform bytes together with an instruction prompt
	// and returns the model's raw textual response.
	Annotate(ctx context.Context, audio []byte, prompt string) (string, error)
	// Generate takes a text-only prompt and returns the model's reply
	Generate(ctx context.Context, prompt string) (string, error)
}
