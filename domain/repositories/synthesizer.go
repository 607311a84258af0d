package repositories

import "context"

// Synthesizer abstracts text-to-speech services
type Synthesizer interface {
	// SynthesizeSpeech converts text to compressed audio bytes
	SynthesizeSpeech(ctx context.Context, text string) ([]byte, error)
}
