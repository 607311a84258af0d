package tts

import (
	"context"

	"go.uber.org/zap"

	"github.com/voicebook/server/domain/repositories"
)

// MockSynthesizer is a placeholder implementation of the Synthesizer
// interface, for tests and offline runs.
type MockSynthesizer struct {
	logger *zap.Logger

	// Err, when set, is returned from every call.
	Err error
	// Texts records every synthesized text, in call order.
	Texts []string
}

// Ensure MockSynthesizer implements the Synthesizer interface
var _ repositories.Synthesizer = (*MockSynthesizer)(nil)

// NewMockSynthesizer creates a new mock text-to-speech service
func NewMockSynthesizer(logger *zap.Logger) *MockSynthesizer {
	return &MockSynthesizer{logger: logger}
}

// SynthesizeSpeech implements repositories.Synthesizer
func (m *MockSynthesizer) SynthesizeSpeech(ctx context.Context, text string) ([]byte, error) {
	m.Texts = append(m.Texts, text)
	if m.Err != nil {
		return nil, m.Err
	}

	m.logger.Info("Mock speech synthesis", zap.Int("textLength", len(text)))
	return []byte("ID3 mock mp3 payload"), nil
}
