package llm

import (
	"context"

	"github.com/voicebook/server/domain/repositories"
)

// MockAnnotator is a placeholder implementation of the Annotator
// interface with canned responses, for tests and offline runs.
type MockAnnotator struct {
	// AnnotateResponse is returned from Annotate when set.
	AnnotateResponse string
	// GenerateResponse is returned from Generate when set.
	GenerateResponse string
	// Err, when set, is returned from every call.
	Err error

	// Prompts records every prompt received, in call order.
	Prompts []string
}

// Ensure MockAnnotator implements the Annotator interface
var _ repositories.Annotator = (*MockAnnotator)(nil)

// NewMockAnnotator creates a mock annotator with a well-formed
// transcript/sentiment response.
func NewMockAnnotator() *MockAnnotator {
	return &MockAnnotator{
		AnnotateResponse: "Text: hello from the mock annotator\n\nSentiment Analysis: neutral",
		GenerateResponse: "This is a mock answer.",
	}
}

// Annotate implements repositories.Annotator
func (m *MockAnnotator) Annotate(ctx context.Context, audio []byte, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.AnnotateResponse, nil
}

// Generate implements repositories.Annotator
func (m *MockAnnotator) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	return m.GenerateResponse, nil
}
