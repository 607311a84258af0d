package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/voicebook/server/domain/repositories"
)

const (
	defaultModel          = "gemini-2.0-flash"
	defaultTimeoutSeconds = 60

	waveformMIMEType = "audio/wav"
)

// GeminiConfig holds configuration for the Gemini annotator.
// Required fields:
// - APIKey: Your Google AI API key
// Optional fields with defaults:
// - Model: The model ID to use (default: "gemini-2.0-flash")
// - TimeoutSeconds: Per-call timeout (default: 60)
type GeminiConfig struct {
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// NewGeminiConfigFromEnv creates a GeminiConfig from environment variables
func NewGeminiConfigFromEnv() GeminiConfig {
	return GeminiConfig{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  os.Getenv("GEMINI_MODEL"),
	}
}

// Gemini implements the Annotator interface using Google's Gemini API.
// Each call is a single synchronous exchange; failures surface to the
// caller as-is, there is no retry or backoff.
type Gemini struct {
	client  *genai.Client
	logger  *zap.Logger
	model   string
	timeout time.Duration
}

// Ensure Gemini implements the Annotator interface
var _ repositories.Annotator = (*Gemini)(nil)

// NewGemini creates a new Gemini annotator instance
func NewGemini(config GeminiConfig, logger *zap.Logger) (*Gemini, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = defaultModel
		logger.Info("Using default model", zap.String("model", model))
	}

	timeoutSeconds := config.TimeoutSeconds
	if timeoutSeconds == 0 {
		timeoutSeconds = defaultTimeoutSeconds
	}

	return &Gemini{
		client:  client,
		logger:  logger,
		model:   model,
		timeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// Annotate sends waveform bytes tagged as audio/wav together with an
// instruction prompt and returns the model's raw textual response.
func (g *Gemini) Annotate(ctx context.Context, audio []byte, prompt string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("audio data cannot be empty")
	}

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(audio, waveformMIMEType),
		genai.NewPartFromText(prompt),
	}, genai.RoleUser)

	g.logger.Info("Annotating audio",
		zap.String("model", g.model),
		zap.Int("audioSize", len(audio)))

	return g.generate(ctx, []*genai.Content{content})
}

// Generate takes a text-only prompt and returns the model's reply
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	content := genai.NewContentFromText(prompt, genai.RoleUser)
	return g.generate(ctx, []*genai.Content{content})
}

func (g *Gemini) generate(ctx context.Context, contents []*genai.Content) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		g.logger.Error("Failed to generate content", zap.Error(err))
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil ||
		len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	// Extract text from the response
	var responseText string
	for _, part := range response.Candidates[0].Content.Parts {
		if part.Text != "" {
			responseText += part.Text
		}
	}

	if responseText == "" {
		return "", fmt.Errorf("empty response from model")
	}

	g.logger.Info("Annotation response received",
		zap.Int("responseLength", len(responseText)))

	return responseText, nil
}
