package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/voicebook/server/adapters/store"
	"github.com/voicebook/server/domain/repositories"
)

// allowedExtensions are the accepted upload extensions for recorded
// audio, matching what a browser recorder produces.
var allowedExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".webm": true,
}

// IsAudioFilename reports whether the uploaded filename carries a
// supported audio extension. An empty filename is rejected.
func IsAudioFilename(name string) bool {
	if name == "" {
		return false
	}
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// RecorderResult is the outcome of one transcribe-and-classify run.
type RecorderResult struct {
	ProcessedFile     string
	TranscriptionFile string
	Sentiment         string
	SentimentFile     string
}

// RecorderService orchestrates the transcribe-and-classify pipeline:
// upload -> waveform -> denoise (best effort) -> playback -> annotate
// -> parse -> persist. Linear, synchronous, terminal on first failure,
// no retries.
type RecorderService struct {
	ingestor
}

// NewRecorderService creates a new recorder pipeline orchestrator
func NewRecorderService(
	assets *store.AssetStore,
	converter repositories.Converter,
	denoiser repositories.Denoiser,
	annotator repositories.Annotator,
	logger *zap.Logger,
) *RecorderService {
	return &RecorderService{
		ingestor: ingestor{
			assets:    assets,
			converter: converter,
			denoiser:  denoiser,
			annotator: annotator,
			logger:    logger,
		},
	}
}

// Process runs the full pipeline for one uploaded recording. filename
// is only used for extension validation; assets are named by a
// timestamp-derived base.
func (s *RecorderService) Process(ctx context.Context, filename string, upload io.Reader) (*RecorderResult, error) {
	if !IsAudioFilename(filename) {
		return nil, stageErr(StageValidate, fmt.Errorf("invalid file type or empty filename"))
	}

	base := s.assets.NewBaseName()

	containerPath, err := s.assets.Save(base+".webm", upload)
	if err != nil {
		return nil, stageErr(StageSaveUpload, err)
	}
	s.logger.Info("Uploaded file", zap.String("path", containerPath))

	wavPath, playbackPath, err := s.ingest(ctx, containerPath)
	if err != nil {
		return nil, err
	}

	raw, err := s.annotate(ctx, wavPath, CombinedPrompt)
	if err != nil {
		return nil, err
	}

	annotation := ParseAnnotation(raw)

	transcriptName := base + ".txt"
	if _, err := s.assets.WriteText(transcriptName, annotation.Transcript); err != nil {
		return nil, stageErr(StagePersist, err)
	}

	sentimentName := base + "_sentiment.txt"
	sentimentBody := fmt.Sprintf("Text: %s\nSentiment: %s\n", annotation.Transcript, annotation.Sentiment)
	if _, err := s.assets.WriteText(sentimentName, sentimentBody); err != nil {
		return nil, stageErr(StagePersist, err)
	}

	s.logger.Info("Recording processed",
		zap.String("playback", filepath.Base(playbackPath)),
		zap.String("sentiment", annotation.Sentiment))

	return &RecorderResult{
		ProcessedFile:     filepath.Base(playbackPath),
		TranscriptionFile: transcriptName,
		Sentiment:         annotation.Sentiment,
		SentimentFile:     sentimentName,
	}, nil
}
