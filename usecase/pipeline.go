package usecase

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/voicebook/server/adapters/store"
	"github.com/voicebook/server/domain/repositories"
)

// ingestor carries the stages both pipelines share: container save,
// waveform conversion, best-effort denoising, playback conversion, and
// the annotation call. Embedded by the orchestrator services.
type ingestor struct {
	assets    *store.AssetStore
	converter repositories.Converter
	denoiser  repositories.Denoiser
	annotator repositories.Annotator
	logger    *zap.Logger
}

// ingest converts a saved container to the canonical waveform, applies
// best-effort noise reduction, and produces the playback asset.
func (p *ingestor) ingest(ctx context.Context, containerPath string) (wavPath, playbackPath string, err error) {
	wavPath, err = p.converter.ContainerToWaveform(ctx, containerPath)
	if err != nil {
		return "", "", stageErr(StageConvertWaveform, err)
	}

	// Noise reduction never fails the request; the pipeline continues
	// on the unmodified waveform.
	if result := p.denoiser.Denoise(wavPath); !result.Applied {
		p.logger.Warn("Noise reduction skipped",
			zap.String("path", wavPath),
			zap.String("reason", result.Reason))
	}

	playbackPath, err = p.converter.WaveformToPlayback(ctx, wavPath)
	if err != nil {
		return "", "", stageErr(StageConvertPlayback, err)
	}

	return wavPath, playbackPath, nil
}

// annotate reads the canonical waveform and sends it to the model with
// the given instruction prompt.
func (p *ingestor) annotate(ctx context.Context, wavPath, prompt string) (string, error) {
	audio, err := os.ReadFile(wavPath)
	if err != nil {
		return "", stageErr(StageAnnotate, fmt.Errorf("read waveform: %w", err))
	}

	raw, err := p.annotator.Annotate(ctx, audio, prompt)
	if err != nil {
		return "", stageErr(StageAnnotate, err)
	}

	return raw, nil
}
