package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/voicebook/server/domain/repositories"
)

const (
	defaultBinary   = "ffmpeg"
	waveformHertz   = "16000"
	playbackBitrate = "128k"
)

// runner executes the transcoder binary with the given arguments.
// Swapped out in tests so no real subprocess is spawned.
type runner func(ctx context.Context, bin string, args []string) error

// Converter shells out to ffmpeg for audio format conversion. One
// subprocess per call, no retry; a missing binary fails the request,
// not startup.
type Converter struct {
	bin    string
	logger *zap.Logger
	run    runner
}

// Ensure Converter implements the Converter interface
var _ repositories.Converter = (*Converter)(nil)

// New creates a Converter. The binary path can be overridden with the
// FFMPEG_BIN environment variable.
func New(logger *zap.Logger) *Converter {
	bin := os.Getenv("FFMPEG_BIN")
	if bin == "" {
		bin = defaultBinary
	}

	return &Converter{
		bin:    bin,
		logger: logger,
		run:    runCommand,
	}
}

// ContainerToWaveform converts an uploaded container file to a mono
// 16kHz WAV next to it. The source container is removed on success.
func (c *Converter) ContainerToWaveform(ctx context.Context, src string) (string, error) {
	dst := replaceExt(src, ".wav")

	args := []string{"-y", "-i", src, "-ac", "1", "-ar", waveformHertz, dst}
	if err := c.run(ctx, c.bin, args); err != nil {
		c.logger.Error("container to waveform conversion failed",
			zap.String("src", src),
			zap.Error(err))
		return "", fmt.Errorf("convert %s to waveform: %w", filepath.Base(src), err)
	}

	if err := os.Remove(src); err != nil {
		return "", fmt.Errorf("remove source container: %w", err)
	}

	c.logger.Info("converted container to waveform",
		zap.String("src", src),
		zap.String("dst", dst))
	return dst, nil
}

// WaveformToPlayback converts a waveform to a 128kbps MP3 next to it.
// The waveform is kept; the annotation step still needs it.
func (c *Converter) WaveformToPlayback(ctx context.Context, src string) (string, error) {
	dst := replaceExt(src, ".mp3")

	args := []string{"-y", "-i", src, "-ac", "1", "-ar", waveformHertz, "-b:a", playbackBitrate, dst}
	if err := c.run(ctx, c.bin, args); err != nil {
		c.logger.Error("waveform to playback conversion failed",
			zap.String("src", src),
			zap.Error(err))
		return "", fmt.Errorf("convert %s to playback: %w", filepath.Base(src), err)
	}

	c.logger.Info("converted waveform to playback",
		zap.String("src", src),
		zap.String("dst", dst))
	return dst, nil
}

func runCommand(ctx context.Context, bin string, args []string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %s", err, lastLine(out))
	}
	return nil
}

// lastLine keeps error messages short; ffmpeg prints its banner and
// progress before the reason for failing.
func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
