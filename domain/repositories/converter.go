package repositories

import "context"

// Converter abstracts the external transcoding tool.
type Converter interface {
	// ContainerToWaveform converts an uploaded container file to an
	// uncompressed mono 16kHz waveform. The source file is removed on
	// success and the new path returned.
	ContainerToWaveform(ctx context.Context, src string) (string, error)
	// WaveformToPlayback converts a waveform to the compressed playback
	// format. The source file is kept.
	WaveformToPlayback(ctx context.Context, src string) (string, error)
}
