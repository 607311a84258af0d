// Package denoise applies spectral-gate noise reduction in place on a
// waveform file. The gate profile is taken from the first second of the
// original signal; when the signal is shorter, the profile window is
// clamped to what is there.
package denoise

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/voicebook/server/domain/repositories"
)

const (
	frameSize = 1024
	hopSize   = frameSize / 4

	// Bins whose magnitude falls below thresholdFactor times the noise
	// profile are attenuated to attenuation of their original level.
	thresholdFactor = 1.5
	attenuation     = 0.1
)

// SpectralGate implements the Denoiser interface. A failed run never
// reaches the orchestrator as an error: the waveform is left unmodified
// and the result says why.
type SpectralGate struct {
	logger *zap.Logger
}

var _ repositories.Denoiser = (*SpectralGate)(nil)

// New creates a SpectralGate denoiser.
func New(logger *zap.Logger) *SpectralGate {
	return &SpectralGate{logger: logger}
}

// Denoise reads the waveform at path, collapses it to mono, gates it
// against a noise profile from the first second, and overwrites the
// file at its original sample rate.
func (d *SpectralGate) Denoise(path string) repositories.DenoiseResult {
	samples, sampleRate, bitDepth, err := readWaveform(path)
	if err != nil {
		return d.skip(path, fmt.Errorf("read waveform: %w", err))
	}
	if len(samples) == 0 {
		return d.skip(path, fmt.Errorf("waveform is empty"))
	}

	clean := reduceNoise(samples, sampleRate)

	if err := writeWaveform(path, clean, sampleRate, bitDepth); err != nil {
		return d.skip(path, fmt.Errorf("write waveform: %w", err))
	}

	d.logger.Info("noise reduction applied",
		zap.String("path", path),
		zap.Int("samples", len(samples)),
		zap.Int("sampleRate", sampleRate))
	return repositories.DenoiseResult{Applied: true}
}

func (d *SpectralGate) skip(path string, err error) repositories.DenoiseResult {
	d.logger.Warn("noise reduction skipped",
		zap.String("path", path),
		zap.Error(err))
	return repositories.DenoiseResult{Applied: false, Reason: err.Error()}
}

// readWaveform decodes a WAV file into mono float64 samples in [-1, 1].
// Multi-channel audio is collapsed by averaging the channels.
func readWaveform(path string) ([]float64, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, err
	}
	if buf.Format == nil || buf.Format.NumChannels == 0 {
		return nil, 0, 0, fmt.Errorf("missing format header")
	}

	channels := buf.Format.NumChannels
	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float64(int(1) << (bitDepth - 1))

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch])
		}
		samples[i] = sum / float64(channels) / scale
	}

	return samples, buf.Format.SampleRate, bitDepth, nil
}

func writeWaveform(path string, samples []float64, sampleRate, bitDepth int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, 1, 1)
	scale := float64(int(1) << (bitDepth - 1))

	data := make([]int, len(samples))
	for i, s := range samples {
		v := math.Round(s * scale)
		if v > scale-1 {
			v = scale - 1
		}
		if v < -scale {
			v = -scale
		}
		data[i] = int(v)
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// reduceNoise runs a short-time Fourier transform over the signal and
// attenuates bins that stay below a threshold derived from the noise
// profile. The profile covers the first second of the original signal,
// clamped to the signal length for shorter inputs.
func reduceNoise(samples []float64, sampleRate int) []float64 {
	padded := samples
	if len(padded) < frameSize {
		padded = make([]float64, frameSize)
		copy(padded, samples)
	}

	win := window.Hann(ones(frameSize))
	fft := fourier.NewFFT(frameSize)
	bins := frameSize/2 + 1

	frames := 1 + (len(padded)-frameSize)/hopSize

	// Noise profile: mean magnitude per bin over the frames that start
	// inside the profile window.
	profileEnd := sampleRate
	if profileEnd > len(padded) {
		profileEnd = len(padded)
	}
	profileFrames := 1 + (profileEnd-1)/hopSize
	if profileFrames > frames {
		profileFrames = frames
	}

	frame := make([]float64, frameSize)
	coeffs := make([]complex128, bins)

	noise := make([]float64, bins)
	for i := 0; i < profileFrames; i++ {
		windowedFrame(frame, padded, i*hopSize, win)
		fft.Coefficients(coeffs, frame)
		for k, c := range coeffs {
			noise[k] += cmplxAbs(c)
		}
	}
	for k := range noise {
		noise[k] /= float64(profileFrames)
	}

	// Gate every frame and rebuild the signal by overlap-add.
	out := make([]float64, len(padded))
	norm := make([]float64, len(padded))
	recon := make([]float64, frameSize)

	for i := 0; i < frames; i++ {
		start := i * hopSize
		windowedFrame(frame, padded, start, win)
		fft.Coefficients(coeffs, frame)

		for k, c := range coeffs {
			if cmplxAbs(c) < noise[k]*thresholdFactor {
				coeffs[k] = c * complex(attenuation, 0)
			}
		}

		fft.Sequence(recon, coeffs)
		for j := 0; j < frameSize; j++ {
			// Sequence is unnormalized: divide by the transform length.
			out[start+j] += recon[j] / float64(frameSize) * win[j]
			norm[start+j] += win[j] * win[j]
		}
	}

	for i := range out {
		if norm[i] > 1e-8 {
			out[i] /= norm[i]
		} else {
			// Tail samples no full frame covers pass through untouched.
			out[i] = padded[i]
		}
	}

	return out[:len(samples)]
}

func windowedFrame(dst, src []float64, start int, win []float64) {
	for j := 0; j < len(dst); j++ {
		if start+j < len(src) {
			dst[j] = src[start+j] * win[j]
		} else {
			dst[j] = 0
		}
	}
}

func ones(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = 1
	}
	return s
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
