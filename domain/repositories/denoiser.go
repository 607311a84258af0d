package repositories

// DenoiseResult reports whether noise reduction was applied. A failed
// run is never an error to the caller; the waveform is simply left as
// it was and Reason says why.
type DenoiseResult struct {
	Applied bool
	Reason  string
}

// Denoiser abstracts the noise-suppression routine applied in place
// on a waveform file.
type Denoiser interface {
	Denoise(path string) DenoiseResult
}
