package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/voicebook/server/adapters/llm"
	"github.com/voicebook/server/adapters/store"
	"github.com/voicebook/server/domain/repositories"
)

// fakeConverter mimics the transcoder's filesystem effects without
// spawning a subprocess.
type fakeConverter struct {
	waveformErr error
	playbackErr error
}

func (f *fakeConverter) ContainerToWaveform(ctx context.Context, src string) (string, error) {
	if f.waveformErr != nil {
		return "", f.waveformErr
	}
	dst := strings.TrimSuffix(src, filepath.Ext(src)) + ".wav"
	if err := os.WriteFile(dst, []byte("fake waveform"), 0o644); err != nil {
		return "", err
	}
	if err := os.Remove(src); err != nil {
		return "", err
	}
	return dst, nil
}

func (f *fakeConverter) WaveformToPlayback(ctx context.Context, src string) (string, error) {
	if f.playbackErr != nil {
		return "", f.playbackErr
	}
	dst := strings.TrimSuffix(src, filepath.Ext(src)) + ".mp3"
	if err := os.WriteFile(dst, []byte("fake mp3"), 0o644); err != nil {
		return "", err
	}
	return dst, nil
}

type fakeDenoiser struct {
	result repositories.DenoiseResult
	calls  int
}

func (f *fakeDenoiser) Denoise(path string) repositories.DenoiseResult {
	f.calls++
	return f.result
}

func newTestRecorder(t *testing.T, annotator repositories.Annotator) (*RecorderService, string) {
	t.Helper()
	dir := t.TempDir()
	assets, err := store.NewAssetStore(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewAssetStore failed: %v", err)
	}

	svc := NewRecorderService(
		assets,
		&fakeConverter{},
		&fakeDenoiser{result: repositories.DenoiseResult{Applied: true}},
		annotator,
		zaptest.NewLogger(t),
	)
	return svc, dir
}

func TestProcessSuccess(t *testing.T) {
	annotator := &llm.MockAnnotator{
		AnnotateResponse: "Text: hello there\n\nSentiment Analysis: positive",
	}
	svc, dir := newTestRecorder(t, annotator)

	result, err := svc.Process(context.Background(), "recording.webm", strings.NewReader("container bytes"))
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if result.Sentiment != "positive" {
		t.Errorf("Expected sentiment 'positive', got %q", result.Sentiment)
	}
	if !strings.HasSuffix(result.ProcessedFile, ".mp3") {
		t.Errorf("Expected an mp3 playback file, got %q", result.ProcessedFile)
	}

	// Sentiment file is named by substituting the transcript file's suffix.
	wantSentiment := strings.TrimSuffix(result.TranscriptionFile, ".txt") + "_sentiment.txt"
	if result.SentimentFile != wantSentiment {
		t.Errorf("Expected sentiment file %q, got %q", wantSentiment, result.SentimentFile)
	}

	transcript, err := os.ReadFile(filepath.Join(dir, result.TranscriptionFile))
	if err != nil {
		t.Fatalf("Failed to read transcript: %v", err)
	}
	if string(transcript) != "hello there" {
		t.Errorf("Expected transcript content, got %q", transcript)
	}

	sentiment, err := os.ReadFile(filepath.Join(dir, result.SentimentFile))
	if err != nil {
		t.Fatalf("Failed to read sentiment file: %v", err)
	}
	want := "Text: hello there\nSentiment: positive\n"
	if string(sentiment) != want {
		t.Errorf("Expected sentiment body %q, got %q", want, sentiment)
	}

	// The container is gone; exactly one waveform remains.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read asset dir: %v", err)
	}
	var wavs, webms int
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".wav":
			wavs++
		case ".webm":
			webms++
		}
	}
	if wavs != 1 || webms != 0 {
		t.Errorf("Expected 1 waveform and 0 containers, got %d and %d", wavs, webms)
	}
}

func TestProcessRejectsBadExtension(t *testing.T) {
	svc, dir := newTestRecorder(t, llm.NewMockAnnotator())

	for _, name := range []string{"", "clip.ogg", "clip"} {
		_, err := svc.Process(context.Background(), name, strings.NewReader("bytes"))
		if err == nil {
			t.Fatalf("Expected validation error for %q", name)
		}
		if !IsClientFault(err) {
			t.Errorf("Expected client fault for %q, got %v", name, err)
		}
	}

	// Nothing may be written for rejected uploads.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read asset dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty asset dir after rejected uploads, got %d entries", len(entries))
	}
}

func TestProcessContinuesWhenDenoiseSkipped(t *testing.T) {
	dir := t.TempDir()
	assets, err := store.NewAssetStore(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewAssetStore failed: %v", err)
	}

	denoiser := &fakeDenoiser{result: repositories.DenoiseResult{Applied: false, Reason: "library failure"}}
	svc := NewRecorderService(assets, &fakeConverter{}, denoiser, llm.NewMockAnnotator(), zaptest.NewLogger(t))

	if _, err := svc.Process(context.Background(), "clip.webm", strings.NewReader("bytes")); err != nil {
		t.Fatalf("Expected pipeline to continue past skipped denoise, got %v", err)
	}
	if denoiser.calls != 1 {
		t.Errorf("Expected denoiser to be called once, got %d", denoiser.calls)
	}
}

func TestProcessConversionFailure(t *testing.T) {
	dir := t.TempDir()
	assets, err := store.NewAssetStore(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewAssetStore failed: %v", err)
	}

	converter := &fakeConverter{waveformErr: errors.New("ffmpeg exploded")}
	svc := NewRecorderService(assets, converter,
		&fakeDenoiser{result: repositories.DenoiseResult{Applied: true}},
		llm.NewMockAnnotator(), zaptest.NewLogger(t))

	_, err = svc.Process(context.Background(), "clip.webm", strings.NewReader("bytes"))
	if err == nil {
		t.Fatal("Expected conversion error")
	}
	if StageOf(err) != StageConvertWaveform {
		t.Errorf("Expected stage %q, got %q", StageConvertWaveform, StageOf(err))
	}
	if IsClientFault(err) {
		t.Error("Expected conversion failure to be a server fault")
	}
}

func TestProcessAnnotationFailure(t *testing.T) {
	annotator := &llm.MockAnnotator{Err: errors.New("quota exceeded")}
	svc, dir := newTestRecorder(t, annotator)

	_, err := svc.Process(context.Background(), "clip.webm", strings.NewReader("bytes"))
	if err == nil {
		t.Fatal("Expected annotation error")
	}
	if StageOf(err) != StageAnnotate {
		t.Errorf("Expected stage %q, got %q", StageAnnotate, StageOf(err))
	}

	// No transcript or sentiment artifacts on a failed annotation.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read asset dir: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".txt" {
			t.Errorf("Expected no text artifacts, found %s", e.Name())
		}
	}
}

func TestProcessMalformedModelResponse(t *testing.T) {
	annotator := &llm.MockAnnotator{AnnotateResponse: "the model rambled with no labels"}
	svc, dir := newTestRecorder(t, annotator)

	result, err := svc.Process(context.Background(), "clip.webm", strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("Expected malformed response to degrade silently, got %v", err)
	}

	if result.Sentiment != "" {
		t.Errorf("Expected empty sentiment, got %q", result.Sentiment)
	}

	transcript, err := os.ReadFile(filepath.Join(dir, result.TranscriptionFile))
	if err != nil {
		t.Fatalf("Failed to read transcript: %v", err)
	}
	if string(transcript) != "" {
		t.Errorf("Expected empty transcript file, got %q", transcript)
	}
}
