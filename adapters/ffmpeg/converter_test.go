package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap/zaptest"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("fake audio"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
}

func TestContainerToWaveform(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "20240101-120000.webm")
	writeFile(t, src)

	var gotBin string
	var gotArgs []string

	c := New(zaptest.NewLogger(t))
	c.run = func(ctx context.Context, bin string, args []string) error {
		gotBin = bin
		gotArgs = args
		// The real tool writes the destination file.
		writeFile(t, args[len(args)-1])
		return nil
	}

	dst, err := c.ContainerToWaveform(context.Background(), src)
	if err != nil {
		t.Fatalf("ContainerToWaveform failed: %v", err)
	}

	want := filepath.Join(dir, "20240101-120000.wav")
	if dst != want {
		t.Errorf("Expected destination %s, got %s", want, dst)
	}

	if gotBin != "ffmpeg" {
		t.Errorf("Expected binary ffmpeg, got %s", gotBin)
	}

	wantArgs := []string{"-y", "-i", src, "-ac", "1", "-ar", "16000", dst}
	if !reflect.DeepEqual(gotArgs, wantArgs) {
		t.Errorf("Expected args %v, got %v", wantArgs, gotArgs)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("Expected source container to be removed after conversion")
	}
}

func TestContainerToWaveformFailureKeepsSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "clip.webm")
	writeFile(t, src)

	c := New(zaptest.NewLogger(t))
	c.run = func(ctx context.Context, bin string, args []string) error {
		return errors.New("exit status 1: no such codec")
	}

	if _, err := c.ContainerToWaveform(context.Background(), src); err == nil {
		t.Fatal("Expected error from failed conversion")
	}

	if _, err := os.Stat(src); err != nil {
		t.Error("Expected source container to survive a failed conversion")
	}
}

func TestWaveformToPlayback(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "clip.wav")
	writeFile(t, src)

	var gotArgs []string

	c := New(zaptest.NewLogger(t))
	c.run = func(ctx context.Context, bin string, args []string) error {
		gotArgs = args
		writeFile(t, args[len(args)-1])
		return nil
	}

	dst, err := c.WaveformToPlayback(context.Background(), src)
	if err != nil {
		t.Fatalf("WaveformToPlayback failed: %v", err)
	}

	want := filepath.Join(dir, "clip.mp3")
	if dst != want {
		t.Errorf("Expected destination %s, got %s", want, dst)
	}

	wantArgs := []string{"-y", "-i", src, "-ac", "1", "-ar", "16000", "-b:a", "128k", dst}
	if !reflect.DeepEqual(gotArgs, wantArgs) {
		t.Errorf("Expected args %v, got %v", wantArgs, gotArgs)
	}

	if _, err := os.Stat(src); err != nil {
		t.Error("Expected waveform to survive playback conversion")
	}
}

func TestNewBinaryOverride(t *testing.T) {
	os.Setenv("FFMPEG_BIN", "/opt/ffmpeg/bin/ffmpeg")
	defer os.Unsetenv("FFMPEG_BIN")

	c := New(zaptest.NewLogger(t))
	if c.bin != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("Expected overridden binary path, got %s", c.bin)
	}
}

func TestLastLine(t *testing.T) {
	out := []byte("ffmpeg version 6.0\nbuilt with gcc\nclip.webm: Invalid data found\n")
	if got := lastLine(out); got != "clip.webm: Invalid data found" {
		t.Errorf("Expected last line, got %q", got)
	}
}
