package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestAssetStoreSaveAndPath(t *testing.T) {
	dir := t.TempDir()
	s, err := NewAssetStore(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewAssetStore failed: %v", err)
	}

	path, err := s.Save("clip.webm", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved asset: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("Expected saved payload, got %q", data)
	}
}

func TestPathStripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()
	s, err := NewAssetStore(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewAssetStore failed: %v", err)
	}

	got := s.Path("../../etc/passwd")
	want := filepath.Join(dir, "passwd")
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestListPlayback(t *testing.T) {
	dir := t.TempDir()
	s, err := NewAssetStore(dir, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewAssetStore failed: %v", err)
	}

	for _, name := range []string{"b.mp3", "a.mp3", "a.wav", "a.txt"} {
		if _, err := s.WriteBytes(name, []byte("x")); err != nil {
			t.Fatalf("WriteBytes %s failed: %v", name, err)
		}
	}

	names, err := s.ListPlayback()
	if err != nil {
		t.Fatalf("ListPlayback failed: %v", err)
	}

	if !reflect.DeepEqual(names, []string{"a.mp3", "b.mp3"}) {
		t.Errorf("Expected sorted mp3 names, got %v", names)
	}
}
