package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// AssetStore owns the uploads directory: per-request audio assets named
// by a timestamp-derived base name, plus transcript and sentiment text
// files next to them.
type AssetStore struct {
	dir    string
	logger *zap.Logger
}

// NewAssetStore creates the asset directory if needed.
func NewAssetStore(dir string, logger *zap.Logger) (*AssetStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create asset directory: %w", err)
	}
	return &AssetStore{dir: dir, logger: logger}, nil
}

// Dir returns the asset directory path.
func (s *AssetStore) Dir() string {
	return s.dir
}

// NewBaseName returns a timestamp-derived base name for one request's
// family of assets.
func (s *AssetStore) NewBaseName() string {
	return time.Now().Format("20060102-150405")
}

// Path resolves an asset name inside the store directory. The name is
// reduced to its base so a request cannot escape the directory.
func (s *AssetStore) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Save streams an upload into the store and returns its full path.
func (s *AssetStore) Save(name string, r io.Reader) (string, error) {
	path := s.Path(name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create asset: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write asset: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close asset: %w", err)
	}

	s.logger.Info("Saved asset", zap.String("path", path))
	return path, nil
}

// WriteBytes writes a complete asset in one shot.
func (s *AssetStore) WriteBytes(name string, data []byte) (string, error) {
	path := s.Path(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write asset: %w", err)
	}
	return path, nil
}

// WriteText persists a text artifact (transcript, sentiment).
func (s *AssetStore) WriteText(name, content string) (string, error) {
	return s.WriteBytes(name, []byte(content))
}

// ListPlayback returns the stored playback file names in sorted order.
func (s *AssetStore) ListPlayback() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read asset directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".mp3") {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)
	return names, nil
}
