package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/voicebook/server/domain/entities"
	"github.com/voicebook/server/domain/repositories"
)

const historyFileName = "conversation_history.txt"

// FileHistoryStore is an append-only log of answered questions, one
// JSON record per line. A mutex keeps appends from interleaving; the
// file handle is opened and closed per call.
type FileHistoryStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

var _ repositories.HistoryStore = (*FileHistoryStore)(nil)

// NewFileHistoryStore creates a history store backed by a log file in dir.
func NewFileHistoryStore(dir string, logger *zap.Logger) *FileHistoryStore {
	return &FileHistoryStore{
		path:   filepath.Join(dir, historyFileName),
		logger: logger,
	}
}

// Append writes one entry to the end of the log.
func (s *FileHistoryStore) Append(entry entities.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history log: %w", err)
	}

	if _, err := f.Write(append(line, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("append history entry: %w", err)
	}

	return f.Close()
}

// LoadAll re-reads the whole log in append order. Malformed lines are
// skipped with a warning, not fatal.
func (s *FileHistoryStore) LoadAll() ([]entities.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history log: %w", err)
	}
	defer f.Close()

	var entries []entities.HistoryEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry entities.HistoryEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			s.logger.Warn("Skipping malformed history line",
				zap.Int("line", lineNo),
				zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history log: %w", err)
	}

	return entries, nil
}
