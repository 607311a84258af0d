package store

import (
	"sync"
	"time"

	"github.com/voicebook/server/domain/entities"
	"github.com/voicebook/server/domain/repositories"
)

// MemoryBookStore holds the currently loaded book context. At most one
// book is live at a time; Replace swaps it wholesale and bumps the
// version. Snapshot hands out a copy so an in-flight question keeps a
// consistent context even while an upload replaces it.
type MemoryBookStore struct {
	mu     sync.RWMutex
	book   entities.Book
	loaded bool
}

var _ repositories.BookStore = (*MemoryBookStore)(nil)

// NewMemoryBookStore creates an empty book store.
func NewMemoryBookStore() *MemoryBookStore {
	return &MemoryBookStore{}
}

// Replace swaps the whole book context and returns the new snapshot.
func (s *MemoryBookStore) Replace(title, text string) entities.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.book = entities.Book{
		Title:      title,
		Text:       text,
		Version:    s.book.Version + 1,
		UploadedAt: time.Now(),
	}
	s.loaded = true
	return s.book
}

// Snapshot returns a copy of the current book context and whether one
// has been loaded yet.
func (s *MemoryBookStore) Snapshot() (entities.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.book, s.loaded
}
