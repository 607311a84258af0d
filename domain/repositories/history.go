package repositories

import "github.com/voicebook/server/domain/entities"

// HistoryStore is the append-only log of answered questions. Append
// order is the only ordering; entries are never updated or deleted.
type HistoryStore interface {
	Append(entry entities.HistoryEntry) error
	LoadAll() ([]entities.HistoryEntry, error)
}

// BookStore holds the currently loaded book context. Replace swaps the
// whole context; Snapshot returns an immutable copy so a request is
// answered against a consistent version.
type BookStore interface {
	Replace(title, text string) entities.Book
	Snapshot() (entities.Book, bool)
}
