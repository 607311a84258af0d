package store

import "testing"

func TestBookStoreEmptyUntilReplace(t *testing.T) {
	s := NewMemoryBookStore()

	if _, ok := s.Snapshot(); ok {
		t.Error("Expected no book before the first upload")
	}

	book := s.Replace("moby-dick.pdf", "Call me Ishmael.")
	if book.Version != 1 {
		t.Errorf("Expected version 1 after first replace, got %d", book.Version)
	}

	snapshot, ok := s.Snapshot()
	if !ok {
		t.Fatal("Expected a book after upload")
	}
	if snapshot.Title != "moby-dick.pdf" || snapshot.Text != "Call me Ishmael." {
		t.Errorf("Unexpected snapshot %+v", snapshot)
	}
}

func TestBookStoreReplaceBumpsVersion(t *testing.T) {
	s := NewMemoryBookStore()

	s.Replace("first.pdf", "first text")
	before, _ := s.Snapshot()

	s.Replace("second.pdf", "second text")
	after, _ := s.Snapshot()

	if after.Version != before.Version+1 {
		t.Errorf("Expected version bump, got %d then %d", before.Version, after.Version)
	}
	if after.Text != "second text" {
		t.Errorf("Expected wholesale replacement, got %q", after.Text)
	}

	// The earlier snapshot keeps its own context.
	if before.Text != "first text" {
		t.Errorf("Expected snapshot isolation, got %q", before.Text)
	}
}
