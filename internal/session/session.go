package session

import (
	"sync"
	"time"

	"github.com/joseph-ayodele/lease-abstractor/internal/leasefields"
)

// Entry is one abstracted document in the current batch.
type Entry struct {
	Filename    string             `json:"filename"`
	Data        leasefields.Record `json:"data"`
	ExtractedAt time.Time          `json:"extracted_at"`
}

// Session owns the in-memory batch of extractions the operator is reviewing.
// A batch lives until it is reset; it never persists across restarts.
// Safe for concurrent use.
type Session struct {
	mu      sync.RWMutex
	entries []Entry
}

func New() *Session {
	return &Session{}
}

// Append adds an extraction to the end of the batch. Re-processing a
// filename already in the batch replaces that entry in place.
func (s *Session) Append(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].Filename == e.Filename {
			s.entries[i] = e
			return
		}
	}
	s.entries = append(s.entries, e)
}

// Entries returns a snapshot copy of the batch in extraction order.
func (s *Session) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry for a filename.
func (s *Session) Get(filename string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.Filename == filename {
			return e, true
		}
	}
	return Entry{}, false
}

// UpdateData replaces the record for a filename wholesale. Review edits go
// through the cleaning pass before landing here, so the stored record is
// always well-formed.
func (s *Session) UpdateData(filename string, rec leasefields.Record) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].Filename == filename {
			s.entries[i].Data = rec
			return true
		}
	}
	return false
}

// Reset drops the whole batch.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// Len returns the number of entries in the batch.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
