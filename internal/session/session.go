// Package session keeps the dataset the user is currently working with.
// There is a single slot per process: a new upload replaces the previous
// dataset, which is then discarded.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/agent-tracker/internal/tracker"
)

// Entry is one uploaded dataset and where it came from.
type Entry struct {
	ID         string
	FileName   string
	UploadedAt time.Time
	Dataset    *tracker.Dataset
}

// Store holds the current Entry. Handlers may run concurrently, so access is
// guarded; the Dataset itself is immutable and shared read-only.
type Store struct {
	mu      sync.RWMutex
	current *Entry
	now     func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Replace installs ds as the current dataset and returns its entry.
func (s *Store) Replace(ds *tracker.Dataset, fileName string) Entry {
	e := &Entry{
		ID:         uuid.NewString(),
		FileName:   fileName,
		UploadedAt: s.now().UTC(),
		Dataset:    ds,
	}
	s.mu.Lock()
	s.current = e
	s.mu.Unlock()
	return *e
}

// Current returns the current entry, if any.
func (s *Store) Current() (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Entry{}, false
	}
	return *s.current, true
}

// Clear discards the current dataset.
func (s *Store) Clear() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}
