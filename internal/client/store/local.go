package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/jourin/internal/client/kv"
	"github.com/dmitrijs2005/jourin/internal/journal"
	"github.com/dmitrijs2005/jourin/internal/logging"
)

const (
	PastEntriesKey  = "jourin_past_entries"
	MaxLocalEntries = 100
)

type LocalEntryStore struct {
	mu  sync.Mutex
	kv  kv.Store
	log logging.Logger
	now func() time.Time
}

func NewLocalEntryStore(s kv.Store, log logging.Logger) *LocalEntryStore {
	return &LocalEntryStore{kv: s, log: log.With("module", "local_entries"), now: time.Now}
}

func (s *LocalEntryStore) List(ctx context.Context) ([]journal.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *LocalEntryStore) load(ctx context.Context) ([]journal.Entry, error) {
	var entries []journal.Entry
	if _, err := kv.LoadJSON(ctx, s.kv, s.log, PastEntriesKey, &entries); err != nil {
		return nil, fmt.Errorf("failed to read local entries: %w", err)
	}
	if entries == nil {
		entries = []journal.Entry{}
	}
	return entries, nil
}

// Append prepends e and drops the oldest entries beyond MaxLocalEntries.
// An entry with no answers is rejected.
func (s *LocalEntryStore) Append(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	if e.IsBlank() {
		return journal.Entry{}, journal.ErrNoContent()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return journal.Entry{}, err
	}

	if e.Timestamp == 0 {
		e.Timestamp = s.now().UnixMilli()
	}

	entries = append([]journal.Entry{e}, entries...)
	if len(entries) > MaxLocalEntries {
		entries = entries[:MaxLocalEntries]
	}

	if err := kv.SetJSON(ctx, s.kv, PastEntriesKey, entries); err != nil {
		return journal.Entry{}, fmt.Errorf("failed to save local entries: %w", err)
	}
	return e, nil
}

// Clear drops the whole local history.
func (s *LocalEntryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(ctx, PastEntriesKey)
}
