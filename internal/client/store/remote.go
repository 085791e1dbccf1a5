package store

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/jourin/internal/api"
	"github.com/dmitrijs2005/jourin/internal/journal"
)

// RemoteClient is the part of the server API the remote store needs.
type RemoteClient interface {
	ListEntries(ctx context.Context) ([]api.EntryRecord, error)
	CreateEntry(ctx context.Context, rec api.EntryRecord) (api.EntryRecord, error)
}

type RemoteEntryStore struct {
	client RemoteClient
}

func NewRemoteEntryStore(c RemoteClient) *RemoteEntryStore {
	return &RemoteEntryStore{client: c}
}

func (s *RemoteEntryStore) List(ctx context.Context) ([]journal.Entry, error) {
	recs, err := s.client.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]journal.Entry, 0, len(recs))
	for _, r := range recs {
		entries = append(entries, r.Entry())
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries, nil
}

func (s *RemoteEntryStore) Append(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	rec, err := s.client.CreateEntry(ctx, api.FromEntry(e))
	if err != nil {
		return journal.Entry{}, err
	}
	return rec.Entry(), nil
}
