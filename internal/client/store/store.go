// Package store holds journal history on the client.
//
// Two backends satisfy EntryStore: LocalEntryStore keeps up to
// MaxLocalEntries entries in the client's key-value storage, and
// RemoteEntryStore reads and writes the authenticated user's entries on the
// server. Select picks one for the current session; callers never branch on
// login state themselves.
package store

import (
	"context"

	"github.com/dmitrijs2005/jourin/internal/client/session"
	"github.com/dmitrijs2005/jourin/internal/journal"
)

// EntryStore is an append-only, newest-first history of journal entries.
type EntryStore interface {
	List(ctx context.Context) ([]journal.Entry, error)
	// Append stores e and returns it as stored (the remote backend assigns
	// an ID).
	Append(ctx context.Context, e journal.Entry) (journal.Entry, error)
}

// Select returns remote for authenticated sessions and local otherwise.
func Select(p session.Provider, local, remote EntryStore) EntryStore {
	if p != nil && p.Authenticated() {
		return remote
	}
	return local
}
