package client

import (
	"context"

	"github.com/dmitrijs2005/jourin/internal/api"
	"github.com/dmitrijs2005/jourin/internal/streak"
)

type Client interface {
	Close() error
	Register(ctx context.Context, username string, salt []byte, verifier []byte) error
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifier []byte) error
	// Logout forgets the token pair held by the client.
	Logout()
	Ping(ctx context.Context) error

	ListEntries(ctx context.Context) ([]api.EntryRecord, error)
	CreateEntry(ctx context.Context, rec api.EntryRecord) (api.EntryRecord, error)
	ExportEntries(ctx context.Context) (url string, err error)

	GetStreak(ctx context.Context, today string) (streak.Record, error)
	AdvanceStreak(ctx context.Context, today string) (streak.Record, error)

	Sync(ctx context.Context, req *api.SyncRequest) (merged int, err error)
}
