package services

import (
	"context"

	"github.com/dmitrijs2005/jourin/internal/api"
	"github.com/dmitrijs2005/jourin/internal/streak"
)

// fakeClient implements client.Client for unit tests.
type fakeClient struct {
	CloseErr    error
	RegisterErr error

	GetSaltRet []byte
	GetSaltErr error

	LoginErr error
	PingErr  error

	SyncErr   error
	SyncCalls int
	LastSync  *api.SyncRequest

	ExportURL string
	ExportErr error

	Records   []api.EntryRecord
	StreakRec streak.Record
	StreakErr error

	LastRegisterUser     string
	LastRegisterSalt     []byte
	LastRegisterVerifier []byte

	LastGetSaltUser string

	LastLoginUser     string
	LastLoginVerifier []byte

	LoggedOut bool
}

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Register(ctx context.Context, username string, salt []byte, verifier []byte) error {
	f.LastRegisterUser = username
	f.LastRegisterSalt = append([]byte(nil), salt...)
	f.LastRegisterVerifier = append([]byte(nil), verifier...)
	return f.RegisterErr
}

func (f *fakeClient) GetSalt(ctx context.Context, username string) ([]byte, error) {
	f.LastGetSaltUser = username
	return append([]byte(nil), f.GetSaltRet...), f.GetSaltErr
}

func (f *fakeClient) Login(ctx context.Context, username string, verifier []byte) error {
	f.LastLoginUser = username
	f.LastLoginVerifier = append([]byte(nil), verifier...)
	return f.LoginErr
}

func (f *fakeClient) Logout() { f.LoggedOut = true }

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) ListEntries(ctx context.Context) ([]api.EntryRecord, error) {
	return f.Records, nil
}

func (f *fakeClient) CreateEntry(ctx context.Context, rec api.EntryRecord) (api.EntryRecord, error) {
	rec.ID = "remote-id"
	f.Records = append([]api.EntryRecord{rec}, f.Records...)
	return rec, nil
}

func (f *fakeClient) ExportEntries(ctx context.Context) (string, error) {
	return f.ExportURL, f.ExportErr
}

func (f *fakeClient) GetStreak(ctx context.Context, today string) (streak.Record, error) {
	return f.StreakRec, f.StreakErr
}

func (f *fakeClient) AdvanceStreak(ctx context.Context, today string) (streak.Record, error) {
	if f.StreakErr != nil {
		return streak.Record{}, f.StreakErr
	}
	f.StreakRec = streak.Record{Count: f.StreakRec.Count + 1, LastActivityDate: today}
	return f.StreakRec, nil
}

func (f *fakeClient) Sync(ctx context.Context, req *api.SyncRequest) (int, error) {
	f.SyncCalls++
	f.LastSync = req
	if f.SyncErr != nil {
		return 0, f.SyncErr
	}
	return len(req.Entries), nil
}
