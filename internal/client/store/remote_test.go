package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/jourin/internal/api"
	"github.com/dmitrijs2005/jourin/internal/journal"
)

type fakeRemote struct {
	records []api.EntryRecord
	err     error
	nextID  int
}

func (f *fakeRemote) ListEntries(context.Context) ([]api.EntryRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeRemote) CreateEntry(_ context.Context, rec api.EntryRecord) (api.EntryRecord, error) {
	if f.err != nil {
		return api.EntryRecord{}, f.err
	}
	f.nextID++
	rec.ID = "id-" + string(rune('0'+f.nextID))
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	}
	f.records = append([]api.EntryRecord{rec}, f.records...)
	return rec, nil
}

func TestRemote_AppendThenListNewestFirst(t *testing.T) {
	f := &fakeRemote{}
	st := NewRemoteEntryStore(f)
	ctx := context.Background()

	_, err := st.Append(ctx, journal.Entry{Timestamp: 1000, WhatWentWell: "old"})
	require.NoError(t, err)
	got, err := st.Append(ctx, journal.Entry{
		Timestamp:     2000,
		WhatWentWell:  "new",
		DynamicFields: map[string]string{"customField_0": "x"},
		CustomTitles:  map[string]string{"customField_0_title": "X"},
	})
	require.NoError(t, err)
	assert.Equal(t, "id-2", got.ID)
	assert.Equal(t, int64(2000), got.Timestamp)

	entries, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "new", entries[0].WhatWentWell)
	assert.Equal(t, "x", entries[0].DynamicFields["customField_0"])
	assert.Equal(t, "X", entries[0].CustomTitles["customField_0_title"])
}

func TestRemote_ListSortsByTimestamp(t *testing.T) {
	f := &fakeRemote{records: []api.EntryRecord{
		{ID: "a", CreatedAt: time.UnixMilli(1000)},
		{ID: "b", CreatedAt: time.UnixMilli(3000)},
		{ID: "c", CreatedAt: time.UnixMilli(2000)},
	}}

	entries, err := NewRemoteEntryStore(f).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "b", entries[0].ID)
	assert.Equal(t, "c", entries[1].ID)
	assert.Equal(t, "a", entries[2].ID)
}

func TestRemote_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	st := NewRemoteEntryStore(&fakeRemote{err: boom})

	_, err := st.List(context.Background())
	require.ErrorIs(t, err, boom)
	_, err = st.Append(context.Background(), journal.Entry{WhatWentWell: "x"})
	require.ErrorIs(t, err, boom)
}

type staticSession bool

func (s staticSession) Authenticated() bool { return bool(s) }
func (s staticSession) Identity() string    { return "" }

func TestSelect(t *testing.T) {
	local, _ := newLocal(t)
	remote := NewRemoteEntryStore(&fakeRemote{})

	assert.Same(t, remote, Select(staticSession(true), local, remote))
	assert.Same(t, local, Select(staticSession(false), local, remote))
	assert.Same(t, local, Select(nil, local, remote))
}
