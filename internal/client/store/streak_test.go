package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/jourin/internal/client/kv"
	"github.com/dmitrijs2005/jourin/internal/logging"
	"github.com/dmitrijs2005/jourin/internal/streak"
)

func TestStreakStore_LoadSave(t *testing.T) {
	raw := kv.NewMemoryStore()
	s := NewStreakStore(raw, logging.Discard())
	ctx := context.Background()

	_, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, streak.Record{Count: 3, LastActivityDate: "2024-03-05"}))

	b, err := raw.Get(ctx, StreakKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"currentStreak":3,"lastPostDate":"2024-03-05"}`, string(b))

	rec, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, rec.Count)
}

func TestStreakStore_NullDateAndCorruption(t *testing.T) {
	raw := kv.NewMemoryStore()
	s := NewStreakStore(raw, logging.Discard())
	ctx := context.Background()

	require.NoError(t, raw.Set(ctx, StreakKey, []byte(`{"currentStreak":0,"lastPostDate":null}`)))
	rec, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, rec.LastActivityDate)

	require.NoError(t, raw.Set(ctx, StreakKey, []byte(`garbage`)))
	_, ok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStreakStore_DrivesTracker(t *testing.T) {
	tr := streak.NewTracker(NewStreakStore(kv.NewMemoryStore(), logging.Discard()), nil)
	ctx := context.Background()

	rec, err := tr.Advance(ctx, "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Count)

	rec, err = tr.Advance(ctx, "2024-03-06")
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Count)
}
