package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/jourin/internal/common"
	"github.com/dmitrijs2005/jourin/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	want := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"2025-03-02", "2025-03-02T23:30:00-05:00", "2025-03-02T00:00:00Z"} {
		got, err := parseDay(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := parseDay("03/02/2025")
	require.ErrorIs(t, err, common.ErrorInvalidArgument)
}

func TestHabitService_RecordUpsertsPerDay(t *testing.T) {
	rm := newFakeRepoManager()
	s := NewHabitService(nil, rm)
	s.now = func() time.Time { return time.Date(2025, 3, 4, 22, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	first, err := s.Record(ctx, "u1", "", map[string]any{"water": true}, "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), first.Date)

	second, err := s.Record(ctx, "u1", "2025-03-04", map[string]any{"water": false}, "forgot")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	require.Len(t, rm.habits.rows, 1)
	assert.Equal(t, map[string]any{"water": false}, rm.habits.rows[0].Data)
	assert.Equal(t, "forgot", rm.habits.rows[0].Comments)

	_, err = s.Record(ctx, "u1", "yesterday", nil, "")
	require.ErrorIs(t, err, common.ErrorInvalidArgument)
}

func TestHabitService_Update(t *testing.T) {
	db, mock := newMockDB(t)
	rm := newFakeRepoManager()
	rm.habits.rows = []*models.Habit{{ID: "h1", UserID: "u1", Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)}}
	s := NewHabitService(db, rm)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	got, err := s.Update(ctx, "u1", "h1", map[string]any{"sleep": 8}, "rested")
	require.NoError(t, err)
	assert.Equal(t, "rested", got.Comments)
	assert.Equal(t, "rested", rm.habits.rows[0].Comments)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = s.Update(ctx, "u2", "h1", nil, "not mine")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, "rested", rm.habits.rows[0].Comments)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = s.Update(ctx, "u1", "missing", nil, "")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestHabitService_Week(t *testing.T) {
	rm := newFakeRepoManager()
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }
	rm.habits.rows = []*models.Habit{
		{ID: "h0", UserID: "u1", Date: day(1), Data: map[string]any{"n": 0}},
		{ID: "h1", UserID: "u1", Date: day(2), Data: map[string]any{"n": 1}},
		{ID: "h2", UserID: "u1", Date: day(8), Data: map[string]any{"n": 2}},
		{ID: "h3", UserID: "u1", Date: day(9), Data: map[string]any{"n": 3}},
		{ID: "hx", UserID: "u2", Date: day(3), Data: map[string]any{"n": 9}},
	}
	s := NewHabitService(nil, rm)

	got, err := s.Week(context.Background(), "u1", "2025-03-02")
	require.NoError(t, err)
	assert.Equal(t, map[string][]map[string]any{
		"2025-03-02": {{"n": 1}},
		"2025-03-08": {{"n": 2}},
	}, got)

	_, err = s.Week(context.Background(), "u1", "")
	require.ErrorIs(t, err, common.ErrorInvalidArgument)
}
