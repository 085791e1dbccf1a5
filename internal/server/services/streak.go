package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jourin/internal/common"
	"github.com/dmitrijs2005/jourin/internal/dbx"
	"github.com/dmitrijs2005/jourin/internal/server/models"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/streaks"
	"github.com/dmitrijs2005/jourin/internal/streak"
)

// userStreakStore is a streak.Store over one user's row.
type userStreakStore struct {
	repo   streaks.Repository
	userID string
}

func (s *userStreakStore) Load(ctx context.Context) (streak.Record, bool, error) {
	m, ok, err := s.repo.Get(ctx, s.userID)
	if err != nil || !ok {
		return streak.Record{}, ok, err
	}
	return streak.Record{Count: m.Count, LastActivityDate: m.LastActivityDate}, true, nil
}

func (s *userStreakStore) Save(ctx context.Context, rec streak.Record) error {
	return s.repo.Save(ctx, models.Streak{UserID: s.userID, Count: rec.Count, LastActivityDate: rec.LastActivityDate})
}

// StreakService runs the streak rules against the streaks table. The
// caller's calendar date is passed in so day boundaries follow the user.
type StreakService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewStreakService(db *sql.DB, repomanager repomanager.RepositoryManager) *StreakService {
	return &StreakService{db: db, repomanager: repomanager, now: time.Now}
}

// Get is the read path: it decays a stale streak to zero.
func (s *StreakService) Get(ctx context.Context, userID, today string) (streak.Record, error) {
	return s.run(ctx, userID, today, (*streak.Tracker).Peek)
}

// Advance is the write path, called after a successful post.
func (s *StreakService) Advance(ctx context.Context, userID, today string) (streak.Record, error) {
	return s.run(ctx, userID, today, (*streak.Tracker).Advance)
}

func (s *StreakService) run(ctx context.Context, userID, today string,
	op func(*streak.Tracker, context.Context, string) (streak.Record, error)) (streak.Record, error) {

	if today == "" {
		today = streak.Today(s.now())
	}
	if _, err := time.Parse(streak.DateLayout, today); err != nil {
		return streak.Record{}, fmt.Errorf("%w: bad date %q", common.ErrorInvalidArgument, today)
	}

	var rec streak.Record
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		tracker := streak.NewTracker(&userStreakStore{repo: s.repomanager.Streaks(tx), userID: userID}, nil)
		var err error
		rec, err = op(tracker, ctx, today)
		return err
	})
	if err != nil {
		return streak.Record{}, fmt.Errorf("error updating streak: %w", err)
	}
	return rec, nil
}
