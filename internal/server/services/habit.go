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
	"github.com/dmitrijs2005/jourin/internal/streak"
)

// HabitService keeps one set of habit answers per user and day.
type HabitService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewHabitService(db *sql.DB, repomanager repomanager.RepositoryManager) *HabitService {
	return &HabitService{db: db, repomanager: repomanager, now: time.Now}
}

// parseDay accepts YYYY-MM-DD or an RFC 3339 time and returns the calendar
// day as UTC midnight.
func parseDay(v string) (time.Time, error) {
	t, err := time.Parse(streak.DateLayout, v)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, v); err != nil {
			return time.Time{}, fmt.Errorf("%w: bad date %q", common.ErrorInvalidArgument, v)
		}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// Record stores the answers for day, replacing what was there. An empty
// day means today.
func (s *HabitService) Record(ctx context.Context, userID, day string, data map[string]any, comments string) (*models.Habit, error) {
	if day == "" {
		day = streak.Today(s.now())
	}
	date, err := parseDay(day)
	if err != nil {
		return nil, err
	}

	h := &models.Habit{UserID: userID, Date: date, Data: data, Comments: comments}
	if err := s.repomanager.Habits(s.db).Upsert(ctx, h); err != nil {
		return nil, fmt.Errorf("error saving habits: %w", err)
	}
	return h, nil
}

// Update replaces the answers of an existing row. Rows of other users are
// reported as common.ErrorNotFound.
func (s *HabitService) Update(ctx context.Context, userID, id string, data map[string]any, comments string) (*models.Habit, error) {
	var updated *models.Habit
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Habits(tx)

		h, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if h.UserID != userID {
			return common.ErrorNotFound
		}

		h.Data = data
		h.Comments = comments
		if err := repo.Update(ctx, h); err != nil {
			return err
		}
		updated = h
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error updating habits: %w", err)
	}
	return updated, nil
}

// Week returns the seven days starting at weekStart, keyed by YYYY-MM-DD.
// Each day holds a one-element list with that day's data.
func (s *HabitService) Week(ctx context.Context, userID, weekStart string) (map[string][]map[string]any, error) {
	if weekStart == "" {
		return nil, fmt.Errorf("%w: weekStart is required", common.ErrorInvalidArgument)
	}
	from, err := parseDay(weekStart)
	if err != nil {
		return nil, err
	}

	rows, err := s.repomanager.Habits(s.db).ListRange(ctx, userID, from, from.AddDate(0, 0, 7))
	if err != nil {
		return nil, fmt.Errorf("error listing habits: %w", err)
	}

	out := make(map[string][]map[string]any, len(rows))
	for _, h := range rows {
		out[h.Date.Format(streak.DateLayout)] = []map[string]any{h.Data}
	}
	return out, nil
}
