// Package habits stores daily habit answers, one row per user and day.
package habits

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jourin/internal/server/models"
)

type Repository interface {
	// Upsert writes h for (h.UserID, h.Date), replacing data and comments of
	// an existing row, and fills in h.ID.
	Upsert(ctx context.Context, h *models.Habit) error
	// Get returns common.ErrorNotFound for an unknown id.
	Get(ctx context.Context, id string) (*models.Habit, error)
	// Update replaces data and comments of the row with h.ID.
	Update(ctx context.Context, h *models.Habit) error
	// ListRange returns the user's rows with from <= date < to, oldest first.
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]*models.Habit, error)
}
