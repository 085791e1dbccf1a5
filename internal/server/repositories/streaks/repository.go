// Package streaks persists each user's streak record.
package streaks

import (
	"context"

	"github.com/dmitrijs2005/jourin/internal/server/models"
)

type Repository interface {
	// Get reports false when the user has no record yet.
	Get(ctx context.Context, userID string) (models.Streak, bool, error)
	Save(ctx context.Context, s models.Streak) error
}
