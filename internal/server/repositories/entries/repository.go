// Package entries stores journal entries per user.
package entries

import (
	"context"

	"github.com/dmitrijs2005/jourin/internal/server/models"
)

type Repository interface {
	// Create inserts entry, filling in ID. A second entry with the same
	// (user, created_at) yields common.ErrorAlreadyExists.
	Create(ctx context.Context, entry *models.Entry) error
	// Merge inserts the entries that are not stored yet, keyed on
	// (user, created_at), and returns how many were new.
	Merge(ctx context.Context, userID string, entries []*models.Entry) (int, error)
	// List returns the user's entries, newest first.
	List(ctx context.Context, userID string) ([]*models.Entry, error)
}
