// Package goals stores the named goals a user has synced from the client.
package goals

import (
	"context"

	"github.com/dmitrijs2005/jourin/internal/server/models"
)

type Repository interface {
	// Merge inserts goals whose name the user does not have yet.
	Merge(ctx context.Context, userID string, goals []*models.Goal) (int, error)
	List(ctx context.Context, userID string) ([]*models.Goal, error)
}
