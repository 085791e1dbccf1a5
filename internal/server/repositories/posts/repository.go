// Package posts stores the social posts a user logs for coaching, each
// with one row of engagement analytics.
package posts

import (
	"context"

	"github.com/dmitrijs2005/jourin/internal/server/models"
)

type Repository interface {
	// Create inserts the post and its analytics, filling in ID and
	// CreatedAt. Run it inside a transaction.
	Create(ctx context.Context, p *models.Post) error
	// List returns the user's posts with analytics, newest first.
	List(ctx context.Context, userID string) ([]*models.Post, error)
}
