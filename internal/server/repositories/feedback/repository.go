// Package feedback stores free-text feedback messages.
package feedback

import (
	"context"

	"github.com/dmitrijs2005/jourin/internal/server/models"
)

type Repository interface {
	// Create inserts f and fills in ID and CreatedAt.
	Create(ctx context.Context, f *models.Feedback) error
}
