// Package templates stores named prompt templates per user.
package templates

import (
	"context"

	"github.com/dmitrijs2005/jourin/internal/server/models"
)

type Repository interface {
	// Upsert writes each template, replacing the body of an existing name.
	Upsert(ctx context.Context, userID string, templates []*models.Template) error
	List(ctx context.Context, userID string) ([]*models.Template, error)
}
