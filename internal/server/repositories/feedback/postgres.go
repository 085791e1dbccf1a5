package feedback

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/jourin/internal/dbx"
	"github.com/dmitrijs2005/jourin/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, f *models.Feedback) error {
	query := `
		INSERT INTO feedback (user_id, content)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	userID := sql.NullString{String: f.UserID, Valid: f.UserID != ""}
	if err := r.db.QueryRowContext(ctx, query, userID, f.Content).Scan(&f.ID, &f.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
