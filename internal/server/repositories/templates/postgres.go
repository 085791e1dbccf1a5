package templates

import (
	"context"
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

func (r *PostgresRepository) Upsert(ctx context.Context, userID string, templates []*models.Template) error {
	query := `
		INSERT INTO templates (user_id, name, body)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, name)
		DO UPDATE SET body = EXCLUDED.body
	`
	for _, t := range templates {
		if _, err := r.db.ExecContext(ctx, query, userID, t.Name, t.Body); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Template, error) {
	query := `
		SELECT id, name, body
		FROM templates
		WHERE user_id = $1
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select templates: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Template, 0)
	for rows.Next() {
		t := models.Template{UserID: userID}
		if err := rows.Scan(&t.ID, &t.Name, &t.Body); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
