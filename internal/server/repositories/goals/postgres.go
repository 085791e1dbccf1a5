package goals

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

func (r *PostgresRepository) Merge(ctx context.Context, userID string, goals []*models.Goal) (int, error) {
	query := `
		INSERT INTO goals (user_id, name, specifics, is_default)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, name) DO NOTHING
	`
	merged := 0
	for _, g := range goals {
		res, err := r.db.ExecContext(ctx, query, userID, g.Name, g.Specifics, g.IsDefault)
		if err != nil {
			return merged, fmt.Errorf("db error: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return merged, fmt.Errorf("rows affected error: %w", err)
		}
		merged += int(n)
	}
	return merged, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Goal, error) {
	query := `
		SELECT id, name, specifics, is_default
		FROM goals
		WHERE user_id = $1
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select goals: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Goal, 0)
	for rows.Next() {
		g := models.Goal{UserID: userID}
		if err := rows.Scan(&g.ID, &g.Name, &g.Specifics, &g.IsDefault); err != nil {
			return nil, err
		}
		result = append(result, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
