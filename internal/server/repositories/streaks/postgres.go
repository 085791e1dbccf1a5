package streaks

import (
	"context"
	"database/sql"
	"errors"
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

func (r *PostgresRepository) Get(ctx context.Context, userID string) (models.Streak, bool, error) {
	query := `
		SELECT current_streak, last_activity_date
		FROM streaks
		WHERE user_id = $1
	`
	s := models.Streak{UserID: userID}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&s.Count, &s.LastActivityDate)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Streak{UserID: userID}, false, nil
	}
	if err != nil {
		return models.Streak{}, false, fmt.Errorf("db error: %w", err)
	}
	return s, true, nil
}

func (r *PostgresRepository) Save(ctx context.Context, s models.Streak) error {
	query := `
		INSERT INTO streaks (user_id, current_streak, last_activity_date)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET current_streak = EXCLUDED.current_streak, last_activity_date = EXCLUDED.last_activity_date
	`
	if _, err := r.db.ExecContext(ctx, query, s.UserID, s.Count, s.LastActivityDate); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	return nil
}
