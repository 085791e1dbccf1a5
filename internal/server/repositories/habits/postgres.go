package habits

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jourin/internal/common"
	"github.com/dmitrijs2005/jourin/internal/dbx"
	"github.com/dmitrijs2005/jourin/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func encodeData(d map[string]any) (string, error) {
	if len(d) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode error: %w", err)
	}
	return string(b), nil
}

func decodeData(b []byte) (map[string]any, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var d map[string]any
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}
	return d, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, h *models.Habit) error {
	data, err := encodeData(h.Data)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO habits (user_id, date, data, comments)
		VALUES ($1, $2, $3::jsonb, $4)
		ON CONFLICT (user_id, date)
		DO UPDATE SET data = EXCLUDED.data, comments = EXCLUDED.comments, updated_at = now()
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, h.UserID, h.Date, data, h.Comments).Scan(&h.ID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Habit, error) {
	query := `
		SELECT id, user_id, date, data, comments
		FROM habits
		WHERE id = $1
	`
	h := &models.Habit{}
	var data []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&h.ID, &h.UserID, &h.Date, &data, &h.Comments)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if h.Data, err = decodeData(data); err != nil {
		return nil, err
	}
	return h, nil
}

func (r *PostgresRepository) Update(ctx context.Context, h *models.Habit) error {
	data, err := encodeData(h.Data)
	if err != nil {
		return err
	}

	query := `
		UPDATE habits
		SET data = $2::jsonb, comments = $3, updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, h.ID, data, h.Comments)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) ListRange(ctx context.Context, userID string, from, to time.Time) ([]*models.Habit, error) {
	query := `
		SELECT id, date, data, comments
		FROM habits
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date
	`
	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to select habits: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Habit, 0)
	for rows.Next() {
		h := models.Habit{UserID: userID}
		var data []byte
		if err := rows.Scan(&h.ID, &h.Date, &data, &h.Comments); err != nil {
			return nil, err
		}
		if h.Data, err = decodeData(data); err != nil {
			return nil, err
		}
		result = append(result, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
