package entries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jourin/internal/common"
	"github.com/dmitrijs2005/jourin/internal/dbx"
	"github.com/dmitrijs2005/jourin/internal/server/models"
)

// PostgresRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const insertColumns = `
	(user_id, what_went_well, what_i_learned, what_would_do_differently, next_step,
	 dynamic_fields, custom_titles, user_goal, prompt_template, created_at)
	VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8, $9, $10)
`

func insertArgs(e *models.Entry) ([]any, error) {
	dynamic, err := encodeMap(e.DynamicFields)
	if err != nil {
		return nil, err
	}
	titles, err := encodeMap(e.CustomTitles)
	if err != nil {
		return nil, err
	}
	return []any{
		e.UserID, e.WhatWentWell, e.WhatILearned, e.WhatWouldDoDifferently, e.NextStep,
		dynamic, titles, e.UserGoal, e.PromptTemplate, e.CreatedAt,
	}, nil
}

func encodeMap(m map[string]string) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode error: %w", err)
	}
	return string(b), nil
}

func decodeMap(b []byte) (map[string]string, error) {
	var m map[string]string
	if len(b) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}

func (r *PostgresRepository) Create(ctx context.Context, e *models.Entry) error {
	args, err := insertArgs(e)
	if err != nil {
		return err
	}

	query := `INSERT INTO entries` + insertColumns + `
		ON CONFLICT (user_id, created_at) DO NOTHING
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&e.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Merge(ctx context.Context, userID string, entries []*models.Entry) (int, error) {
	query := `INSERT INTO entries` + insertColumns + `
		ON CONFLICT (user_id, created_at) DO NOTHING
	`

	merged := 0
	for _, e := range entries {
		e.UserID = userID
		args, err := insertArgs(e)
		if err != nil {
			return merged, err
		}
		res, err := r.db.ExecContext(ctx, query, args...)
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

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Entry, error) {
	query := `
		SELECT id, what_went_well, what_i_learned, what_would_do_differently, next_step,
		       dynamic_fields, custom_titles, user_goal, prompt_template, created_at
		FROM entries
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Entry, 0)
	for rows.Next() {
		item := models.Entry{UserID: userID}
		var dynamic, titles []byte
		if err := rows.Scan(
			&item.ID, &item.WhatWentWell, &item.WhatILearned, &item.WhatWouldDoDifferently, &item.NextStep,
			&dynamic, &titles, &item.UserGoal, &item.PromptTemplate, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		if item.DynamicFields, err = decodeMap(dynamic); err != nil {
			return nil, err
		}
		if item.CustomTitles, err = decodeMap(titles); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
