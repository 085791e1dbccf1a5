package posts

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

func (r *PostgresRepository) Create(ctx context.Context, p *models.Post) error {
	query := `
		INSERT INTO posts (user_id, content, platform)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowContext(ctx, query, p.UserID, p.Content, p.Platform).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	query = `
		INSERT INTO post_analytics (post_id, impressions, likes, comments, reposts)
		VALUES ($1, $2, $3, $4, $5)
	`
	a := p.Analytics
	if _, err := r.db.ExecContext(ctx, query, p.ID, a.Impressions, a.Likes, a.Comments, a.Reposts); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Post, error) {
	query := `
		SELECT p.id, p.content, p.platform, p.created_at,
		       COALESCE(a.impressions, 0), COALESCE(a.likes, 0),
		       COALESCE(a.comments, 0), COALESCE(a.reposts, 0)
		FROM posts p
		LEFT JOIN post_analytics a ON a.post_id = p.id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select posts: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Post, 0)
	for rows.Next() {
		p := models.Post{UserID: userID}
		a := &p.Analytics
		if err := rows.Scan(&p.ID, &p.Content, &p.Platform, &p.CreatedAt,
			&a.Impressions, &a.Likes, &a.Comments, &a.Reposts); err != nil {
			return nil, err
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
