package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jourin/internal/common"
	"github.com/dmitrijs2005/jourin/internal/dbx"
	"github.com/dmitrijs2005/jourin/internal/server/models"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/repomanager"
)

// PostService keeps the posts a user logs for coaching together with their
// engagement numbers. Analysing them is left to the client.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostService(db *sql.DB, repomanager repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: repomanager}
}

func (s *PostService) List(ctx context.Context, userID string) ([]*models.Post, error) {
	list, err := s.repomanager.Posts(s.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return list, nil
}

// Create stores p and its analytics in one transaction.
func (s *PostService) Create(ctx context.Context, userID string, p *models.Post) (*models.Post, error) {
	if strings.TrimSpace(p.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrorInvalidArgument)
	}

	stored := *p
	stored.ID = ""
	stored.UserID = userID

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Posts(tx).Create(ctx, &stored)
	})
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	return &stored, nil
}
