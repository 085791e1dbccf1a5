package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jourin/internal/common"
	"github.com/dmitrijs2005/jourin/internal/server/models"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/repomanager"
)

type FeedbackService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewFeedbackService(db *sql.DB, repomanager repomanager.RepositoryManager) *FeedbackService {
	return &FeedbackService{db: db, repomanager: repomanager}
}

// Submit stores a feedback message. userID may be empty.
func (s *FeedbackService) Submit(ctx context.Context, userID, content string) (*models.Feedback, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", common.ErrorInvalidArgument)
	}

	f := &models.Feedback{UserID: userID, Content: content}
	if err := s.repomanager.Feedback(s.db).Create(ctx, f); err != nil {
		return nil, fmt.Errorf("error saving feedback: %w", err)
	}
	return f, nil
}
