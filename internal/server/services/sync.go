package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jourin/internal/api"
	"github.com/dmitrijs2005/jourin/internal/dbx"
	"github.com/dmitrijs2005/jourin/internal/server/models"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/repomanager"
)

// SyncBatch is what a client uploads after logging in.
type SyncBatch struct {
	Entries   []*models.Entry
	Goals     []*models.Goal
	Templates []*models.Template
}

// SyncService merges a client's local data into the user's account.
type SyncService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewSyncService(db *sql.DB, repomanager repomanager.RepositoryManager) *SyncService {
	return &SyncService{db: db, repomanager: repomanager, now: time.Now}
}

// Sync applies the batch in one transaction and returns the number of
// entries that were new on the server. Entries and goals are a union;
// templates with the same name overwrite the stored body. Entries without
// any answer are dropped before the merge.
func (s *SyncService) Sync(ctx context.Context, userID string, batch SyncBatch) (int, error) {
	entries := make([]*models.Entry, 0, len(batch.Entries))
	for _, e := range batch.Entries {
		if e.Journal().IsBlank() {
			continue
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = s.now().UTC()
		}
		entries = append(entries, e)
	}
	batch.Entries = entries

	var merged int
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		if merged, err = s.repomanager.Entries(tx).Merge(ctx, userID, batch.Entries); err != nil {
			return fmt.Errorf("entries: %w", err)
		}
		if _, err = s.repomanager.Goals(tx).Merge(ctx, userID, batch.Goals); err != nil {
			return fmt.Errorf("goals: %w", err)
		}
		if err = s.repomanager.Templates(tx).Upsert(ctx, userID, batch.Templates); err != nil {
			return fmt.Errorf("templates: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("error syncing: %w", err)
	}
	return merged, nil
}

// BatchFromRequest converts an uploaded sync request into a SyncBatch
// owned by userID.
func BatchFromRequest(userID string, req *api.SyncRequest) SyncBatch {
	var b SyncBatch
	for _, r := range req.Entries {
		b.Entries = append(b.Entries, models.EntryFromJournal(userID, r.Entry()))
	}
	for _, g := range req.Goals {
		b.Goals = append(b.Goals, &models.Goal{UserID: userID, Name: g.Name, Specifics: g.Specifics, IsDefault: g.IsDefault})
	}
	for _, t := range req.Templates {
		b.Templates = append(b.Templates, &models.Template{UserID: userID, Name: t.Name, Body: t.Body})
	}
	return b
}
