package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/jourin/internal/api"
	"github.com/dmitrijs2005/jourin/internal/client/store"
	"github.com/dmitrijs2005/jourin/internal/client/workspace"
	"github.com/dmitrijs2005/jourin/internal/logging"
)

// DefaultTemplateName names the single saved template a client uploads.
const DefaultTemplateName = "default"

type SyncClient interface {
	Sync(ctx context.Context, req *api.SyncRequest) (int, error)
}

// SyncCoordinator uploads data written while anonymous (history, goal,
// saved template) right after login, then clears it locally. It runs at
// most once per login of an identity and never clears anything unless the
// upload succeeded.
type SyncCoordinator struct {
	mu     sync.Mutex
	client SyncClient
	local  *store.LocalEntryStore
	ws     *workspace.Workspace
	log    logging.Logger
	done   map[string]bool
}

func NewSyncCoordinator(c SyncClient, local *store.LocalEntryStore, ws *workspace.Workspace, log logging.Logger) *SyncCoordinator {
	return &SyncCoordinator{
		client: c,
		local:  local,
		ws:     ws,
		log:    log.With("module", "login_sync"),
		done:   make(map[string]bool),
	}
}

func (s *SyncCoordinator) SyncOnLogin(ctx context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done[identity] {
		return nil
	}

	req, err := s.pending(ctx)
	if err != nil {
		return err
	}
	if req == nil {
		s.done[identity] = true
		return nil
	}

	merged, err := s.client.Sync(ctx, req)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	if err := s.local.Clear(ctx); err != nil {
		return err
	}
	if err := s.ws.SetGoal(ctx, ""); err != nil {
		return err
	}
	if err := s.ws.SetTemplate(ctx, ""); err != nil {
		return err
	}

	s.done[identity] = true
	s.log.Info(ctx, "local data synced",
		"user", identity,
		"entries", len(req.Entries),
		"merged", merged,
		"goals", len(req.Goals),
		"templates", len(req.Templates))
	return nil
}

// Forget clears the done mark so the next login of identity syncs again.
func (s *SyncCoordinator) Forget(identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.done, identity)
}

// pending returns nil when there is nothing to upload.
func (s *SyncCoordinator) pending(ctx context.Context) (*api.SyncRequest, error) {
	entries, err := s.local.List(ctx)
	if err != nil {
		return nil, err
	}
	goal, err := s.ws.Goal(ctx)
	if err != nil {
		return nil, err
	}
	tpl, err := s.ws.Template(ctx)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 && goal == "" && tpl == "" {
		return nil, nil
	}

	req := &api.SyncRequest{
		Entries:   api.FromEntries(entries),
		Goals:     []api.Goal{},
		Templates: []api.Template{},
	}
	if goal != "" {
		req.Goals = append(req.Goals, api.Goal{Name: goal, IsDefault: true})
	}
	if tpl != "" {
		req.Templates = append(req.Templates, api.Template{Name: DefaultTemplateName, Body: tpl})
	}
	return req, nil
}
