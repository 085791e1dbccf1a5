package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jourin/internal/client/session"
	"github.com/dmitrijs2005/jourin/internal/client/store"
	"github.com/dmitrijs2005/jourin/internal/client/workspace"
	"github.com/dmitrijs2005/jourin/internal/journal"
	"github.com/dmitrijs2005/jourin/internal/logging"
	"github.com/dmitrijs2005/jourin/internal/prompt"
	"github.com/dmitrijs2005/jourin/internal/streak"
	"github.com/dmitrijs2005/jourin/internal/weekly"
)

// ErrExportRequiresLogin is returned by Export for anonymous sessions.
var ErrExportRequiresLogin = errors.New("export requires an online login")

type Exporter interface {
	ExportEntries(ctx context.Context) (string, error)
}

// Generated is the outcome of a successful Generate.
type Generated struct {
	Prompt string
	Entry  journal.Entry
	Streak streak.Record
}

// JournalService turns the draft into a prompt and keeps history and streak
// in the backend that matches the session.
type JournalService struct {
	ws      *workspace.Workspace
	session session.Provider

	local  store.EntryStore
	remote store.EntryStore

	localStreak  StreakCounter
	remoteStreak StreakCounter

	exporter Exporter
	log      logging.Logger
	now      func() time.Time
}

type JournalDeps struct {
	Workspace    *workspace.Workspace
	Session      session.Provider
	Local        store.EntryStore
	Remote       store.EntryStore
	LocalStreak  StreakCounter
	RemoteStreak StreakCounter
	Exporter     Exporter
}

func NewJournalService(d JournalDeps, log logging.Logger) *JournalService {
	return &JournalService{
		ws:           d.Workspace,
		session:      d.Session,
		local:        d.Local,
		remote:       d.Remote,
		localStreak:  d.LocalStreak,
		remoteStreak: d.RemoteStreak,
		exporter:     d.Exporter,
		log:          log.With("module", "journal"),
		now:          time.Now,
	}
}

func (s *JournalService) entries() store.EntryStore {
	return store.Select(s.session, s.local, s.remote)
}

func (s *JournalService) streak() StreakCounter {
	if s.session != nil && s.session.Authenticated() {
		return s.remoteStreak
	}
	return s.localStreak
}

// Generate validates the draft, renders the prompt, stores the entry and
// advances the streak, then blanks the draft. On a validation error nothing
// is stored or cleared.
func (s *JournalService) Generate(ctx context.Context) (Generated, error) {
	draft, err := s.ws.Draft(ctx)
	if err != nil {
		return Generated{}, err
	}
	titles, err := s.ws.Titles(ctx)
	if err != nil {
		return Generated{}, err
	}
	goal, err := s.ws.Goal(ctx)
	if err != nil {
		return Generated{}, err
	}
	saved, err := s.ws.Template(ctx)
	if err != nil {
		return Generated{}, err
	}

	entry := draft
	entry.ID = ""
	entry.UserGoal = goal
	entry.PromptTemplate = saved

	if err := journal.Validate(entry, titles); err != nil {
		return Generated{}, err
	}

	text, err := prompt.Render(prompt.TemplateFor(entry, ""), entry, titles)
	if err != nil {
		return Generated{}, err
	}

	for _, f := range journal.ResolveFields(entry, titles) {
		entry.SetTitle(f.Key, f.Title)
	}
	now := s.now()
	entry.Timestamp = now.UnixMilli()

	stored, err := s.entries().Append(ctx, entry)
	if err != nil {
		return Generated{}, fmt.Errorf("failed to store entry: %w", err)
	}

	rec, err := s.streak().Advance(ctx, streak.Today(now))
	if err != nil {
		s.log.Warn(ctx, "streak update failed", "error", err)
	}

	if err := s.ws.ClearDraft(ctx); err != nil {
		return Generated{}, err
	}

	return Generated{Prompt: text, Entry: stored, Streak: rec}, nil
}

// History lists stored entries, newest first.
func (s *JournalService) History(ctx context.Context) ([]journal.Entry, error) {
	return s.entries().List(ctx)
}

// Regenerate re-renders a stored entry with the template it was created
// with, falling back to the saved template.
func (s *JournalService) Regenerate(ctx context.Context, e journal.Entry) (string, error) {
	titles, err := s.ws.Titles(ctx)
	if err != nil {
		return "", err
	}
	saved, err := s.ws.Template(ctx)
	if err != nil {
		return "", err
	}
	return prompt.Render(prompt.TemplateFor(e, saved), e, titles)
}

// WeeklySummary renders the weekly prompt for the week containing at.
func (s *JournalService) WeeklySummary(ctx context.Context, at time.Time) (string, error) {
	entries, err := s.History(ctx)
	if err != nil {
		return "", err
	}
	titles, err := s.ws.Titles(ctx)
	if err != nil {
		return "", err
	}

	summary := weekly.Summarize(entries, titles, weekly.StartOfWeek(at), weekly.EndOfWeek(at))
	if summary == weekly.NoEntries {
		return summary, nil
	}
	return prompt.RenderWeekly(prompt.WeeklyTemplate, summary), nil
}

// Streak reads the current streak.
func (s *JournalService) Streak(ctx context.Context) (streak.Record, error) {
	return s.streak().Peek(ctx, streak.Today(s.now()))
}

// Export asks the server for a download link to the user's full history.
func (s *JournalService) Export(ctx context.Context) (string, error) {
	if s.session == nil || !s.session.Authenticated() || s.exporter == nil {
		return "", ErrExportRequiresLogin
	}
	return s.exporter.ExportEntries(ctx)
}
