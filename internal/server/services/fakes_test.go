package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/jourin/internal/common"
	"github.com/dmitrijs2005/jourin/internal/dbx"
	"github.com/dmitrijs2005/jourin/internal/server/config"
	"github.com/dmitrijs2005/jourin/internal/server/models"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/entries"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/feedback"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/goals"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/habits"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/posts"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/streaks"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/templates"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		S3Region:                     "us-east-1",
		S3RootUser:                   "minioadmin",
		S3RootPassword:               "minioadmin",
		S3BaseEndpoint:               "http://127.0.0.1:9000",
		S3Bucket:                     "jourin-exports",
		ExportLinkValidity:           15 * time.Minute,
	}
}

// --- users ---

type fakeUsers struct {
	createOut *models.User
	createErr error
	getOut    *models.User
	getErr    error
	created   []*models.User
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, u)
	return f.createOut, nil
}

func (f *fakeUsers) GetUserByLogin(context.Context, string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

// --- refresh tokens ---

type fakeRefreshTokens struct {
	takeOut   *models.RefreshToken
	takeErr   error
	createErr error

	created    []string
	expiresAt  []time.Time
	taken      []string
	expiredN   int64
	expiredErr error
	expiredAt  time.Time
}

func (f *fakeRefreshTokens) Issue(_ context.Context, _ string, token string, expiresAt time.Time) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	f.expiresAt = append(f.expiresAt, expiresAt)
	return nil
}

func (f *fakeRefreshTokens) Take(_ context.Context, token string) (*models.RefreshToken, error) {
	if f.takeErr != nil {
		return nil, f.takeErr
	}
	f.taken = append(f.taken, token)
	return f.takeOut, nil
}

func (f *fakeRefreshTokens) Purge(_ context.Context, before time.Time) (int64, error) {
	f.expiredAt = before
	return f.expiredN, f.expiredErr
}

// --- entries ---

type fakeEntries struct {
	mu       sync.Mutex
	rows     []*models.Entry
	listErr  error
	mergeErr error
}

func (f *fakeEntries) Create(_ context.Context, e *models.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.UserID == e.UserID && r.CreatedAt.Equal(e.CreatedAt) {
			return common.ErrorAlreadyExists
		}
	}
	e.ID = "id-" + e.CreatedAt.Format(time.RFC3339Nano)
	cp := *e
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeEntries) Merge(ctx context.Context, userID string, in []*models.Entry) (int, error) {
	if f.mergeErr != nil {
		return 0, f.mergeErr
	}
	n := 0
	for _, e := range in {
		e.UserID = userID
		if err := f.Create(ctx, e); err == nil {
			n++
		}
	}
	return n, nil
}

func (f *fakeEntries) List(_ context.Context, userID string) ([]*models.Entry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Entry, 0)
	for _, r := range f.rows {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// --- streaks ---

type fakeStreaks struct {
	rows  map[string]models.Streak
	saves int
}

func (f *fakeStreaks) Get(_ context.Context, userID string) (models.Streak, bool, error) {
	s, ok := f.rows[userID]
	return s, ok, nil
}

func (f *fakeStreaks) Save(_ context.Context, s models.Streak) error {
	if f.rows == nil {
		f.rows = map[string]models.Streak{}
	}
	f.rows[s.UserID] = s
	f.saves++
	return nil
}

// --- goals and templates ---

type fakeGoals struct {
	merged   []*models.Goal
	mergeErr error
}

func (f *fakeGoals) Merge(_ context.Context, _ string, in []*models.Goal) (int, error) {
	if f.mergeErr != nil {
		return 0, f.mergeErr
	}
	f.merged = append(f.merged, in...)
	return len(in), nil
}

func (f *fakeGoals) List(context.Context, string) ([]*models.Goal, error) { return f.merged, nil }

type fakeTemplates struct {
	upserted  []*models.Template
	upsertErr error
}

func (f *fakeTemplates) Upsert(_ context.Context, _ string, in []*models.Template) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, in...)
	return nil
}

func (f *fakeTemplates) List(context.Context, string) ([]*models.Template, error) {
	return f.upserted, nil
}

// --- habits, feedback, posts ---

type fakeHabits struct {
	mu        sync.Mutex
	rows      []*models.Habit
	nextID    int
	upsertErr error
	getErr    error
}

func (f *fakeHabits) Upsert(_ context.Context, h *models.Habit) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.UserID == h.UserID && r.Date.Equal(h.Date) {
			r.Data, r.Comments = h.Data, h.Comments
			h.ID = r.ID
			return nil
		}
	}
	f.nextID++
	h.ID = fmt.Sprintf("h%d", f.nextID)
	cp := *h
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeHabits) Get(_ context.Context, id string) (*models.Habit, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeHabits) Update(_ context.Context, h *models.Habit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.ID == h.ID {
			r.Data, r.Comments = h.Data, h.Comments
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeHabits) ListRange(_ context.Context, userID string, from, to time.Time) ([]*models.Habit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Habit, 0)
	for _, r := range f.rows {
		if r.UserID == userID && !r.Date.Before(from) && r.Date.Before(to) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type fakeFeedback struct {
	created   []*models.Feedback
	createErr error
}

func (f *fakeFeedback) Create(_ context.Context, fb *models.Feedback) error {
	if f.createErr != nil {
		return f.createErr
	}
	fb.ID = fmt.Sprintf("f%d", len(f.created)+1)
	f.created = append(f.created, fb)
	return nil
}

type fakePosts struct {
	rows      []*models.Post
	createErr error
}

func (f *fakePosts) Create(_ context.Context, p *models.Post) error {
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = fmt.Sprintf("p%d", len(f.rows)+1)
	f.rows = append([]*models.Post{p}, f.rows...)
	return nil
}

func (f *fakePosts) List(_ context.Context, userID string) ([]*models.Post, error) {
	out := make([]*models.Post, 0)
	for _, p := range f.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

// --- manager ---

type fakeRepoManager struct {
	users     *fakeUsers
	tokens    *fakeRefreshTokens
	entries   *fakeEntries
	streaks   *fakeStreaks
	goals     *fakeGoals
	templates *fakeTemplates
	habits    *fakeHabits
	feedback  *fakeFeedback
	posts     *fakePosts
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:     &fakeUsers{},
		tokens:    &fakeRefreshTokens{},
		entries:   &fakeEntries{},
		streaks:   &fakeStreaks{},
		goals:     &fakeGoals{},
		templates: &fakeTemplates{},
		habits:    &fakeHabits{},
		feedback:  &fakeFeedback{},
		posts:     &fakePosts{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.users }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.tokens }
func (m *fakeRepoManager) Entries(dbx.DBTX) entries.Repository             { return m.entries }
func (m *fakeRepoManager) Streaks(dbx.DBTX) streaks.Repository             { return m.streaks }
func (m *fakeRepoManager) Goals(dbx.DBTX) goals.Repository                 { return m.goals }
func (m *fakeRepoManager) Templates(dbx.DBTX) templates.Repository         { return m.templates }
func (m *fakeRepoManager) Habits(dbx.DBTX) habits.Repository               { return m.habits }
func (m *fakeRepoManager) Feedback(dbx.DBTX) feedback.Repository           { return m.feedback }
func (m *fakeRepoManager) Posts(dbx.DBTX) posts.Repository                 { return m.posts }
