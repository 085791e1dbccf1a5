package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/jourin/internal/client/kv"
	"github.com/dmitrijs2005/jourin/internal/client/services"
	"github.com/dmitrijs2005/jourin/internal/client/session"
	"github.com/dmitrijs2005/jourin/internal/client/workspace"
	"github.com/dmitrijs2005/jourin/internal/journal"
	"github.com/dmitrijs2005/jourin/internal/logging"
	"github.com/dmitrijs2005/jourin/internal/streak"
)

type fakeAuth struct {
	// Register
	regUser string
	regPass []byte
	regErr  error

	// OnlineLogin
	onlineUser string
	onlinePass []byte
	onlineErr  error

	// OfflineLogin
	offlineUser string
	offlinePass []byte
	offlineErr  error

	logoutCalled bool
	clearCalled  bool
	clearErr     error
	pingErr      error
}

func (f *fakeAuth) Register(_ context.Context, user string, pass []byte) error {
	f.regUser, f.regPass = user, append([]byte(nil), pass...)
	return f.regErr
}
func (f *fakeAuth) OnlineLogin(_ context.Context, user string, pass []byte) error {
	f.onlineUser, f.onlinePass = user, append([]byte(nil), pass...)
	return f.onlineErr
}
func (f *fakeAuth) OfflineLogin(_ context.Context, user string, pass []byte) error {
	f.offlineUser, f.offlinePass = user, append([]byte(nil), pass...)
	return f.offlineErr
}
func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	return nil
}
func (f *fakeAuth) ClearOfflineData(context.Context) error {
	f.clearCalled = true
	return f.clearErr
}
func (f *fakeAuth) Close(ctx context.Context) error { return nil }
func (f *fakeAuth) Ping(ctx context.Context) error  { return f.pingErr }

type fakeJournal struct {
	generated   services.Generated
	generateErr error

	history []journal.Entry

	regenerated journal.Entry
	regenText   string

	weeklyAt   time.Time
	weeklyText string

	streakRec streak.Record

	exportURL string
	exportErr error
}

func (f *fakeJournal) Generate(context.Context) (services.Generated, error) {
	return f.generated, f.generateErr
}
func (f *fakeJournal) History(context.Context) ([]journal.Entry, error) { return f.history, nil }
func (f *fakeJournal) Regenerate(_ context.Context, e journal.Entry) (string, error) {
	f.regenerated = e
	return f.regenText, nil
}
func (f *fakeJournal) WeeklySummary(_ context.Context, at time.Time) (string, error) {
	f.weeklyAt = at
	return f.weeklyText, nil
}
func (f *fakeJournal) Streak(context.Context) (streak.Record, error) { return f.streakRec, nil }
func (f *fakeJournal) Export(context.Context) (string, error)       { return f.exportURL, f.exportErr }

var fixedNow = time.Date(2024, time.March, 13, 20, 0, 0, 0, time.UTC)

// newTestApp builds an App over an in-memory workspace that reads input.
func newTestApp(t *testing.T, auth *fakeAuth, js *fakeJournal, input string) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return &App{
		authService: auth,
		journal:     js,
		ws:          workspace.New(kv.NewMemoryStore(), logging.Discard()),
		session:     session.New(),
		log:         logging.Discard(),
		reader:      bufio.NewReader(strings.NewReader(input)),
		out:         out,
		now:         func() time.Time { return fixedNow },
	}, out
}

func stubInputs(t *testing.T, username string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func readerFrom(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}
