package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/jourin/internal/client/client"
	"github.com/dmitrijs2005/jourin/internal/client/config"
	"github.com/dmitrijs2005/jourin/internal/client/kv"
	"github.com/dmitrijs2005/jourin/internal/client/services"
	"github.com/dmitrijs2005/jourin/internal/client/session"
	"github.com/dmitrijs2005/jourin/internal/client/store"
	"github.com/dmitrijs2005/jourin/internal/client/workspace"
	"github.com/dmitrijs2005/jourin/internal/filex"
	"github.com/dmitrijs2005/jourin/internal/journal"
	"github.com/dmitrijs2005/jourin/internal/logging"
	"github.com/dmitrijs2005/jourin/internal/streak"
	"github.com/fatih/color"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

// journalService is the part of services.JournalService the commands use.
type journalService interface {
	Generate(ctx context.Context) (services.Generated, error)
	History(ctx context.Context) ([]journal.Entry, error)
	Regenerate(ctx context.Context, e journal.Entry) (string, error)
	WeeklySummary(ctx context.Context, at time.Time) (string, error)
	Streak(ctx context.Context) (streak.Record, error)
	Export(ctx context.Context) (string, error)
}

type App struct {
	config      *config.Config
	authService services.AuthService
	journal     journalService
	ws          *workspace.Workspace
	session     *session.Session
	log         logging.Logger

	modeMu sync.RWMutex
	mode   Mode

	reader  *bufio.Reader
	out     io.Writer
	closers []func() error
	now     func() time.Time
}

// openStore opens the key-value backend named by the config. The returned
// closer is never nil.
func openStore(ctx context.Context, c *config.Config) (kv.Store, func() error, error) {
	switch c.StoreBackend {
	case config.StoreSQLite:
		if err := filex.EnsureParentDir(c.StorePath); err != nil {
			return nil, nil, err
		}
		s, err := kv.OpenSQLite(ctx, c.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.StoreDiskv:
		if err := filex.EnsureDir(c.StorePath); err != nil {
			return nil, nil, err
		}
		return kv.NewDiskvStore(c.StorePath), func() error { return nil }, nil
	case config.StoreMemory:
		return kv.NewMemoryStore(), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", c.StoreBackend)
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	kvs, closeStore, err := openStore(ctx, c)
	if err != nil {
		log.Error(ctx, "error opening local storage", "backend", c.StoreBackend, "error", err)
		return nil, err
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	sess := session.New()
	ws := workspace.New(kvs, log)
	local := store.NewLocalEntryStore(kvs, log)
	broadcaster := streak.NewBroadcaster()

	syncer := services.NewSyncCoordinator(apiClient, local, ws, log)
	as := services.NewAuthService(apiClient, kvs, sess, syncer, log)
	js := services.NewJournalService(services.JournalDeps{
		Workspace:    ws,
		Session:      sess,
		Local:        local,
		Remote:       store.NewRemoteEntryStore(apiClient),
		LocalStreak:  streak.NewTracker(store.NewStreakStore(kvs, log), broadcaster),
		RemoteStreak: services.NewRemoteStreak(apiClient, broadcaster),
		Exporter:     apiClient,
	}, log)

	a := &App{
		config:      c,
		authService: as,
		journal:     js,
		ws:          ws,
		session:     sess,
		log:         log.With("module", "cli"),
		reader:      bufio.NewReader(os.Stdin),
		out:         color.Output,
		closers:     []func() error{closeStore},
		now:         time.Now,
	}
	broadcaster.Subscribe(a.onStreakChanged)

	return a, nil
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(context.Background(), "switched mode", "mode", string(mode))
	}
}

// Run blocks in the REPL until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	printlnFn("Welcome to jourin (type 'help' for commands)")

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.log.Warn(ctx, "error closing client", "error", err)
	}
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn(ctx, "error closing storage", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session != nil && a.session.Identity() != ""
}

func (a *App) getStatus() string {
	s := ""
	if a.isLoggedIn() {
		s = a.session.Identity() + " "
	}
	if m := a.Mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode between online and offline until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.authService.Ping(pingCtx)
	cancel()

	switch {
	case err == nil:
		a.setMode(ModeOnline)
	case errors.Is(err, client.ErrUnavailable):
		a.setMode(ModeOffline)
	default:
		a.log.Warn(ctx, "ping failed", "error", err)
		a.setMode(ModeOffline)
	}
}
