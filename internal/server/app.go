// Package server wires the jourin backend together: it opens Postgres, runs
// migrations, builds the services and runs the gRPC and HTTP servers plus
// the refresh-token janitor until a signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/jourin/internal/logging"
	"github.com/dmitrijs2005/jourin/internal/server/config"
	"github.com/dmitrijs2005/jourin/internal/server/httpapi"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jourin/internal/server/services"

	gs "github.com/dmitrijs2005/jourin/internal/server/grpc"
)

const tokenCleanupInterval = time.Hour

// openDB is a seam for tests.
var openDB = repomanager.OpenDB

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	userService   *services.UserService
	entryService  *services.EntryService
	streakService *services.StreakService
	syncService   *services.SyncService
	habitService  *services.HabitService
	feedback      *services.FeedbackService
	postService   *services.PostService
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		userService:   services.NewUserService(db, rm, c),
		entryService:  services.NewEntryService(db, rm, c),
		streakService: services.NewStreakService(db, rm),
		syncService:   services.NewSyncService(db, rm),
		habitService:  services.NewHabitService(db, rm),
		feedback:      services.NewFeedbackService(db, rm),
		postService:   services.NewPostService(db, rm),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) grpcServer() runner {
	return gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, gs.Services{
		Users:   app.userService,
		Entries: app.entryService,
		Streaks: app.streakService,
		Sync:    app.syncService,
	}, app.config.SecretKey)
}

func (app *App) httpServer() runner {
	router := httpapi.NewRouter(httpapi.Deps{
		Entries:        app.entryService,
		Streaks:        app.streakService,
		Sync:           app.syncService,
		Habits:         app.habitService,
		Feedback:       app.feedback,
		Posts:          app.postService,
		SecretKey:      app.config.SecretKey,
		AllowedOrigins: app.config.CORSAllowedOrigins,
		Logger:         app.logger,
	})
	return httpapi.NewServer(app.config.EndpointAddrHTTP, router, app.logger)
}

// start runs r until it returns. A failing server takes the whole app down.
func (app *App) start(ctx context.Context, cancelFunc context.CancelFunc, name string, r runner) {
	if err := r.Run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives or one of the servers
// fails, then waits for everything to stop and closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "grpc", app.grpcServer())
	}()
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "http", app.httpServer())
	}()
	go func() {
		defer wg.Done()
		app.userService.RunTokenJanitor(ctx, tokenCleanupInterval, app.logger.With("module", "token_janitor"))
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Warn(context.Background(), "error closing database", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
