package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/jourin/internal/logging"
	"github.com/dmitrijs2005/jourin/internal/server/models"
	"github.com/dmitrijs2005/jourin/internal/server/services"
	"github.com/dmitrijs2005/jourin/internal/streak"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type entrySvc interface {
	List(ctx context.Context, userID string) ([]*models.Entry, error)
	Create(ctx context.Context, userID string, e *models.Entry) (*models.Entry, error)
	Weekly(ctx context.Context, userID string, at time.Time) (string, error)
}

type streakSvc interface {
	Get(ctx context.Context, userID, today string) (streak.Record, error)
	Advance(ctx context.Context, userID, today string) (streak.Record, error)
}

type syncSvc interface {
	Sync(ctx context.Context, userID string, batch services.SyncBatch) (int, error)
}

type habitSvc interface {
	Record(ctx context.Context, userID, day string, data map[string]any, comments string) (*models.Habit, error)
	Update(ctx context.Context, userID, id string, data map[string]any, comments string) (*models.Habit, error)
	Week(ctx context.Context, userID, weekStart string) (map[string][]map[string]any, error)
}

type feedbackSvc interface {
	Submit(ctx context.Context, userID, content string) (*models.Feedback, error)
}

type postSvc interface {
	List(ctx context.Context, userID string) ([]*models.Post, error)
	Create(ctx context.Context, userID string, p *models.Post) (*models.Post, error)
}

// Deps are the collaborators and settings of the router.
type Deps struct {
	Entries        entrySvc
	Streaks        streakSvc
	Sync           syncSvc
	Habits         habitSvc
	Feedback       feedbackSvc
	Posts          postSvc
	SecretKey      string
	AllowedOrigins []string
	Logger         logging.Logger
}

type handler struct {
	entries   entrySvc
	streaks   streakSvc
	sync      syncSvc
	habits    habitSvc
	feedback  feedbackSvc
	posts     postSvc
	jwtSecret []byte
	log       logging.Logger
	now       func() time.Time
}

// NewRouter builds the HTTP routes:
//
//	GET  /healthz
//	GET  /api/journal          list entries, newest first
//	POST /api/journal          append an entry
//	GET  /api/journal/weekly   weekly prompt (?at=RFC3339, default now)
//	GET  /api/streak           current streak (?today=YYYY-MM-DD)
//	POST /api/streak           record activity (?today=YYYY-MM-DD)
//	POST /api/sync             merge local data after login
//	POST /api/habits           save today's (or body.date's) habit answers
//	PUT  /api/habits/{id}      replace one day's answers
//	GET  /api/habits/weekly    seven days from ?weekStart=YYYY-MM-DD
//	POST /api/feedback         free-text feedback, token optional
//	GET  /api/coach/posts      logged posts with analytics, newest first
//	POST /api/coach/posts      log a post
func NewRouter(d Deps) http.Handler {
	h := &handler{
		entries:   d.Entries,
		streaks:   d.Streaks,
		sync:      d.Sync,
		habits:    d.Habits,
		feedback:  d.Feedback,
		posts:     d.Posts,
		jwtSecret: []byte(d.SecretKey),
		log:       d.Logger.With("module", "http_api"),
		now:       time.Now,
	}
	return h.routes(d.AllowedOrigins)
}

func (h *handler) routes(allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.With(h.optionalAuth).Post("/feedback", h.submitFeedback)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)

			r.Get("/journal", h.listEntries)
			r.Post("/journal", h.createEntry)
			r.Get("/journal/weekly", h.weekly)
			r.Get("/streak", h.getStreak)
			r.Post("/streak", h.advanceStreak)
			r.Post("/sync", h.syncData)

			r.Post("/habits", h.recordHabits)
			r.Put("/habits/{id}", h.updateHabits)
			r.Get("/habits/weekly", h.weeklyHabits)

			r.Get("/coach/posts", h.listPosts)
			r.Post("/coach/posts", h.createPost)
		})
	})

	return r
}
