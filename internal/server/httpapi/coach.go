package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/jourin/internal/server/models"
	"github.com/dmitrijs2005/jourin/internal/streak"
	"github.com/go-chi/chi/v5"
)

type habitResponse struct {
	ID       string         `json:"id"`
	UserID   string         `json:"userId"`
	Date     string         `json:"date"`
	Data     map[string]any `json:"data"`
	Comments string         `json:"comments,omitempty"`
}

func toHabitResponse(h *models.Habit) habitResponse {
	data := h.Data
	if data == nil {
		data = map[string]any{}
	}
	return habitResponse{
		ID:       h.ID,
		UserID:   h.UserID,
		Date:     h.Date.Format(streak.DateLayout),
		Data:     data,
		Comments: h.Comments,
	}
}

type updateHabitsRequest struct {
	Data     map[string]any `json:"data"`
	Comments string         `json:"comments"`
}

type feedbackRequest struct {
	Content string `json:"content"`
}

type feedbackResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type postRequest struct {
	Content     string `json:"content"`
	Platform    string `json:"platform"`
	Impressions int    `json:"impressions"`
	Likes       int    `json:"likes"`
	Comments    int    `json:"comments"`
	Reposts     int    `json:"reposts"`
}

type analyticsResponse struct {
	Impressions int `json:"impressions"`
	Likes       int `json:"likes"`
	Comments    int `json:"comments"`
	Reposts     int `json:"reposts"`
}

type postResponse struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Content   string            `json:"content"`
	Platform  string            `json:"platform"`
	CreatedAt time.Time         `json:"createdAt"`
	Analytics analyticsResponse `json:"analytics"`
}

func toPostResponse(p *models.Post) postResponse {
	a := p.Analytics
	return postResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Content:   p.Content,
		Platform:  p.Platform,
		CreatedAt: p.CreatedAt,
		Analytics: analyticsResponse{Impressions: a.Impressions, Likes: a.Likes, Comments: a.Comments, Reposts: a.Reposts},
	}
}

// recordHabits takes a flat object: "date" picks the day, "comments" is
// stored on its own and every other key is habit data.
func (h *handler) recordHabits(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if !decode(w, r, &body) {
		return
	}

	var day, comments string
	if v, ok := body["date"]; ok && v != nil {
		s, isString := v.(string)
		if !isString {
			writeMessage(w, http.StatusBadRequest, "date must be a string")
			return
		}
		day = s
	}
	if v, ok := body["comments"].(string); ok {
		comments = v
	}
	delete(body, "date")
	delete(body, "comments")

	habit, err := h.habits.Record(r.Context(), userIDFrom(r), day, body, comments)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toHabitResponse(habit))
}

func (h *handler) updateHabits(w http.ResponseWriter, r *http.Request) {
	var req updateHabitsRequest
	if !decode(w, r, &req) {
		return
	}

	habit, err := h.habits.Update(r.Context(), userIDFrom(r), chi.URLParam(r, "id"), req.Data, req.Comments)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toHabitResponse(habit))
}

func (h *handler) weeklyHabits(w http.ResponseWriter, r *http.Request) {
	week, err := h.habits.Week(r.Context(), userIDFrom(r), r.URL.Query().Get("weekStart"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, week)
}

// submitFeedback runs behind optionalAuth, so the user id may be empty.
func (h *handler) submitFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if !decode(w, r, &req) {
		return
	}

	f, err := h.feedback.Submit(r.Context(), userIDFrom(r), req.Content)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, feedbackResponse{ID: f.ID, UserID: f.UserID, Content: f.Content, CreatedAt: f.CreatedAt})
}

func (h *handler) listPosts(w http.ResponseWriter, r *http.Request) {
	list, err := h.posts.List(r.Context(), userIDFrom(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]postResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPostResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) createPost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if !decode(w, r, &req) {
		return
	}

	p, err := h.posts.Create(r.Context(), userIDFrom(r), &models.Post{
		Content:  req.Content,
		Platform: req.Platform,
		Analytics: models.PostAnalytics{
			Impressions: req.Impressions,
			Likes:       req.Likes,
			Comments:    req.Comments,
			Reposts:     req.Reposts,
		},
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostResponse(p))
}
