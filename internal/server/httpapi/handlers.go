package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/jourin/internal/api"
	"github.com/dmitrijs2005/jourin/internal/common"
	"github.com/dmitrijs2005/jourin/internal/journal"
	"github.com/dmitrijs2005/jourin/internal/server/auth"
	"github.com/dmitrijs2005/jourin/internal/server/models"
	"github.com/dmitrijs2005/jourin/internal/server/services"
)

const maxBodyBytes = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
}

type weeklyResponse struct {
	Summary string `json:"summary"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, messageResponse{Message: msg})
}

// writeError maps service errors to HTTP status codes.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, journal.ErrValidation), errors.Is(err, common.ErrorInvalidArgument):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		writeMessage(w, http.StatusConflict, "already exists")
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	default:
		h.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// userIDFrom is safe after requireAuth. Behind optionalAuth it may be "".
func userIDFrom(r *http.Request) string {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}

// listEntries answers with the entries in the journal's own JSON shape
// (millisecond timestamps).
func (h *handler) listEntries(w http.ResponseWriter, r *http.Request) {
	stored, err := h.entries.List(r.Context(), userIDFrom(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]journal.Entry, 0, len(stored))
	for _, m := range stored {
		out = append(out, m.Journal())
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) createEntry(w http.ResponseWriter, r *http.Request) {
	var e journal.Entry
	if !decode(w, r, &e) {
		return
	}

	uid := userIDFrom(r)
	stored, err := h.entries.Create(r.Context(), uid, models.EntryFromJournal(uid, e))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored.Journal())
}

func (h *handler) weekly(w http.ResponseWriter, r *http.Request) {
	at := h.now()
	if v := r.URL.Query().Get("at"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "at must be an RFC 3339 time")
			return
		}
		at = t
	}

	text, err := h.entries.Weekly(r.Context(), userIDFrom(r), at)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, weeklyResponse{Summary: text})
}

func (h *handler) getStreak(w http.ResponseWriter, r *http.Request) {
	rec, err := h.streaks.Get(r.Context(), userIDFrom(r), r.URL.Query().Get("today"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *handler) advanceStreak(w http.ResponseWriter, r *http.Request) {
	rec, err := h.streaks.Advance(r.Context(), userIDFrom(r), r.URL.Query().Get("today"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *handler) syncData(w http.ResponseWriter, r *http.Request) {
	var req api.SyncRequest
	if !decode(w, r, &req) {
		return
	}

	uid := userIDFrom(r)
	merged, err := h.sync.Sync(r.Context(), uid, services.BatchFromRequest(uid, &req))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.SyncResponse{EntriesMerged: merged})
}
