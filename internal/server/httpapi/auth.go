package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/jourin/internal/common"
	"github.com/dmitrijs2005/jourin/internal/server/auth"
)

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get(common.AuthorizationHeaderName))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// tokenUser returns the user id of the bearer token, or "" when no token
// was sent.
func (h *handler) tokenUser(r *http.Request) (string, error) {
	token := bearerToken(r)
	if token == "" {
		return "", nil
	}
	return auth.GetUserIDFromToken(token, h.jwtSecret)
}

func writeTokenError(w http.ResponseWriter, err error) {
	msg := common.ErrInvalidToken.Error()
	if errors.Is(err, common.ErrTokenExpired) {
		msg = common.ErrTokenExpired.Error()
	}
	writeMessage(w, http.StatusUnauthorized, msg)
}

// requireAuth rejects requests without a valid access token and stores the
// user id in the request context.
func (h *handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.tokenUser(r)
		if err != nil {
			writeTokenError(w, err)
			return
		}
		if userID == "" {
			writeMessage(w, http.StatusUnauthorized, "missing token")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
	})
}

// optionalAuth lets anonymous requests through. A token, when present,
// must still be valid.
func (h *handler) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.tokenUser(r)
		if err != nil {
			writeTokenError(w, err)
			return
		}
		if userID != "" {
			r = r.WithContext(auth.WithUserID(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}
