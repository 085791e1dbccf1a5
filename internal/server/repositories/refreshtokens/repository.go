// Package refreshtokens stores the opaque tokens that let a journal client
// renew its access token without asking for the password again.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jourin/internal/server/models"
)

// Repository keeps refresh tokens. Tokens are single use: Take hands a token
// out and removes it in one step, so a replayed token finds nothing.
type Repository interface {
	Issue(ctx context.Context, userID, token string, expiresAt time.Time) error
	// Take removes the token and returns what it granted, or
	// common.ErrorNotFound when it was never issued or already used.
	Take(ctx context.Context, token string) (*models.RefreshToken, error)
	// Purge removes tokens that expired before the given instant.
	Purge(ctx context.Context, before time.Time) (int64, error)
}
