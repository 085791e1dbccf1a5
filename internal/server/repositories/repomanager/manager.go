package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/jourin/internal/dbx"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/entries"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/feedback"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/goals"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/habits"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/posts"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/streaks"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/templates"
	"github.com/dmitrijs2005/jourin/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can use
// the same factory inside and outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Entries(db dbx.DBTX) entries.Repository
	Streaks(db dbx.DBTX) streaks.Repository
	Goals(db dbx.DBTX) goals.Repository
	Templates(db dbx.DBTX) templates.Repository
	Habits(db dbx.DBTX) habits.Repository
	Feedback(db dbx.DBTX) feedback.Repository
	Posts(db dbx.DBTX) posts.Repository
}
