package habits

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/jourin/internal/common"
	"github.com/dmitrijs2005/jourin/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	upsertQuery = `(?s)^\s*INSERT\s+INTO\s+habits\b.*ON\s+CONFLICT\s+\(user_id,\s*date\)\s+DO\s+UPDATE\s+SET\s+data\s*=\s*EXCLUDED\.data.*RETURNING\s+id\s*$`
	getQuery    = `(?s)^\s*SELECT\s+id,\s*user_id,\s*date,\s*data,\s*comments\s+FROM\s+habits\s+WHERE\s+id\s*=\s*\$1\s*$`
	updateQuery = `(?s)^\s*UPDATE\s+habits\s+SET\s+data\s*=\s*\$2::jsonb,\s*comments\s*=\s*\$3.*WHERE\s+id\s*=\s*\$1\s*$`
	rangeQuery  = `(?s)^\s*SELECT\s+id,\s*date,\s*data,\s*comments\s+FROM\s+habits\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+date\s*>=\s*\$2\s+AND\s+date\s*<\s*\$3\s+ORDER\s+BY\s+date\s*$`
)

var day = time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func TestUpsert(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(upsertQuery).
		WithArgs("u1", day, `{"water":true}`, "good day").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("h1"))

	h := &models.Habit{UserID: "u1", Date: day, Data: map[string]any{"water": true}, Comments: "good day"}
	require.NoError(t, repo.Upsert(context.Background(), h))
	assert.Equal(t, "h1", h.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_EmptyDataAndDBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(upsertQuery).WithArgs("u1", day, "{}", "").WillReturnError(errors.New("db down"))

	err := repo.Upsert(context.Background(), &models.Habit{UserID: "u1", Date: day})
	require.ErrorContains(t, err, "db error")
}

func TestGet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQuery).WithArgs("h1").WillReturnRows(
		sqlmock.NewRows([]string{"id", "user_id", "date", "data", "comments"}).
			AddRow("h1", "u1", day, []byte(`{"sleep":7}`), ""))

	h, err := repo.Get(context.Background(), "h1")
	require.NoError(t, err)
	assert.Equal(t, "u1", h.UserID)
	assert.Equal(t, map[string]any{"sleep": float64(7)}, h.Data)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQuery).WithArgs("nope").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(updateQuery).WithArgs("h1", `{"sleep":8}`, "better").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateQuery).WithArgs("h2", "{}", "").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Update(context.Background(), &models.Habit{ID: "h1", Data: map[string]any{"sleep": 8}, Comments: "better"}))
	require.ErrorIs(t, repo.Update(context.Background(), &models.Habit{ID: "h2"}), common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRange(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	to := day.AddDate(0, 0, 7)
	mock.ExpectQuery(rangeQuery).WithArgs("u1", day, to).WillReturnRows(
		sqlmock.NewRows([]string{"id", "date", "data", "comments"}).
			AddRow("h1", day, []byte(`{"water":true}`), "").
			AddRow("h2", day.AddDate(0, 0, 1), []byte(`{}`), "meh"))

	got, err := repo.ListRange(context.Background(), "u1", day, to)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "u1", got[0].UserID)
	assert.Equal(t, true, got[0].Data["water"])
	assert.Equal(t, "meh", got[1].Comments)
}

func TestListRange_BadJSON(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(rangeQuery).WillReturnRows(
		sqlmock.NewRows([]string{"id", "date", "data", "comments"}).AddRow("h1", day, []byte(`{`), ""))

	_, err := repo.ListRange(context.Background(), "u1", day, day)
	require.ErrorContains(t, err, "decode error")
}
