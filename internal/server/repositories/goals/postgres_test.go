package goals

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/jourin/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mergeQuery = `(?s)^\s*INSERT\s+INTO\s+goals\b.*ON\s+CONFLICT\s+\(user_id,\s*name\)\s+DO\s+NOTHING\s*$`
	listQuery  = `(?s)^\s*SELECT\s+id,\s*name,\s*specifics,\s*is_default\s+FROM\s+goals\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+name\s*$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func TestMerge(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(mergeQuery).WithArgs("u1", "ship v1", "", true).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(mergeQuery).WithArgs("u1", "run", "5k", false).WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.Merge(context.Background(), "u1", []*models.Goal{
		{Name: "ship v1", IsDefault: true},
		{Name: "run", Specifics: "5k"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMerge_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(mergeQuery).WillReturnError(errors.New("db down"))

	_, err := repo.Merge(context.Background(), "u1", []*models.Goal{{Name: "x"}})
	require.ErrorContains(t, err, "db error")
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQuery).WithArgs("u1").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "specifics", "is_default"}).
			AddRow("g1", "run", "5k", false).
			AddRow("g2", "ship v1", "", true))

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.Goal{ID: "g2", UserID: "u1", Name: "ship v1", IsDefault: true}, *got[1])
}
