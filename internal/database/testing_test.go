package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// newTestDB returns a DB backed by sqlmock. The repositories scan through
// sqlx, so the raw mock connection is wrapped the same way NewConnection
// wraps a real one.
func newTestDB(t *testing.T) (DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return &PostgresDB{DB: sqlxDB}, mock
}
