package database

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalhub/internal/domain"
)

func TestConnectSQLiteAndMigrate(t *testing.T) {
	db, err := Connect("file:database_test?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&domain.Notification{}))
	assert.True(t, db.Migrator().HasTable(&domain.ChatMessage{}))
	assert.True(t, db.Migrator().HasTable(&domain.ReadStatus{}))
	assert.True(t, db.Migrator().HasTable(&domain.PushSubscription{}))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: read_statuses.user_id")))
}
