// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"testing"

	"bloglist/internal/database"
	"bloglist/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewSQLiteDB opens a private in-memory SQLite database with the schema applied.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewStore returns a Store over a fresh in-memory SQLite database.
func NewStore(t testing.TB) *repository.Store {
	t.Helper()
	return repository.NewGormStore(NewSQLiteDB(t))
}
