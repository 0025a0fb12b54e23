package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"bloglist/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	db := setupSQLite(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "alice", Name: "Alice", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, "hash", byName.PasswordHash)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "alice", byID.Username)

	missing, err := repo.GetByUsername(ctx, "nobody")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repo.GetByID(ctx, "not-a-real-id")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_CreateDuplicateUsername(t *testing.T) {
	db := setupSQLite(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "alice", PasswordHash: "h1"}))
	err := repo.Create(ctx, &models.User{Username: "alice", PasswordHash: "h2"})

	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.KindValidation))
	assert.Equal(t, "username must be unique", err.Error())

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	stored, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "h1", stored.PasswordHash)
}

func TestUserRepository_AppendBlogAndList(t *testing.T) {
	db := setupSQLite(t)
	users := NewUserRepository(db)
	blogs := NewBlogRepository(db)
	ctx := context.Background()

	alice := &models.User{Username: "alice", Name: "Alice", PasswordHash: "h"}
	bob := &models.User{Username: "bob", Name: "Bob", PasswordHash: "h"}
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	first := &models.Blog{Title: "First", Author: "A", URL: "http://1", Likes: 3, UserID: alice.ID}
	second := &models.Blog{Title: "Second", Author: "B", URL: "http://2", UserID: alice.ID}
	require.NoError(t, blogs.Create(ctx, first))
	require.NoError(t, blogs.Create(ctx, second))
	require.NoError(t, users.AppendBlog(ctx, alice.ID, first.ID))
	require.NoError(t, users.AppendBlog(ctx, alice.ID, second.ID))

	reloaded, err := users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, second.ID}, reloaded.BlogIDs())

	listed, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	byName := map[string]models.UserWithBlogs{}
	for _, u := range listed {
		byName[u.Username] = u
	}
	require.Len(t, byName["alice"].Blogs, 2)
	assert.Equal(t, models.BlogSummary{Title: "First", Author: "A", URL: "http://1", Likes: 3, ID: first.ID}, byName["alice"].Blogs[0])
	assert.Equal(t, "Second", byName["alice"].Blogs[1].Title)
	assert.NotNil(t, byName["bob"].Blogs)
	assert.Empty(t, byName["bob"].Blogs)

	// References to deleted blogs are not resolved.
	require.NoError(t, blogs.Delete(ctx, first.ID))
	listed, err = users.List(ctx)
	require.NoError(t, err)
	for _, u := range listed {
		if u.Username == "alice" {
			require.Len(t, u.Blogs, 1)
			assert.Equal(t, second.ID, u.Blogs[0].ID)
		}
	}
}

func TestUserRepository_PostgresErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unique violation maps to validation error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users"`)).
			WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_username" (SQLSTATE 23505)`))

		err := repo.Create(ctx, &models.User{Username: "alice", PasswordHash: "h"})
		require.Error(t, err)
		assert.True(t, models.IsKind(err, models.KindValidation))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lookup failure is internal", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("alice", 1).
			WillReturnError(errors.New("connection refused"))

		user, err := repo.GetByUsername(ctx, "alice")
		assert.Nil(t, user)
		assert.True(t, models.IsKind(err, models.KindInternal))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown username is not an error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("ghost", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

		user, err := repo.GetByUsername(ctx, "ghost")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.False(t, isUniqueConstraintError(nil))
	assert.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: users.username")))
	assert.True(t, isUniqueConstraintError(errors.New("pq: duplicate key value")))
	assert.False(t, isUniqueConstraintError(errors.New("connection reset by peer")))
	assert.True(t, isUniqueConstraintError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueConstraintError(&pgconn.PgError{Code: "23503", Message: "foreign key violation"}))
}

func TestUserRepository_Create_PgUniqueViolation(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_username"})

	err := repo.Create(context.Background(), &models.User{Username: "alice", PasswordHash: "h"})
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.KindValidation))
	assert.Equal(t, "username must be unique", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}
