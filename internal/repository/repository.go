// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"bloglist/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const duplicateUsernameMessage = "username must be unique"

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// GetByUsername returns nil, nil when no user has username.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// GetByID returns nil, nil when the id is unknown or malformed.
	GetByID(ctx context.Context, id string) (*models.User, error)
	AppendBlog(ctx context.Context, userID, blogID string) error
	List(ctx context.Context) ([]models.UserWithBlogs, error)
}

// BlogRepository defines persistence operations for blogs.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	List(ctx context.Context) ([]models.BlogWithOwner, error)
	// GetByID returns nil, nil when the id is unknown or malformed.
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	// UpdateLikes returns nil, nil when the id is unknown or malformed.
	UpdateLikes(ctx context.Context, id string, likes int) (*models.BlogWithOwner, error)
	Delete(ctx context.Context, id string) error
}

// Store bundles the repositories of one backend with its lifecycle hooks.
type Store struct {
	Users   UserRepository
	Blogs   BlogRepository
	Backend string

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping reports whether the underlying store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// NewGormStore returns a Store backed by a SQL database.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:   NewUserRepository(db),
		Blogs:   NewBlogRepository(db),
		Backend: db.Dialector.Name(),
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
