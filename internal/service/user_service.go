// Package service implements the application's business rules on top of the repositories.
package service

import (
	"context"

	"bloglist/internal/cache"
	"bloglist/internal/models"
	"bloglist/internal/repository"
	"bloglist/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo   repository.UserRepository
	cache      *cache.Cache
	bcryptCost int
}

type RegisterInput struct {
	Username string
	Name     string
	Password string
}

func NewUserService(userRepo repository.UserRepository, c *cache.Cache, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{userRepo: userRepo, cache: c, bcryptCost: bcryptCost}
}

// Register validates the credentials, hashes the password and stores the user.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.UserWithBlogs, error) {
	if err := validation.ValidateCredentials(in.Username, in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword(passwordBytes(in.Password), s.bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:     in.Username,
		Name:         in.Name,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &models.UserWithBlogs{
		Username: user.Username,
		Name:     user.Name,
		Blogs:    []models.BlogSummary{},
		ID:       user.ID,
	}, nil
}

func (s *UserService) List(ctx context.Context) ([]models.UserWithBlogs, error) {
	return s.userRepo.List(ctx)
}

// FindSummary resolves a user id to its public projection, or nil when the
// user does not exist.
func (s *UserService) FindSummary(ctx context.Context, id string) (*models.UserSummary, error) {
	var summary models.UserSummary
	found, err := s.cache.Aside(ctx, cache.UserKey(id), &summary, cache.UserTTL, func() (bool, error) {
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil || user == nil {
			return false, err
		}
		summary = *user.Summary()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &summary, nil
}
