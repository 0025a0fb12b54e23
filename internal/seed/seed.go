// Package seed creates demo users and blogs. It is intended for development
// and testing only.
package seed

import (
	"context"
	"fmt"
	"time"

	"bloglist/internal/models"
	"bloglist/internal/repository"
	"bloglist/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

// Options controls what CreateUser seeds.
type Options struct {
	Username string
	Name     string
	Password string
	Blogs    int
}

// DefaultOptions returns the credentials used for local development.
func DefaultOptions() Options {
	return Options{
		Username: "testuser",
		Name:     "Test User",
		Password: "secret",
	}
}

// Seeder writes seed data through the regular services so every invariant
// enforced for API clients also holds for seeded records.
type Seeder struct {
	users *service.UserService
	blogs *service.BlogService
	faker *gofakeit.Faker
}

// NewSeeder returns a Seeder writing to store.
func NewSeeder(store *repository.Store, bcryptCost int) *Seeder {
	return &Seeder{
		users: service.NewUserService(store.Users, nil, bcryptCost),
		blogs: service.NewBlogService(store.Blogs, store.Users),
		faker: gofakeit.New(time.Now().UnixNano()),
	}
}

// CreateUser registers a user and, if opts.Blogs > 0, that many fake blogs owned by it.
func (s *Seeder) CreateUser(ctx context.Context, opts Options) (*models.UserWithBlogs, error) {
	user, err := s.users.Register(ctx, service.RegisterInput{
		Username: opts.Username,
		Name:     opts.Name,
		Password: opts.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create user %q: %w", opts.Username, err)
	}

	owner := &models.UserSummary{ID: user.ID, Username: user.Username, Name: user.Name}
	for i := 0; i < opts.Blogs; i++ {
		blog, err := s.FakeBlog(ctx, owner)
		if err != nil {
			return nil, err
		}
		user.Blogs = append(user.Blogs, models.BlogSummary{
			Title:  blog.Title,
			Author: blog.Author,
			URL:    blog.URL,
			Likes:  blog.Likes,
			ID:     blog.ID,
		})
	}
	return user, nil
}

// FakeBlog creates one blog with generated content owned by owner.
func (s *Seeder) FakeBlog(ctx context.Context, owner *models.UserSummary) (*models.BlogWithOwner, error) {
	likes := s.faker.Number(0, 50)
	blog, err := s.blogs.Create(ctx, service.CreateBlogInput{
		Title:  s.faker.Sentence(4),
		Author: s.faker.Name(),
		URL:    s.faker.URL(),
		Likes:  &likes,
		Owner:  owner,
	})
	if err != nil {
		return nil, fmt.Errorf("create fake blog: %w", err)
	}
	return blog, nil
}
