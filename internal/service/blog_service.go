package service

import (
	"context"

	"bloglist/internal/models"
	"bloglist/internal/repository"
	"bloglist/internal/stats"
	"bloglist/internal/validation"
)

type BlogService struct {
	blogRepo repository.BlogRepository
	userRepo repository.UserRepository
}

type CreateBlogInput struct {
	Title  string
	Author string
	URL    string
	Likes  *int
	Owner  *models.UserSummary
}

func NewBlogService(blogRepo repository.BlogRepository, userRepo repository.UserRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo, userRepo: userRepo}
}

// Create stores a blog owned by in.Owner and appends it to the owner's list.
// The two writes are not atomic: if the append fails the blog still exists.
func (s *BlogService) Create(ctx context.Context, in CreateBlogInput) (*models.BlogWithOwner, error) {
	if err := validation.ValidateBlog(in.Title, in.URL); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Owner == nil {
		return nil, models.NewUnauthorizedError("token missing")
	}

	blog := &models.Blog{
		Title:  in.Title,
		Author: in.Author,
		URL:    in.URL,
		UserID: in.Owner.ID,
	}
	if in.Likes != nil {
		blog.Likes = *in.Likes
	}

	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	if err := s.userRepo.AppendBlog(ctx, in.Owner.ID, blog.ID); err != nil {
		return nil, err
	}

	return blog.WithOwner(in.Owner), nil
}

func (s *BlogService) List(ctx context.Context) ([]models.BlogWithOwner, error) {
	return s.blogRepo.List(ctx)
}

// UpdateLikes sets the like count of any blog. A nil likes leaves the blog
// unchanged and returns it.
func (s *BlogService) UpdateLikes(ctx context.Context, id string, likes *int) (*models.BlogWithOwner, error) {
	if likes == nil {
		return s.get(ctx, id)
	}

	updated, err := s.blogRepo.UpdateLikes(ctx, id, *likes)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, models.NewNotFoundError("Blog", id)
	}
	return updated, nil
}

func (s *BlogService) get(ctx context.Context, id string) (*models.BlogWithOwner, error) {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if blog == nil {
		return nil, models.NewNotFoundError("Blog", id)
	}

	owner, err := s.userRepo.GetByID(ctx, blog.UserID)
	if err != nil {
		return nil, err
	}
	var summary *models.UserSummary
	if owner != nil {
		summary = owner.Summary()
	}
	return blog.WithOwner(summary), nil
}

// Delete removes a blog on behalf of requesterID, who must own it.
func (s *BlogService) Delete(ctx context.Context, id, requesterID string) error {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if blog == nil {
		return models.NewNotFoundError("Blog", id)
	}
	if blog.UserID != requesterID {
		return models.NewForbiddenError("forbidden: not the creator")
	}
	return s.blogRepo.Delete(ctx, id)
}

// Stats aggregates likes and authorship across all blogs.
func (s *BlogService) Stats(ctx context.Context) (stats.Summary, error) {
	blogs, err := s.blogRepo.List(ctx)
	if err != nil {
		return stats.Summary{}, err
	}
	summaries := make([]models.BlogSummary, 0, len(blogs))
	for _, b := range blogs {
		summaries = append(summaries, models.BlogSummary{Title: b.Title, Author: b.Author, URL: b.URL, Likes: b.Likes, ID: b.ID})
	}
	return stats.Summarize(summaries), nil
}
