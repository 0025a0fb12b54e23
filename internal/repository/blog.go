package repository

import (
	"context"
	"errors"

	"bloglist/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository returns a SQL-backed BlogRepository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if blog.ID == "" {
		blog.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) List(ctx context.Context) ([]models.BlogWithOwner, error) {
	var blogs []models.Blog
	if err := r.db.WithContext(ctx).Preload("User").Order("created_at ASC").Find(&blogs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	result := make([]models.BlogWithOwner, 0, len(blogs))
	for i := range blogs {
		result = append(result, *withOwner(&blogs[i]))
	}
	return result, nil
}

func (r *blogRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &blog, nil
}

func (r *blogRepository) UpdateLikes(ctx context.Context, id string, likes int) (*models.BlogWithOwner, error) {
	res := r.db.WithContext(ctx).Model(&models.Blog{}).Where("id = ?", id).Update("likes", likes)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	var blog models.Blog
	if err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return withOwner(&blog), nil
}

func (r *blogRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Blog{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func withOwner(blog *models.Blog) *models.BlogWithOwner {
	var owner *models.UserSummary
	if blog.User != nil {
		owner = blog.User.Summary()
	}
	return blog.WithOwner(owner)
}
