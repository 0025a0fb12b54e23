package repository

import (
	"context"
	"errors"

	"bloglist/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a SQL-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func orderedRefs(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Omit("BlogRefs").Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError(duplicateUsernameMessage)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("BlogRefs", orderedRefs).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("BlogRefs", orderedRefs).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) AppendBlog(ctx context.Context, userID, blogID string) error {
	ref := models.BlogRef{UserID: userID, BlogID: blogID}
	if err := r.db.WithContext(ctx).Create(&ref).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]models.UserWithBlogs, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Preload("BlogRefs", orderedRefs).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var blogIDs []string
	for i := range users {
		blogIDs = append(blogIDs, users[i].BlogIDs()...)
	}

	byID := make(map[string]models.BlogSummary, len(blogIDs))
	if len(blogIDs) > 0 {
		var blogs []models.Blog
		if err := r.db.WithContext(ctx).Where("id IN ?", blogIDs).Find(&blogs).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
		for i := range blogs {
			byID[blogs[i].ID] = blogs[i].Summary()
		}
	}

	result := make([]models.UserWithBlogs, 0, len(users))
	for i := range users {
		result = append(result, withBlogs(&users[i], byID))
	}
	return result, nil
}

// withBlogs resolves the user's references in order. References to deleted
// blogs are dropped.
func withBlogs(user *models.User, byID map[string]models.BlogSummary) models.UserWithBlogs {
	out := models.UserWithBlogs{
		Username: user.Username,
		Name:     user.Name,
		ID:       user.ID,
		Blogs:    []models.BlogSummary{},
	}
	for _, id := range user.BlogIDs() {
		if blog, ok := byID[id]; ok {
			out.Blogs = append(out.Blogs, blog)
		}
	}
	return out
}
