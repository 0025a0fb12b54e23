package models

import "time"

// Blog represents a bookmarked blog entry owned by the user that created it.
type Blog struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Author    string    `json:"author"`
	URL       string    `gorm:"not null" json:"url"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"-"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// BlogSummary is the blog projection embedded in user responses.
type BlogSummary struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	ID     string `json:"id"`
}

// BlogWithOwner is the public blog representation with its owner resolved.
// User is nil when the owner no longer exists.
type BlogWithOwner struct {
	Title  string       `json:"title"`
	Author string       `json:"author"`
	URL    string       `json:"url"`
	Likes  int          `json:"likes"`
	User   *UserSummary `json:"user"`
	ID     string       `json:"id"`
}

// Summary projects the blog to the fields listed under its owner.
func (b *Blog) Summary() BlogSummary {
	return BlogSummary{Title: b.Title, Author: b.Author, URL: b.URL, Likes: b.Likes, ID: b.ID}
}

// WithOwner joins the blog with an owner projection.
func (b *Blog) WithOwner(owner *UserSummary) *BlogWithOwner {
	return &BlogWithOwner{
		Title:  b.Title,
		Author: b.Author,
		URL:    b.URL,
		Likes:  b.Likes,
		User:   owner,
		ID:     b.ID,
	}
}
