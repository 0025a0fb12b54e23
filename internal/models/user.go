// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents an account that can own blogs.
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	BlogRefs     []BlogRef `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// BlogIDs returns the owned blog references in insertion order.
func (u *User) BlogIDs() []string {
	ids := make([]string, 0, len(u.BlogRefs))
	for _, ref := range u.BlogRefs {
		ids = append(ids, ref.BlogID)
	}
	return ids
}

// BlogRef is one entry of a user's ordered list of owned blogs. Entries are
// appended when a blog is created and are not removed when the blog is deleted.
type BlogRef struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"type:varchar(36);not null;index"`
	BlogID    string `gorm:"type:varchar(36);not null"`
	CreatedAt time.Time
}

// UserSummary is the owner projection embedded in blog responses.
type UserSummary struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	ID       string `json:"id"`
}

// UserWithBlogs is the public user representation with owned blogs resolved.
type UserWithBlogs struct {
	Username string        `json:"username"`
	Name     string        `json:"name"`
	Blogs    []BlogSummary `json:"blogs"`
	ID       string        `json:"id"`
}

// Summary projects the user to its public owner fields.
func (u *User) Summary() *UserSummary {
	return &UserSummary{Username: u.Username, Name: u.Name, ID: u.ID}
}
