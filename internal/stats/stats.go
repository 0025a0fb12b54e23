// Package stats aggregates like and authorship figures over a set of blogs.
package stats

import "bloglist/internal/models"

// AuthorBlogs is the author with the most blogs.
type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes is the author whose blogs have the most likes in total.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Summary bundles every aggregate for a blog listing.
type Summary struct {
	TotalLikes   int                 `json:"totalLikes"`
	FavoriteBlog *models.BlogSummary `json:"favoriteBlog"`
	MostBlogs    *AuthorBlogs        `json:"mostBlogs"`
	MostLikes    *AuthorLikes        `json:"mostLikes"`
}

// Summarize computes all aggregates for blogs.
func Summarize(blogs []models.BlogSummary) Summary {
	return Summary{
		TotalLikes:   TotalLikes(blogs),
		FavoriteBlog: FavoriteBlog(blogs),
		MostBlogs:    MostBlogs(blogs),
		MostLikes:    MostLikes(blogs),
	}
}

// TotalLikes sums the likes of all blogs.
func TotalLikes(blogs []models.BlogSummary) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes. Ties go to the earliest
// blog. Returns nil for an empty slice.
func FavoriteBlog(blogs []models.BlogSummary) *models.BlogSummary {
	if len(blogs) == 0 {
		return nil
	}
	fav := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > fav.Likes {
			fav = b
		}
	}
	return &fav
}

// tally accumulates a per-author value while remembering first-seen order.
type tally struct {
	order  []string
	values map[string]int
}

func newTally() *tally {
	return &tally{values: make(map[string]int)}
}

func (t *tally) add(author string, n int) {
	if _, ok := t.values[author]; !ok {
		t.order = append(t.order, author)
	}
	t.values[author] += n
}

// max returns the first author whose value is strictly greater than every
// earlier one, starting from zero.
func (t *tally) max() (string, int, bool) {
	best, bestValue, found := "", 0, false
	for _, author := range t.order {
		if v := t.values[author]; v > bestValue {
			best, bestValue, found = author, v, true
		}
	}
	return best, bestValue, found
}

// MostBlogs returns the author with the most blogs. Ties go to the author seen
// first. Returns nil for an empty slice.
func MostBlogs(blogs []models.BlogSummary) *AuthorBlogs {
	t := newTally()
	for _, b := range blogs {
		t.add(b.Author, 1)
	}
	author, count, ok := t.max()
	if !ok {
		return nil
	}
	return &AuthorBlogs{Author: author, Blogs: count}
}

// MostLikes returns the author with the most likes in total. Ties go to the
// author seen first. Returns nil when no author has any likes.
func MostLikes(blogs []models.BlogSummary) *AuthorLikes {
	t := newTally()
	for _, b := range blogs {
		t.add(b.Author, b.Likes)
	}
	author, likes, ok := t.max()
	if !ok {
		return nil
	}
	return &AuthorLikes{Author: author, Likes: likes}
}
