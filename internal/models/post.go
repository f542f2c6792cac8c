package models

import "time"

// Post represents a blog post. The author is set at creation and never
// changes afterwards.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  int       `json:"authorId"`
	IsHidden  bool      `json:"isHidden"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreatePostRequest represents a post creation request
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatePostRequest represents a post edit request. Title and content must
// both be present; IsHidden is a pointer so an omitted flag leaves the stored
// value untouched.
type UpdatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsHidden *bool  `json:"isHidden"`
}
