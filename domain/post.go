package domain

import (
	"net/url"
	"strings"
	"time"
)

// DefaultAuthor is used when a post is written without an authenticated
// identity attached to the request.
const DefaultAuthor = "Admin"

type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	YouTubeURL string    `json:"youtubeUrl,omitempty"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// HasVideo reports whether the post links a hosted video. The frontend uses
// this to decide between the article and video layouts.
func (p Post) HasVideo() bool {
	return p.YouTubeURL != ""
}

// PostInput is the client-supplied part of a post. Author and timestamps are
// never taken from the client.
type PostInput struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	ImageURL   string `json:"imageUrl"`
	YouTubeURL string `json:"youtubeUrl"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks the input before it reaches the store. Title and content
// must be non-empty after trimming; the URL fields are optional but must
// parse as absolute http(s) URLs when present.
func (in PostInput) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "Title is required"})
	}
	if strings.TrimSpace(in.Content) == "" {
		errs = append(errs, FieldError{Field: "content", Message: "Content is required"})
	}
	if in.ImageURL != "" && !validURL(in.ImageURL) {
		errs = append(errs, FieldError{Field: "imageUrl", Message: "Image URL must be valid"})
	}
	if in.YouTubeURL != "" && !validURL(in.YouTubeURL) {
		errs = append(errs, FieldError{Field: "youtubeUrl", Message: "YouTube URL must be valid"})
	}
	return errs
}

func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
