package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"topthought/domain"

	"github.com/google/uuid"
)

const DefaultPageSize = 10

// PostQuery is one listing request: which page, how big, and an optional
// free-text term matched against title and content.
type PostQuery struct {
	Page   int
	Limit  int
	Search string
}

// PostPage is the listing envelope. Total always counts every match,
// independent of the page requested.
type PostPage struct {
	Posts       []domain.Post `json:"posts"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	Total       int           `json:"total"`
}

const postColumns = "id, title, content, image_url, youtube_url, author, created_at, updated_at"

// ListPosts returns one page of posts, newest first. A search term matches a
// post when it occurs, case-insensitively, as a substring of the title or of
// the content. A page past the end of the data yields an empty page, not an
// error.
func (s *Store) ListPosts(ctx context.Context, q PostQuery) (PostPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}

	where := ""
	var args []any
	if q.Search != "" {
		where = `WHERE lower(title) LIKE $1 ESCAPE '\' OR lower(content) LIKE $1 ESCAPE '\'`
		args = append(args, likePattern(q.Search))
	}

	var total int
	row := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts "+where, args...)
	if err := row.Scan(&total); err != nil {
		return PostPage{}, fmt.Errorf("counting posts: %w", err)
	}

	// A page past the end of the data is an empty page, not an error. The
	// check runs before the multiplication so an arbitrarily large page
	// number cannot wrap the offset into negative territory.
	if q.Page-1 > total/q.Limit {
		return PostPage{
			Posts:       []domain.Post{},
			TotalPages:  (total + q.Limit - 1) / q.Limit,
			CurrentPage: q.Page,
			Total:       total,
		}, nil
	}

	// created_at ties are broken on id so repeated queries over unchanged
	// data always page identically.
	query := fmt.Sprintf(
		"SELECT %s FROM posts %s ORDER BY created_at DESC, id LIMIT %d OFFSET %d",
		postColumns, where, q.Limit, (q.Page-1)*q.Limit,
	)
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return PostPage{}, fmt.Errorf("listing posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return PostPage{}, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return PostPage{}, fmt.Errorf("listing posts: %w", err)
	}

	return PostPage{
		Posts:       posts,
		TotalPages:  (total + q.Limit - 1) / q.Limit,
		CurrentPage: q.Page,
		Total:       total,
	}, nil
}

// GetPost returns the post with the given id or ErrNotFound.
func (s *Store) GetPost(ctx context.Context, id string) (domain.Post, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT "+postColumns+" FROM posts WHERE id = $1", id)
	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, ErrNotFound
		}
		return domain.Post{}, fmt.Errorf("fetching post %s: %w", id, err)
	}
	return p, nil
}

// CreatePost inserts a new post. The id and both timestamps are assigned
// here, never by the caller.
func (s *Store) CreatePost(ctx context.Context, in domain.PostInput, author string) (domain.Post, error) {
	if author == "" {
		author = domain.DefaultAuthor
	}
	now := time.Now().UTC()
	p := domain.Post{
		ID:         uuid.NewString(),
		Title:      in.Title,
		Content:    in.Content,
		ImageURL:   in.ImageURL,
		YouTubeURL: in.YouTubeURL,
		Author:     author,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO posts (id, title, content, image_url, youtube_url, author, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		p.ID, p.Title, p.Content, nullable(p.ImageURL), nullable(p.YouTubeURL), p.Author, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return domain.Post{}, fmt.Errorf("inserting post: %w", err)
	}
	return p, nil
}

// UpdatePost replaces the editable fields of an existing post and refreshes
// updated_at. created_at and author are never touched.
func (s *Store) UpdatePost(ctx context.Context, id string, in domain.PostInput) (domain.Post, error) {
	result, err := s.DB.ExecContext(ctx,
		"UPDATE posts SET title = $1, content = $2, image_url = $3, youtube_url = $4, updated_at = $5 WHERE id = $6",
		in.Title, in.Content, nullable(in.ImageURL), nullable(in.YouTubeURL), time.Now().UTC(), id,
	)
	if err != nil {
		return domain.Post{}, fmt.Errorf("updating post %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Post{}, err
	}
	if affected == 0 {
		return domain.Post{}, ErrNotFound
	}
	return s.GetPost(ctx, id)
}

// DeletePost removes a post permanently.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	result, err := s.DB.ExecContext(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting post %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// likePattern builds the case-insensitive substring pattern for a search
// term, escaping the LIKE metacharacters so the term is matched literally.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (domain.Post, error) {
	var p domain.Post
	var imageURL, youtubeURL sql.NullString
	err := row.Scan(&p.ID, &p.Title, &p.Content, &imageURL, &youtubeURL, &p.Author, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Post{}, err
	}
	p.ImageURL = imageURL.String
	p.YouTubeURL = youtubeURL.String
	return p, nil
}
