package client

import (
	"context"

	"topthought/domain"
)

// Pager walks the listing the way the site's post list does: it owns the
// page/limit/search parameters it sends, and takes totalPages, currentPage
// and total from the server's envelope instead of recomputing them. An empty
// page with Total == 0 is a valid "no results" state, not an error.
type Pager struct {
	client *Client
	limit  int
	search string
	page   int

	Posts       []domain.Post
	TotalPages  int
	CurrentPage int
	Total       int
}

func NewPager(c *Client, limit int) *Pager {
	return &Pager{client: c, limit: limit, page: 1}
}

// SetSearch changes the search term and rewinds to the first page. Load must
// be called to take effect.
func (p *Pager) SetSearch(term string) {
	if term != p.search {
		p.search = term
		p.page = 1
	}
}

// Load fetches the current page and replaces the pager's view of the world
// with the server's.
func (p *Pager) Load(ctx context.Context) error {
	page, err := p.client.Posts(ctx, PostParams{
		Page:   p.page,
		Limit:  p.limit,
		Search: p.search,
	})
	if err != nil {
		return err
	}

	p.Posts = page.Posts
	p.TotalPages = page.TotalPages
	p.CurrentPage = page.CurrentPage
	p.Total = page.Total
	return nil
}

// Next advances one page, bounded by the page count the server last
// reported. It reports whether a fetch happened.
func (p *Pager) Next(ctx context.Context) (bool, error) {
	if p.page >= p.TotalPages {
		return false, nil
	}
	p.page++
	return true, p.Load(ctx)
}

// Prev steps back one page. It reports whether a fetch happened.
func (p *Pager) Prev(ctx context.Context) (bool, error) {
	if p.page <= 1 {
		return false, nil
	}
	p.page--
	return true, p.Load(ctx)
}

// Empty reports the valid no-results state.
func (p *Pager) Empty() bool {
	return p.Total == 0 && len(p.Posts) == 0
}
