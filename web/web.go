// Package web serves the read-only public pages: the post list with search
// and pagination, and the single-post view. It consumes the same query
// service as the JSON API and trusts the envelope's pagination numbers.
package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"topthought/domain"
	"topthought/store"

	"github.com/labstack/echo/v4"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

type Handler struct {
	Store    *store.Store
	PageSize int
}

func NewHandler(s *store.Store) *Handler {
	return &Handler{Store: s, PageSize: store.DefaultPageSize}
}

// Home renders the post list. Accepts the same page/search parameters as the
// API listing endpoint.
func (h *Handler) Home(c echo.Context) error {
	q := store.PostQuery{
		Page:   pageParam(c),
		Limit:  h.PageSize,
		Search: c.QueryParam("search"),
	}

	page, err := h.Store.ListPosts(c.Request().Context(), q)
	if err != nil {
		c.Logger().Errorf("listing posts: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return render(c, http.StatusOK, listPage(page, q.Search))
}

// ViewPost renders one post.
func (h *Handler) ViewPost(c echo.Context) error {
	post, err := h.Store.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		c.Logger().Errorf("fetching post: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return render(c, http.StatusOK, postPage(post))
}

func listPage(page store.PostPage, search string) g.Node {
	return layout(siteName,
		searchForm(search),
		g.If(len(page.Posts) == 0,
			P(Class("empty"), g.Text("No posts found.")),
		),
		g.Group(g.Map(page.Posts, postCard)),
		pagination(page, search),
	)
}

func postCard(p domain.Post) g.Node {
	return Article(Class("post-card"),
		H2(A(Href("/posts/"+p.ID), g.Text(safeTitle(p.Title)))),
		postMeta(p),
		Div(Class("content"), g.Raw(string(safeMarkdown(excerpt(p.Content))))),
	)
}

func postPage(p domain.Post) g.Node {
	return layout(safeTitle(p.Title)+" — "+siteName,
		Article(Class("post"),
			H1(g.Text(safeTitle(p.Title))),
			postMeta(p),
			g.If(p.ImageURL != "",
				Img(Src(p.ImageURL), Alt(safeTitle(p.Title))),
			),
			g.If(p.HasVideo(),
				P(Class("video"), A(Href(p.YouTubeURL), Target("_blank"), g.Text("Watch the video"))),
			),
			Div(Class("content"), g.Raw(string(safeMarkdown(p.Content)))),
		),
	)
}

func postMeta(p domain.Post) g.Node {
	return P(Class("meta"),
		Span(g.Text(p.Author)),
		g.Text(" · "),
		Span(g.Text(p.CreatedAt.Format(time.DateOnly))),
	)
}

func searchForm(search string) g.Node {
	return Form(Class("search"), Method("get"), Action("/"),
		Input(Type("search"), Name("search"), Value(search), Placeholder("Search posts")),
		Button(Type("submit"), g.Text("Search")),
	)
}

// pagination renders prev/next links from the envelope's numbers; the page
// never recounts anything itself.
func pagination(page store.PostPage, search string) g.Node {
	if page.TotalPages <= 1 {
		return nil
	}
	return Nav(Class("pagination"),
		g.If(page.CurrentPage > 1,
			A(Href(pageURL(page.CurrentPage-1, search)), g.Text("← Newer")),
		),
		Span(g.Textf("Page %d of %d", page.CurrentPage, page.TotalPages)),
		g.If(page.CurrentPage < page.TotalPages,
			A(Href(pageURL(page.CurrentPage+1, search)), g.Text("Older →")),
		),
	)
}

func pageURL(page int, search string) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if search != "" {
		v.Set("search", search)
	}
	return "/?" + v.Encode()
}

func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func excerpt(content string) string {
	const max = 400
	if len(content) <= max {
		return content
	}
	cut := content[:max]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}

func render(c echo.Context, status int, node g.Node) error {
	var b strings.Builder
	if err := node.Render(&b); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return c.HTML(status, b.String())
}
