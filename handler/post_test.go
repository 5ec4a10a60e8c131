package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"topthought/config"
	"topthought/domain"
	"topthought/handler"
	"topthought/store"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*echo.Echo, *store.Store) {
	t.Helper()
	s, err := store.Open(config.Config{DBDriver: "sqlite", DBURL: ":memory:"})
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.EnsureAdmin(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("bootstrapping admin: %v", err)
	}

	h := &handler.Handler{Store: s, JWTSecret: testSecret}

	e := echo.New()
	e.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(testSecret),
		Skipper: func(c echo.Context) bool {
			if c.Request().Method == http.MethodGet || c.Request().Method == http.MethodOptions {
				return true
			}
			return c.Path() == "/api/auth/login"
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, echojwt.ErrJWTMissing) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
			}
			return echo.NewHTTPError(http.StatusForbidden, "Invalid or expired token")
		},
	}))

	api := e.Group("/api")
	api.POST("/auth/login", h.Login)
	api.GET("/posts", h.GetPosts)
	api.GET("/posts/:id", h.GetPostByID)
	api.POST("/posts", h.CreatePost)
	api.PUT("/posts/:id", h.UpdatePost)
	api.DELETE("/posts/:id", h.DeletePost)
	api.GET("/health", h.Health)

	return e, s
}

func authToken(t *testing.T, username string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       "test-id",
		"username": username,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func doJSON(e *echo.Echo, method, target, token string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetPostsEnvelope(t *testing.T) {
	e, s := newTestServer(t)
	for i := 0; i < 5; i++ {
		if _, err := s.CreatePost(context.Background(), domain.PostInput{
			Title:   fmt.Sprintf("Post %d", i),
			Content: "body",
		}, "admin"); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	rec := doJSON(e, http.MethodGet, "/api/posts?page=2&limit=2", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var page store.PostPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if len(page.Posts) != 2 {
		t.Errorf("got %d posts, want 2", len(page.Posts))
	}
	if page.Total != 5 || page.TotalPages != 3 || page.CurrentPage != 2 {
		t.Errorf("envelope = total %d, pages %d, current %d; want 5, 3, 2",
			page.Total, page.TotalPages, page.CurrentPage)
	}
}

func TestGetPostsEmptyIsNotAnError(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/posts?search=nothing-matches", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"posts":[]`) {
		t.Errorf("empty result should serialize posts as [], got %s", body)
	}
	if !strings.Contains(body, `"total":0`) {
		t.Errorf("empty result should have total 0, got %s", body)
	}
}

func TestGetPostsInvalidParamsFallBackToDefaults(t *testing.T) {
	e, s := newTestServer(t)
	if _, err := s.CreatePost(context.Background(), domain.PostInput{Title: "T", Content: "C"}, ""); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	rec := doJSON(e, http.MethodGet, "/api/posts?page=zero&limit=-3", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var page store.PostPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if page.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want default 1", page.CurrentPage)
	}
}

func TestGetPostByIDNotFound(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/posts/no-such-id", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Post not found") {
		t.Errorf("body = %s, want a Post not found message", rec.Body.String())
	}
}

func TestCreatePostValidation(t *testing.T) {
	e, _ := newTestServer(t)
	token := authToken(t, "admin")

	rec := doJSON(e, http.MethodPost, "/api/posts", token,
		`{"title":"  ","content":"","imageUrl":"not a url"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body struct {
		Errors []domain.FieldError `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding errors: %v", err)
	}
	if len(body.Errors) != 3 {
		t.Errorf("got %d validation errors (%v), want 3", len(body.Errors), body.Errors)
	}
}

func TestCreatePostTakesAuthorFromToken(t *testing.T) {
	e, _ := newTestServer(t)
	token := authToken(t, "editor-in-chief")

	rec := doJSON(e, http.MethodPost, "/api/posts", token, `{"title":"T","content":"C"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var post domain.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("decoding post: %v", err)
	}
	if post.Author != "editor-in-chief" {
		t.Errorf("Author = %q, want the token identity", post.Author)
	}
	if post.ID == "" {
		t.Error("created post has no id")
	}
}

func TestUpdatePostNotFound(t *testing.T) {
	e, _ := newTestServer(t)
	token := authToken(t, "admin")

	rec := doJSON(e, http.MethodPut, "/api/posts/no-such-id", token, `{"title":"T","content":"C"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

func TestDeletePost(t *testing.T) {
	e, s := newTestServer(t)
	token := authToken(t, "admin")

	created, err := s.CreatePost(context.Background(), domain.PostInput{Title: "T", Content: "C"}, "admin")
	if err != nil {
		t.Fatalf("seeding: %v", err)
	}

	rec := doJSON(e, http.MethodDelete, "/api/posts/"+created.ID, token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Post deleted successfully") {
		t.Errorf("body = %s, want deletion acknowledgement", rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/api/posts/"+created.ID, "", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("fetch after delete: status = %d, want 404", rec.Code)
	}
}

func TestWriteRequiresToken(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/posts", "", `{"title":"T","content":"C"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Access token required") {
		t.Errorf("body = %s, want Access token required", rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/api/posts", "not-a-jwt", `{"title":"T","content":"C"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("invalid token: status = %d, want 403", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid or expired token") {
		t.Errorf("body = %s, want Invalid or expired token", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding health: %v", err)
	}
	if body["status"] != "OK" {
		t.Errorf("status = %q, want OK", body["status"])
	}
	if body["service"] == "" || body["version"] == "" {
		t.Errorf("health body incomplete: %v", body)
	}
}
