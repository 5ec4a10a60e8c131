// Package client is the Go consumer of the blog API: a typed HTTP client
// plus a Pager that tracks listing state the way the site's frontend does.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"topthought/domain"
	"topthought/store"
)

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// APIError is any non-2xx response. Validation failures carry the field
// errors; everything else carries the server's message.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []domain.FieldError
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("api: status %d: %s: %s", e.StatusCode, e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is the API's not-found response, so callers
// can render a not-found state instead of a failure state.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type LoginResult struct {
	Token string           `json:"token"`
	User  domain.AdminUser `json:"user"`
}

// Login authenticates and keeps the returned token for subsequent writes.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var result LoginResult
	creds := domain.Credentials{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &result); err != nil {
		return nil, err
	}
	c.Token = result.Token
	return &result, nil
}

// PostParams mirrors the listing query string. Zero values are omitted and
// the server applies its defaults.
type PostParams struct {
	Page   int
	Limit  int
	Search string
}

// Posts fetches one listing page.
func (c *Client) Posts(ctx context.Context, params PostParams) (*store.PostPage, error) {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}

	var page store.PostPage
	if err := c.do(ctx, http.MethodGet, "/posts", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) Post(ctx context.Context, id string) (*domain.Post, error) {
	var post domain.Post
	if err := c.do(ctx, http.MethodGet, "/posts/"+id, nil, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) CreatePost(ctx context.Context, in domain.PostInput) (*domain.Post, error) {
	var post domain.Post
	if err := c.do(ctx, http.MethodPost, "/posts", nil, in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) UpdatePost(ctx context.Context, id string, in domain.PostInput) (*domain.Post, error) {
	var post domain.Post
	if err := c.do(ctx, http.MethodPut, "/posts/"+id, nil, in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+id, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Buffer = &bytes.Buffer{}
	if body != nil {
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Message string              `json:"message"`
		Errors  []domain.FieldError `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
		apiErr.Errors = body.Errors
	}
	if apiErr.Message == "" && len(apiErr.Errors) == 0 {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
