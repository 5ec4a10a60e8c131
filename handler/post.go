package handler

import (
	"errors"
	"net/http"
	"strconv"

	"topthought/domain"
	"topthought/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// GetPosts serves the listing envelope:
//
//	GET /api/posts?page=1&limit=10&search=term
//
// page and limit fall back to their defaults when absent or unparseable; a
// page past the end of the data is an empty page, not an error.
func (h *Handler) GetPosts(c echo.Context) error {
	q := store.PostQuery{
		Page:   intParam(c, "page", 1),
		Limit:  intParam(c, "limit", store.DefaultPageSize),
		Search: c.QueryParam("search"),
	}

	page, err := h.Store.ListPosts(c.Request().Context(), q)
	if err != nil {
		c.Logger().Errorf("listing posts: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, page)
}

func (h *Handler) GetPostByID(c echo.Context) error {
	post, err := h.Store.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "Post not found"})
		}
		c.Logger().Errorf("fetching post: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, post)
}

func (h *Handler) CreatePost(c echo.Context) error {
	var in domain.PostInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
	}
	if errs := in.Validate(); errs != nil {
		return c.JSON(http.StatusBadRequest, errorsResponse{Errors: errs})
	}

	post, err := h.Store.CreatePost(c.Request().Context(), in, currentUsername(c))
	if err != nil {
		c.Logger().Errorf("creating post: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusCreated, post)
}

func (h *Handler) UpdatePost(c echo.Context) error {
	var in domain.PostInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
	}
	if errs := in.Validate(); errs != nil {
		return c.JSON(http.StatusBadRequest, errorsResponse{Errors: errs})
	}

	post, err := h.Store.UpdatePost(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "Post not found"})
		}
		c.Logger().Errorf("updating post: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, post)
}

func (h *Handler) DeletePost(c echo.Context) error {
	err := h.Store.DeletePost(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "Post not found"})
		}
		c.Logger().Errorf("deleting post: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Post deleted successfully"})
}

func intParam(c echo.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// currentUsername reads the identity the JWT middleware verified. Writes on
// unprotected test routers fall back to the default author.
func currentUsername(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	username, _ := claims["username"].(string)
	return username
}
