package handler

import (
	"net/http"

	"topthought/domain"
	"topthought/suggest"

	"github.com/labstack/echo/v4"
)

type suggestRequest struct {
	Kind        string `json:"kind"` // "title", "description" or "tags"
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

type suggestResponse struct {
	Suggestion string   `json:"suggestion,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// Suggest proxies the editor's suggestion requests to the configured
// provider. Provider failures degrade to the deterministic fallbacks rather
// than failing the request; suggestions are best-effort by nature.
func (h *Handler) Suggest(c echo.Context) error {
	var req suggestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
	}

	ctx := c.Request().Context()
	switch req.Kind {
	case "title":
		title, err := h.Suggester.SuggestTitle(ctx, req.Description)
		if err != nil {
			c.Logger().Warnf("title suggestion: %v", err)
			title = suggest.FallbackTitle(req.Description)
		}
		return c.JSON(http.StatusOK, suggestResponse{Suggestion: title})
	case "description":
		desc, err := h.Suggester.SuggestDescription(ctx, req.Title, req.Content)
		if err != nil {
			c.Logger().Warnf("description suggestion: %v", err)
			desc = suggest.FallbackDescription(req.Content)
		}
		return c.JSON(http.StatusOK, suggestResponse{Suggestion: desc})
	case "tags":
		tags, err := h.Suggester.SuggestTags(ctx, req.Title, req.Description)
		if err != nil {
			c.Logger().Warnf("tag suggestion: %v", err)
			tags = suggest.FallbackTags()
		}
		return c.JSON(http.StatusOK, suggestResponse{Tags: tags})
	default:
		return c.JSON(http.StatusBadRequest, errorsResponse{Errors: []domain.FieldError{
			{Field: "kind", Message: "Kind must be one of title, description, tags"},
		}})
	}
}
