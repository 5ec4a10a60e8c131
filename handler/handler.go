// Package handler implements the JSON API. Every handler validates at the
// boundary, talks to the store, and shapes the response envelope; no business
// state lives here.
package handler

import (
	"topthought/domain"
	"topthought/store"
	"topthought/suggest"
	"topthought/youtube"
)

type Handler struct {
	Store     *store.Store
	JWTSecret string

	// Optional collaborators; the matching routes are only mounted when
	// these are configured.
	Suggester suggest.Suggester
	YouTube   *youtube.Client
}

// messageResponse is the body of every non-validation error and of plain
// acknowledgements like delete.
type messageResponse struct {
	Message string `json:"message"`
}

type errorsResponse struct {
	Errors []domain.FieldError `json:"errors"`
}
