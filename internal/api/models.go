package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mochi-hq/mochi-api/internal/domain"
)

// CreateCardRequest represents the request body for creating a card.
type CreateCardRequest struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description" validate:"max=4096"`
}

// UpdateCardRequest represents the request body for updating a card.
type UpdateCardRequest struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description" validate:"max=4096"`
}

// pathUUID extracts a UUID path parameter. A missing or malformed value
// is a request error, never an internal one.
func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: missing %s", domain.ErrInvalidID, param)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q", domain.ErrInvalidID, param, raw)
	}
	return id, nil
}
