package domain

import "github.com/google/uuid"

// User is the in-process identity derived from a validated token's
// claims. It is never persisted by this service.
type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
