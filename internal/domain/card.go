package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Card is a domain record owned by this service. Cards may be linked to
// externally-owned generic logic records.
type Card struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	CreationTimestamp time.Time `json:"creationTimestamp"`
}

// NewCard creates a new card with a generated ID and the current UTC
// timestamp. Returns a validation error if the name is empty.
func NewCard(name, description string) (*Card, error) {
	card := &Card{
		ID:                uuid.New(),
		Name:              name,
		Description:       description,
		CreationTimestamp: time.Now().UTC(),
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}
	return card, nil
}

// Validate checks that the card data meets domain requirements.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return fmt.Errorf("%w: card ID cannot be empty", ErrValidation)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: card name cannot be empty", ErrValidation)
	}
	return nil
}

// LinkedLogicInfo describes a link between a card and an
// externally-owned generic logic record.
type LinkedLogicInfo struct {
	ID     uuid.UUID `json:"id"`
	CardID uuid.UUID `json:"cardId"`
}

// DeleteInfo carries the identifier of a deleted record.
type DeleteInfo struct {
	ID uuid.UUID `json:"id"`
}
