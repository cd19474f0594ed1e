package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mochi-hq/mochi-api/internal/domain"
)

// CardStore defines the interface for card data persistence, including
// links between cards and externally-owned generic logic records.
//
// Every method returns either a value, a "not found" / domain-rule
// sentinel from this package, or a *PersistError wrapping the driver
// failure. Callers must never see raw driver errors.
type CardStore interface {
	// Create saves a new card. The card must pass domain validation.
	Create(ctx context.Context, card *domain.Card) error

	// List retrieves all cards ordered by creation timestamp.
	List(ctx context.Context) ([]domain.Card, error)

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// Update modifies an existing card's name and description.
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes a card by its ID. Associated generic logic links
	// are removed by the schema's ON DELETE CASCADE.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetLinkedLogics retrieves the generic logic links for a card.
	GetLinkedLogics(ctx context.Context, cardID uuid.UUID) ([]domain.LinkedLogicInfo, error)

	// LinkGenericLogic links a generic logic record to a card and
	// returns the card ID. Returns ErrCardNotExists when the card does
	// not exist and ErrLogicAlreadyLinked when the pair is already
	// linked; under concurrent duplicate link attempts exactly one call
	// succeeds and the others fail with ErrLogicAlreadyLinked.
	LinkGenericLogic(ctx context.Context, cardID, logicID uuid.UUID) (uuid.UUID, error)

	// UnlinkGenericLogic removes the link between a card and a generic
	// logic record and returns the card ID.
	// Returns ErrLinkNotFound if no such link exists.
	UnlinkGenericLogic(ctx context.Context, cardID, logicID uuid.UUID) (uuid.UUID, error)

	// WithTx returns a CardStore bound to the given transaction so
	// multiple operations can execute atomically via RunInTransaction.
	WithTx(tx *sql.Tx) CardStore
}
