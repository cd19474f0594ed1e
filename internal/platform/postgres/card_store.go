package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mochi-hq/mochi-api/internal/domain"
	"github.com/mochi-hq/mochi-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface using a
// PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. The connection (or transaction) is initialized
// and managed by the caller. If logger is nil, the default is used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// Create implements store.CardStore.Create.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO cards (id, name, description, creation_timestamp)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.Name,
		card.Description,
		card.CreationTimestamp,
	)
	if err != nil {
		return store.NewPersistError(store.OpCreateCard, domain.EmptyCondition(), err)
	}
	return nil
}

// List implements store.CardStore.List.
func (s *PostgresCardStore) List(ctx context.Context) ([]domain.Card, error) {
	query := `
		SELECT id, name, description, creation_timestamp
		FROM cards
		ORDER BY creation_timestamp
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, store.NewPersistError(store.OpListCards, domain.EmptyCondition(), err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	cards := []domain.Card{}
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(
			&card.ID,
			&card.Name,
			&card.Description,
			&card.CreationTimestamp,
		); err != nil {
			return nil, store.NewPersistError(store.OpListCards, domain.EmptyCondition(), err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewPersistError(store.OpListCards, domain.EmptyCondition(), err)
	}
	return cards, nil
}

// GetByID implements store.CardStore.GetByID.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	condition := domain.ConditionWithID(id)

	query := `
		SELECT id, name, description, creation_timestamp
		FROM cards
		WHERE id = $1
	`
	var card domain.Card
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.Name,
		&card.Description,
		&card.CreationTimestamp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.WithCondition(store.ErrCardNotFound, condition)
		}
		return nil, store.NewPersistError(store.OpGetCard, condition, err)
	}
	return &card, nil
}

// Update implements store.CardStore.Update.
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}
	condition := domain.ConditionWithID(card.ID)

	query := `
		UPDATE cards
		SET name = $2, description = $3
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, card.ID, card.Name, card.Description)
	if err != nil {
		return store.NewPersistError(store.OpUpdateCard, condition, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return store.NewPersistError(store.OpUpdateCard, condition, err)
	}
	if rowsAffected == 0 {
		return store.WithCondition(store.ErrCardNotFound, condition)
	}
	return nil
}

// Delete implements store.CardStore.Delete. Generic logic links are
// removed by the schema's ON DELETE CASCADE.
func (s *PostgresCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	condition := domain.ConditionWithID(id)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		return store.NewPersistError(store.OpDeleteCard, condition, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return store.NewPersistError(store.OpDeleteCard, condition, err)
	}
	if rowsAffected == 0 {
		return store.WithCondition(store.ErrCardNotFound, condition)
	}
	return nil
}

// GetLinkedLogics implements store.CardStore.GetLinkedLogics.
func (s *PostgresCardStore) GetLinkedLogics(
	ctx context.Context,
	cardID uuid.UUID,
) ([]domain.LinkedLogicInfo, error) {
	condition := domain.ConditionWithID(cardID)

	query := `
		SELECT generic_logic_id, card_id
		FROM card_linked_generic_logic
		WHERE card_id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, cardID)
	if err != nil {
		return nil, store.NewPersistError(store.OpGetCardLinks, condition, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	links := []domain.LinkedLogicInfo{}
	for rows.Next() {
		var link domain.LinkedLogicInfo
		if err := rows.Scan(&link.ID, &link.CardID); err != nil {
			return nil, store.NewPersistError(store.OpGetCardLinks, condition, err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewPersistError(store.OpGetCardLinks, condition, err)
	}
	return links, nil
}

// LinkGenericLogic implements store.CardStore.LinkGenericLogic.
//
// Uniqueness is enforced by the card_linked_generic_logic unique
// constraint, so of two concurrent link attempts for the same pair
// exactly one succeeds; the loser maps to ErrLogicAlreadyLinked.
func (s *PostgresCardStore) LinkGenericLogic(
	ctx context.Context,
	cardID, logicID uuid.UUID,
) (uuid.UUID, error) {
	query := `
		INSERT INTO card_linked_generic_logic (id, card_id, generic_logic_id)
		VALUES ($1, $2, $3)
	`
	_, err := s.db.ExecContext(ctx, query, uuid.New(), cardID, logicID)
	if err != nil {
		switch {
		case IsUniqueViolation(err):
			return uuid.Nil, store.WithCondition(
				store.ErrLogicAlreadyLinked,
				domain.ConditionWithID(logicID),
			)
		case IsForeignKeyViolation(err):
			return uuid.Nil, store.WithCondition(
				store.ErrCardNotExists,
				domain.ConditionWithID(cardID),
			)
		default:
			return uuid.Nil, store.NewPersistError(
				store.OpLinkLogic,
				domain.ConditionWithIDs([]uuid.UUID{cardID, logicID}),
				err,
			)
		}
	}
	return cardID, nil
}

// UnlinkGenericLogic implements store.CardStore.UnlinkGenericLogic.
func (s *PostgresCardStore) UnlinkGenericLogic(
	ctx context.Context,
	cardID, logicID uuid.UUID,
) (uuid.UUID, error) {
	condition := domain.ConditionWithIDs([]uuid.UUID{cardID, logicID})

	query := `
		DELETE FROM card_linked_generic_logic
		WHERE card_id = $1 AND generic_logic_id = $2
	`
	result, err := s.db.ExecContext(ctx, query, cardID, logicID)
	if err != nil {
		return uuid.Nil, store.NewPersistError(store.OpUnlinkLogic, condition, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return uuid.Nil, store.NewPersistError(store.OpUnlinkLogic, condition, err)
	}
	if rowsAffected == 0 {
		return uuid.Nil, store.WithCondition(store.ErrLinkNotFound, condition)
	}
	return cardID, nil
}

// WithTx implements store.CardStore.WithTx.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}
