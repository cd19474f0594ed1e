package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mochi-hq/mochi-api/internal/api/shared"
	"github.com/mochi-hq/mochi-api/internal/domain"
	"github.com/mochi-hq/mochi-api/internal/platform/logger"
	"github.com/mochi-hq/mochi-api/internal/store"
)

// CardHandler handles card-related HTTP requests.
type CardHandler struct {
	cardStore store.CardStore
	logger    *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardStore store.CardStore, logger *slog.Logger) *CardHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		cardStore: cardStore,
		logger:    logger.With(slog.String("component", "card_handler")),
	}
}

// CreateCard handles POST /card requests.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		RespondError(w, r, fmt.Errorf("%w: decoding create card request: %s", ErrBadRequest, err))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		RespondError(w, r, fmt.Errorf("%w: %s", ErrBadRequest, err))
		return
	}

	card, err := domain.NewCard(req.Name, req.Description)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.cardStore.Create(r.Context(), card); err != nil {
		RespondError(w, r, fmt.Errorf("creating card: %w", err))
		return
	}

	log.Debug("card created", slog.String("card_id", card.ID.String()))
	shared.RespondWithData(w, r, http.StatusCreated, card)
}

// ListCards handles GET /card requests.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cardStore.List(r.Context())
	if err != nil {
		RespondError(w, r, fmt.Errorf("listing cards: %w", err))
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, cards)
}

// GetCard handles GET /card/{id} requests.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	card, err := h.cardStore.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrCardNotFound) {
		RespondError(w, r, NewNotFoundError("Card", domain.ConditionWithID(id)))
		return
	}
	if err != nil {
		RespondError(w, r, fmt.Errorf("getting card: %w", err))
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, card)
}

// UpdateCard handles PUT /card/{id} requests.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := pathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req UpdateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		RespondError(w, r, fmt.Errorf("%w: decoding update card request: %s", ErrBadRequest, err))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		RespondError(w, r, fmt.Errorf("%w: %s", ErrBadRequest, err))
		return
	}

	card, err := h.cardStore.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrCardNotFound) {
		RespondError(w, r, NewNotFoundError("Card", domain.ConditionWithID(id)))
		return
	}
	if err != nil {
		RespondError(w, r, fmt.Errorf("getting card for update: %w", err))
		return
	}

	card.Name = req.Name
	card.Description = req.Description

	if err := h.cardStore.Update(r.Context(), card); err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			RespondError(w, r, NewNotFoundError("Card", domain.ConditionWithID(id)))
			return
		}
		RespondError(w, r, fmt.Errorf("updating card: %w", err))
		return
	}

	log.Debug("card updated", slog.String("card_id", id.String()))
	shared.RespondWithData(w, r, http.StatusOK, card)
}

// GetCardLinks handles GET /card/{id}/logic requests, listing the
// generic logic records linked to a card.
func (h *CardHandler) GetCardLinks(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if _, err := h.cardStore.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			RespondError(w, r, NewNotFoundError("Card", domain.ConditionWithID(id)))
			return
		}
		RespondError(w, r, fmt.Errorf("getting card for links: %w", err))
		return
	}

	links, err := h.cardStore.GetLinkedLogics(r.Context(), id)
	if err != nil {
		RespondError(w, r, fmt.Errorf("listing card links: %w", err))
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, links)
}

// DeleteCard handles DELETE /card/{id} requests.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := pathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	err = h.cardStore.Delete(r.Context(), id)
	if errors.Is(err, store.ErrCardNotFound) {
		RespondError(w, r, NewNotFoundError("Card", domain.ConditionWithID(id)))
		return
	}
	if err != nil {
		RespondError(w, r, fmt.Errorf("deleting card: %w", err))
		return
	}

	log.Debug("card deleted", slog.String("card_id", id.String()))
	shared.RespondWithData(w, r, http.StatusOK, domain.DeleteInfo{ID: id})
}
