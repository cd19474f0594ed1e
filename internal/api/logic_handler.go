package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mochi-hq/mochi-api/internal/api/shared"
	"github.com/mochi-hq/mochi-api/internal/domain"
	"github.com/mochi-hq/mochi-api/internal/platform/logger"
	"github.com/mochi-hq/mochi-api/internal/platform/logicapi"
	"github.com/mochi-hq/mochi-api/internal/service/auth"
	"github.com/mochi-hq/mochi-api/internal/store"
)

// LogicHandler handles generic-logic HTTP requests. Logic records are
// owned by an upstream service; this handler reads them through the
// logicapi client with the caller's own bearer token and manages the
// local links between cards and logic records.
type LogicHandler struct {
	logicClient logicapi.Client
	cardStore   store.CardStore
	logger      *slog.Logger
}

// NewLogicHandler creates a new LogicHandler.
func NewLogicHandler(
	logicClient logicapi.Client,
	cardStore store.CardStore,
	logger *slog.Logger,
) *LogicHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LogicHandler")
	}

	return &LogicHandler{
		logicClient: logicClient,
		cardStore:   cardStore,
		logger:      logger.With(slog.String("component", "logic_handler")),
	}
}

// callerToken returns the bearer token the auth interceptor stored for
// this request. Routes using it are only mounted behind the
// interceptor, so absence means the request never passed through it.
func callerToken(r *http.Request) (string, error) {
	token, ok := shared.GetBearerToken(r.Context())
	if !ok || token == "" {
		return "", fmt.Errorf("%w: no bearer token in request context", auth.ErrInvalidAuthentication)
	}
	return token, nil
}

// ListLogics handles GET /logic requests by passing the caller's
// credentials through to the upstream logic service.
func (h *LogicHandler) ListLogics(w http.ResponseWriter, r *http.Request) {
	token, err := callerToken(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	logics, err := h.logicClient.GetAll(r.Context(), token)
	if err != nil {
		RespondError(w, r, fmt.Errorf("listing generic logics: %w", err))
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, logics)
}

// LinkLogic handles POST /logic/{id}/link/{cardID} requests. The logic
// record must exist upstream before a link is recorded locally.
func (h *LogicHandler) LinkLogic(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	logicID, err := pathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}
	cardID, err := pathUUID(r, "cardID")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	token, err := callerToken(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if _, err := h.logicClient.GetByID(r.Context(), token, logicID); err != nil {
		if errors.Is(err, logicapi.ErrLogicNotFound) {
			RespondError(w, r, NewNotFoundError("Logic", domain.ConditionWithID(logicID)))
			return
		}
		RespondError(w, r, fmt.Errorf("resolving generic logic: %w", err))
		return
	}

	linkedCardID, err := h.cardStore.LinkGenericLogic(r.Context(), cardID, logicID)
	if err != nil {
		RespondError(w, r, fmt.Errorf("linking generic logic: %w", err))
		return
	}

	log.Debug("generic logic linked",
		slog.String("card_id", linkedCardID.String()),
		slog.String("logic_id", logicID.String()))
	shared.RespondWithData(w, r, http.StatusCreated, domain.LinkedLogicInfo{
		ID:     logicID,
		CardID: linkedCardID,
	})
}

// UnlinkLogic handles DELETE /logic/{id}/link/{cardID} requests.
func (h *LogicHandler) UnlinkLogic(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	logicID, err := pathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}
	cardID, err := pathUUID(r, "cardID")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	_, err = h.cardStore.UnlinkGenericLogic(r.Context(), cardID, logicID)
	if errors.Is(err, store.ErrLinkNotFound) {
		RespondError(w, r, NewNotFoundError("Logic", domain.ConditionWithID(logicID)))
		return
	}
	if err != nil {
		RespondError(w, r, fmt.Errorf("unlinking generic logic: %w", err))
		return
	}

	log.Debug("generic logic unlinked",
		slog.String("card_id", cardID.String()),
		slog.String("logic_id", logicID.String()))
	shared.RespondWithData(w, r, http.StatusOK, domain.DeleteInfo{ID: logicID})
}
