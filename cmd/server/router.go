package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mochi-hq/mochi-api/internal/api"
	apiMiddleware "github.com/mochi-hq/mochi-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware. Everything under /api/v1 sits behind the auth
// interceptor; only /health is public.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	cardHandler := api.NewCardHandler(app.cardStore, app.logger)
	logicHandler := api.NewLogicHandler(app.logicClient, app.cardStore, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.validator, app.logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/card", cardHandler.CreateCard)
		r.Get("/card", cardHandler.ListCards)
		r.Get("/card/{id}", cardHandler.GetCard)
		r.Put("/card/{id}", cardHandler.UpdateCard)
		r.Delete("/card/{id}", cardHandler.DeleteCard)
		r.Get("/card/{id}/logic", cardHandler.GetCardLinks)

		r.Get("/logic", logicHandler.ListLogics)
		r.Post("/logic/{id}/link/{cardID}", logicHandler.LinkLogic)
		r.Delete("/logic/{id}/link/{cardID}", logicHandler.UnlinkLogic)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
