package api

import (
	"net/http"
	"time"

	// Registers the generated Swagger spec.
	_ "parley/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handlers groups everything NewRouter mounts.
type Handlers struct {
	Chat     *ChatHandler
	Sessions *SessionHandler
	Config   *ConfigHandler
	Models   *ModelHandler
	Gateway  *GatewayHandler
}

// NewRouter creates the chi router with every route of the service.
func NewRouter(h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	// Liveness probe for container orchestration.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// --- Gateway Routes ---
	// Unversioned, kept wire-compatible with existing chat clients.
	r.With(middleware.Timeout(60*time.Second)).Get("/api/models", h.Models.HandleListModels)
	// Completions and search wait on the model; no timeout here.
	r.Post("/api/chat", h.Gateway.HandleChat)
	r.Post("/api/search", h.Gateway.HandleSearch)

	// --- API Version 1 Routes ---
	r.Route("/api/v1", func(r chi.Router) {

		// Plain JSON routes get a request timeout so a stuck client cannot
		// hold a connection forever.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			// --- Config ---
			r.Get("/config", h.Config.GetConfig)
			r.Patch("/config", h.Config.UpdateConfig)
			r.Post("/config/reset", h.Config.ResetConfig)
			r.Get("/masks", h.Config.ListMasks)

			// --- Sessions ---
			r.Get("/sessions", h.Sessions.ListSessions)
			r.Post("/sessions", h.Sessions.CreateSession)
			r.Delete("/sessions", h.Sessions.ClearSessions)
			r.Get("/sessions/{sessionID}", h.Sessions.GetSession)
			r.Delete("/sessions/{sessionID}", h.Sessions.DeleteSession)
			r.Put("/sessions/{sessionID}/title", h.Sessions.UpdateTitle)
			r.Patch("/sessions/{sessionID}/settings", h.Sessions.UpdateSettings)
			r.Put("/sessions/{sessionID}/input", h.Sessions.UpdateInput)
			r.Post("/sessions/{sessionID}/mask", h.Sessions.AssignMask)
			r.Post("/sessions/{sessionID}/clear", h.Sessions.ClearHistory)
			r.Post("/sessions/{sessionID}/stop", h.Chat.HandleStop)

			// --- Messages ---
			r.Get("/sessions/{sessionID}/messages", h.Sessions.ListMessages)
			r.Put("/sessions/{sessionID}/messages/{messageID}", h.Sessions.EditMessage)
			r.Delete("/sessions/{sessionID}/messages/{messageID}", h.Sessions.DeleteMessage)
			r.Post("/sessions/{sessionID}/messages/{messageID}/pin", h.Sessions.PinMessage)
		})

		// Streaming routes hold the connection open for the whole reply and
		// must NOT have a timeout.
		r.Group(func(r chi.Router) {
			r.Post("/sessions/{sessionID}/messages", h.Chat.HandleSendMessage)
			r.Post("/sessions/{sessionID}/messages/{messageID}/regenerate", h.Chat.HandleRegenerateMessage)
		})
	})

	return r
}
