// internal/httpserver/server.go
//
// HTTP server wiring for the game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - REST endpoints under /api: game creation, joining, readiness, word and
//     guess submission, the per-player board view, score reveals, and the
//     ranked scoreboard.
//   - SSE event stream per game (exempt from the request timeout).
//   - Mapping engine error kinds to HTTP status codes.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Tokens are generated here, not in the engine; the engine stores
//     whatever opaque identifiers it is handed.

package httpserver

import (
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/phony-server/internal/registry"
	"github.com/robalobadob/phony-server/internal/sse"
)

// Server bundles the router with the session registry and event broker.
type Server struct {
	r        *chi.Mux
	registry *registry.Registry
	broker   *sse.Broker
}

// New constructs a Server, installs middleware, and registers routes.
func New(reg *registry.Registry, broker *sse.Broker) *Server {
	s := &Server{r: chi.NewRouter(), registry: reg, broker: broker}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(jsonContentType) // default JSON responses
	s.r.Use(corsFromEnv)     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/api", func(api chi.Router) {
		api.Group(func(api chi.Router) {
			api.Use(chimw.Timeout(10 * time.Second)) // bound handler time

			api.Post("/games", s.handleCreateGame)
			api.Route("/games/{game_token}", func(gr chi.Router) {
				gr.Get("/scoreboard", s.handleScoreboard)
				gr.Get("/players", s.handlePlayerList)
				gr.Post("/players", s.handleJoin)
				gr.Get("/players/{player_token}", s.handleBoard)
				gr.Put("/players/{player_token}/ready", s.handleReady)
				gr.Put("/players/{player_token}/word", s.handleWord)
				gr.Put("/players/{player_token}/guesses", s.handleSubmitGuesses)
				gr.Get("/players/{player_token}/guesses", s.handleGetGuesses)
				gr.Put("/players/{player_token}/scored", s.handleScored)
			})
		})

		// Long-lived stream, so no timeout middleware here.
		api.Get("/games/{game_token}/events", s.handleEvents)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := getEnv("CLIENT_ORIGIN", "http://localhost:5173")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
