// internal/httpserver/handlers.go
//
// JSON handlers for the /api surface. Handlers stay thin: decode the
// payload, resolve the game, call one engine operation, publish the SSE
// events the mutation implies, and encode the response. All game-rule
// decisions live in internal/game.

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/phony-server/internal/game"
	"github.com/robalobadob/phony-server/internal/sse"
	"github.com/robalobadob/phony-server/internal/token"
)

// ------------------------------ helpers ------------------------------------

// writeError maps an engine error to its HTTP status and JSON body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch game.KindOf(err) {
	case game.KindValidation:
		status = http.StatusBadRequest
	case game.KindForbidden:
		status = http.StatusForbidden
	case game.KindNotFound:
		status = http.StatusNotFound
	default:
		log.Error().Err(err).Msg("unexpected engine error")
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeOK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"ok":true}`))
}

// gameFromRequest resolves the game_token URL parameter or writes a 404.
func (s *Server) gameFromRequest(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	g, ok := s.registry.Get(chi.URLParam(r, "game_token"))
	if !ok {
		http.Error(w, `{"error":"invalid game_token"}`, http.StatusNotFound)
		return nil, false
	}
	return g, true
}

func playerToken(r *http.Request) string {
	return chi.URLParam(r, "player_token")
}

// decodePlayerName extracts the player_name field or writes a 400.
func decodePlayerName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body struct {
		PlayerName string `json:"player_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PlayerName == "" {
		http.Error(w, `{"error":"missing player_name"}`, http.StatusBadRequest)
		return "", false
	}
	return body.PlayerName, true
}

// ------------------------------ handlers -----------------------------------

// handleCreateGame starts a new session with the caller as first player.
// POST /api/games {player_name} -> 201 {game_token, player_token}
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	name, ok := decodePlayerName(w, r)
	if !ok {
		return
	}
	// Validate before allocating a session so a bad name leaves no empty game.
	if err := game.ValidateName(name); err != nil {
		writeError(w, err)
		return
	}

	g := s.registry.Create()
	p, err := g.Join(name, token.New())
	if err != nil {
		writeError(w, err)
		return
	}
	log.Info().Str("game", g.Token()).Str("player", name).Msg("game created")

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"game_token":   g.Token(),
		"player_token": p.Token,
	})
}

// handleJoin adds a player to an existing session.
// POST /api/games/{game}/players {player_name} -> 201 {player_token}
func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	name, ok := decodePlayerName(w, r)
	if !ok {
		return
	}
	g, ok := s.gameFromRequest(w, r)
	if !ok {
		return
	}

	p, err := g.Join(name, token.New())
	if err != nil {
		writeError(w, err)
		return
	}
	s.broker.Publish(g.Token(), sse.EventPlayers)
	s.broker.Publish(g.Token(), sse.EventScoreboard)

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"player_token": p.Token})
}

// handlePlayerList returns roster names in join order.
// GET /api/games/{game}/players -> 200 {players}
func (s *Server) handlePlayerList(w http.ResponseWriter, r *http.Request) {
	g, ok := s.gameFromRequest(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string][]string{"players": g.PlayerNames()})
}

// handleScoreboard returns the ranked standings. Listing requires only the
// game token, so clients can refresh it straight off a "scoreboard" event.
// GET /api/games/{game}/scoreboard -> 200 {scoreboard}
func (s *Server) handleScoreboard(w http.ResponseWriter, r *http.Request) {
	g, ok := s.gameFromRequest(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string][]game.ScoreboardRow{
		"scoreboard": g.Scoreboard(),
	})
}

// handleReady marks the calling player ready.
// PUT /api/games/{game}/players/{player}/ready -> 200
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	g, ok := s.gameFromRequest(w, r)
	if !ok {
		return
	}
	if err := g.Ready(playerToken(r)); err != nil {
		writeError(w, err)
		return
	}
	s.broker.Publish(g.Token(), sse.EventBoard)
	writeOK(w)
}

// handleBoard returns the caller's full view of the game.
// GET /api/games/{game}/players/{player} -> 200 board view
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	g, ok := s.gameFromRequest(w, r)
	if !ok {
		return
	}
	view, err := g.View(playerToken(r))
	if err != nil {
		writeError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(view)
}

// handleWord stores the caller's word for the round.
// PUT /api/games/{game}/players/{player}/word {word} -> 200
func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	g, ok := s.gameFromRequest(w, r)
	if !ok {
		return
	}
	var body struct {
		Word string `json:"word"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, `{"error":"no word submitted"}`, http.StatusBadRequest)
		return
	}
	if err := g.SubmitWord(playerToken(r), body.Word); err != nil {
		writeError(w, err)
		return
	}
	s.broker.Publish(g.Token(), sse.EventBoard)
	writeOK(w)
}

// handleSubmitGuesses stores the caller's complete guess set.
// PUT /api/games/{game}/players/{player}/guesses {guesses} -> 200
func (s *Server) handleSubmitGuesses(w http.ResponseWriter, r *http.Request) {
	g, ok := s.gameFromRequest(w, r)
	if !ok {
		return
	}
	var body struct {
		Guesses map[int]int `json:"guesses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Guesses == nil {
		http.Error(w, `{"error":"missing guesses"}`, http.StatusBadRequest)
		return
	}
	if err := g.SubmitGuesses(playerToken(r), body.Guesses); err != nil {
		writeError(w, err)
		return
	}
	s.broker.Publish(g.Token(), sse.EventBoard)
	writeOK(w)
}

// handleGetGuesses echoes the caller's stored guesses.
// GET /api/games/{game}/players/{player}/guesses -> 200 {guesses}
func (s *Server) handleGetGuesses(w http.ResponseWriter, r *http.Request) {
	g, ok := s.gameFromRequest(w, r)
	if !ok {
		return
	}
	guesses, err := g.Guesses(playerToken(r))
	if err != nil {
		writeError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]map[int]int{"guesses": guesses})
}

// handleScored advances the reveal cursor; only the currently authorized
// player succeeds.
// PUT /api/games/{game}/players/{player}/scored -> 200
func (s *Server) handleScored(w http.ResponseWriter, r *http.Request) {
	g, ok := s.gameFromRequest(w, r)
	if !ok {
		return
	}
	if err := g.MarkScored(playerToken(r)); err != nil {
		writeError(w, err)
		return
	}
	s.broker.Publish(g.Token(), sse.EventBoard)
	s.broker.Publish(g.Token(), sse.EventScoreboard)
	writeOK(w)
}

// handleEvents streams the game's SSE events until the client disconnects.
// GET /api/games/{game}/events
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	g, ok := s.gameFromRequest(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, `{"error":"streaming unsupported"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := s.broker.Subscribe(g.Token())
	defer sub.Close()

	for {
		select {
		case name, open := <-sub.C():
			if !open {
				return
			}
			_, _ = fmt.Fprintf(w, "event: %s\ndata:\n\n", name)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
