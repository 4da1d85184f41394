// internal/game/types.go
//
// Core type definitions for the word-bluffing game engine.
// Defines:
//   - Supply: the entropy source for letter hands and prompt texts.
//   - Card: a prompt card in the round's deck (real or decoy).
//   - Player: roster entry with hand, word, guesses, and score counters.
//   - Game: the full mutable state of one session.

package game

import "sync"

// Supply produces the random material a round consumes: letter hands and
// prompt-card texts. Implementations must be safe for concurrent use.
type Supply interface {
	// DrawHand returns a fresh 12-rune letter hand.
	DrawHand() string

	// DrawPrompt returns a prompt-card text, always longer than 4 runes.
	// used holds the texts already dealt in the calling game; the draw
	// avoids them as long as unused prompts remain.
	DrawPrompt(used map[string]bool) string
}

// Card is one entry of a round's deck. The N real cards are the players'
// prompt cards; the N decoys carry no owner.
type Card struct {
	ID       int    // unique within the game, assigned from Game.nextCardID
	Text     string // prompt text, shown to everyone once the deck exists
	OwnerID  int    // authoring player id; -1 for decoys
	Decoy    bool   // true if the card has no real owner
	Score    int    // correct guesses received this round, valid once Revealed
	Revealed bool   // ownership disclosed during the score phase
}

// Player is a roster entry. Ids are assigned in join order and never reused.
type Player struct {
	ID      int
	Token   string // secret, authenticates this player's actions
	Name    string
	Ready   bool        // reset at the start of every round
	Letters string      // 12-rune hand, dealt at submit-word entry
	Word    string      // word submitted this round, "" until submitted
	Prompt  *Card       // the player's own real card for the round
	Guesses map[int]int // other player id -> guessed card id, nil until submitted

	ScoreOwnWords       int // cumulative: correct guesses received on own words
	ScoreCorrectGuesses int // cumulative: correct guesses made
}

// ScoreTotal is the running sum of both score counters.
func (p *Player) ScoreTotal() int { return p.ScoreOwnWords + p.ScoreCorrectGuesses }

// Game owns the full state of one session. Every exported method locks mu,
// so operations are atomic with respect to concurrent requests on the same
// game; distinct games never contend with each other.
type Game struct {
	mu sync.Mutex

	token   string
	phase   Phase
	round   int
	players []*Player
	supply  Supply

	cards       []*Card // round deck in display order, built at assign-words entry
	revealOrder []int   // real card ids in reveal sequence
	revealed    int     // cursor into revealOrder
	nextCardID  int

	// usedPrompts spans rounds: a prompt text dealt once in this game is
	// never dealt again, so no two cards ever read the same.
	usedPrompts map[string]bool
}

// Token returns the session's opaque token.
func (g *Game) Token() string { return g.token }
