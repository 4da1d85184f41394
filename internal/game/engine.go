// internal/game/engine.go
//
// Core game engine for a single word-bluffing session.
// Responsibilities:
//   - Roster management: joins with name validation, ready toggles.
//   - Phase transitions: deal hands/prompts, build the round deck, open the
//     score phase, cycle back to wait-for-ready.
//   - Word submission with hand-multiset validation.
//   - Guess submission with completeness/self/duplicate checks.
//   - The sequential reveal protocol with score accumulation.
//
// Notes:
//   - Every operation is keyed by the acting player's secret token and
//     resolved under the session mutex, so a request either applies fully
//     or leaves the game untouched.
//   - Token generation is the caller's concern; the engine stores whatever
//     opaque tokens it is handed.

package game

import (
	"math/rand"
	"regexp"
	"sort"
	"unicode/utf8"
)

// The game needs at least three players; with fewer, guessing is trivial.
const minPlayers = 3

// handSize is the rune count of a dealt hand and the upper bound on
// submitted word length.
const handSize = 12

// playerNameRE accepts 2-16 visible characters with no leading or trailing
// whitespace; single spaces are allowed inside.
var playerNameRE = regexp.MustCompile(`^\S(\S| ){0,14}\S$`)

// New constructs an empty session in wait-for-ready at round 1.
func New(token string, supply Supply) *Game {
	return &Game{
		token:       token,
		phase:       PhaseWaitForReady,
		round:       1,
		supply:      supply,
		nextCardID:  1,
		usedPrompts: make(map[string]bool),
	}
}

// ValidateName reports whether name is a legal player name.
func ValidateName(name string) error {
	if !playerNameRE.MatchString(name) {
		return validationf("invalid player_name")
	}
	return nil
}

// Join appends a new player to the roster and returns it. The caller
// supplies the freshly generated secret token; ids are assigned in join
// order. Joining is only possible during round 1's wait-for-ready.
func (g *Game) Join(name, token string) (*Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.allowed(actionJoin) || g.round != 1 {
		return nil, forbiddenf("cannot join after game start")
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	for _, p := range g.players {
		if p.Name == name {
			return nil, validationf("name already taken")
		}
	}

	p := &Player{ID: len(g.players), Token: token, Name: name}
	g.players = append(g.players, p)
	return p, nil
}

// PlayerNames returns the roster names in join order.
func (g *Game) PlayerNames() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	names := make([]string, len(g.players))
	for i, p := range g.players {
		names[i] = p.Name
	}
	return names
}

// Ready marks the player ready. A second ready call is an error, not a
// no-op. When the last of at least three joined players readies up, hands
// and prompt cards are dealt and the game moves to submit-word.
func (g *Game) Ready(playerToken string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.playerByToken(playerToken)
	if !ok {
		return errPlayerNotFound
	}
	if !g.allowed(actionReady) {
		return forbiddenf("wrong game phase")
	}
	if p.Ready {
		return forbiddenf("already ready")
	}

	p.Ready = true
	if g.everyoneReady() {
		g.startRound()
	}
	return nil
}

func (g *Game) everyoneReady() bool {
	if len(g.players) < minPlayers {
		return false
	}
	for _, p := range g.players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// startRound deals every player a fresh hand and a private prompt card and
// enters submit-word.
func (g *Game) startRound() {
	for _, p := range g.players {
		p.Letters = g.supply.DrawHand()
		p.Prompt = &Card{
			ID:      g.nextCardID,
			Text:    g.drawPrompt(),
			OwnerID: p.ID,
		}
		g.nextCardID++
	}
	g.phase = PhaseSubmitWord
}

// drawPrompt pulls a prompt text and records it, so the supply never deals
// the same text twice into one game.
func (g *Game) drawPrompt() string {
	text := g.supply.DrawPrompt(g.usedPrompts)
	g.usedPrompts[text] = true
	return text
}

// SubmitWord stores the player's word for the round. Each hand letter may be
// used at most as often as it was dealt. Resubmission before the phase
// closes overwrites the previous word; the submission completing the set
// builds the deck and enters assign-words.
func (g *Game) SubmitWord(playerToken, word string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.playerByToken(playerToken)
	if !ok {
		return errPlayerNotFound
	}
	if !g.allowed(actionSubmitWord) {
		return forbiddenf("wrong game phase")
	}
	if word == "" {
		return validationf("no word submitted")
	}
	if utf8.RuneCountInString(word) > handSize {
		return validationf("too many letters")
	}

	available := []rune(p.Letters)
	for _, r := range word {
		found := false
		for i, a := range available {
			if r == a {
				available = append(available[:i], available[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return validationf("invalid letter")
		}
	}

	p.Word = word
	if g.everyWordSubmitted() {
		g.buildDeck()
	}
	return nil
}

func (g *Game) everyWordSubmitted() bool {
	for _, p := range g.players {
		if p.Word == "" {
			return false
		}
	}
	return true
}

// buildDeck assembles the round's 2N cards (each player's prompt card plus
// one decoy per player), shuffles the display order, fixes the reveal
// sequence, and enters assign-words.
func (g *Game) buildDeck() {
	g.cards = make([]*Card, 0, 2*len(g.players))
	for _, p := range g.players {
		g.cards = append(g.cards, p.Prompt)
	}
	for range g.players {
		g.cards = append(g.cards, &Card{
			ID:      g.nextCardID,
			Text:    g.drawPrompt(),
			OwnerID: -1,
			Decoy:   true,
		})
		g.nextCardID++
	}
	rand.Shuffle(len(g.cards), func(i, j int) {
		g.cards[i], g.cards[j] = g.cards[j], g.cards[i]
	})

	// Reveal real cards in ascending id order. Ids never repeat, so every
	// successive reveal changes owner, word, and guess set.
	g.revealOrder = make([]int, 0, len(g.players))
	for _, p := range g.players {
		g.revealOrder = append(g.revealOrder, p.Prompt.ID)
	}
	sort.Ints(g.revealOrder)
	g.revealed = 0
	g.phase = PhaseAssignWords
}

// SubmitGuesses stores the player's guess set: one distinct existing card id
// for each other player. A guess set that names the submitter itself breaks
// fair play and is forbidden rather than invalid. The submission completing
// the set opens the score phase.
func (g *Game) SubmitGuesses(playerToken string, guesses map[int]int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.playerByToken(playerToken)
	if !ok {
		return errPlayerNotFound
	}
	if !g.allowed(actionSubmitGuesses) {
		return forbiddenf("wrong game phase")
	}
	if p.Guesses != nil {
		return forbiddenf("guesses already submitted")
	}
	if len(guesses) != len(g.players)-1 {
		return validationf("bad number of guesses")
	}
	if _, self := guesses[p.ID]; self {
		return forbiddenf("attempting to guess own word")
	}

	used := make(map[int]bool, len(guesses))
	for targetID, cardID := range guesses {
		if _, exists := g.playerByID(targetID); !exists {
			return validationf("unknown player id %d", targetID)
		}
		card := g.cardByID(cardID)
		if card == nil {
			return validationf("invalid card")
		}
		if card == p.Prompt {
			return validationf("cannot guess own card")
		}
		if used[cardID] {
			return validationf("duplicate card use")
		}
		used[cardID] = true
	}

	stored := make(map[int]int, len(guesses))
	for k, v := range guesses {
		stored[k] = v
	}
	p.Guesses = stored

	if g.everyGuessSubmitted() {
		g.phase = PhaseScore
	}
	return nil
}

func (g *Game) everyGuessSubmitted() bool {
	for _, p := range g.players {
		if p.Guesses == nil {
			return false
		}
	}
	return true
}

// Guesses returns a copy of the player's stored guess set, empty if none
// yet. Reading is only allowed while the whole game is still in
// assign-words.
func (g *Game) Guesses(playerToken string) (map[int]int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.playerByToken(playerToken)
	if !ok {
		return nil, errPlayerNotFound
	}
	if !g.allowed(actionReadGuesses) {
		return nil, forbiddenf("wrong game phase")
	}

	out := make(map[int]int, len(p.Guesses))
	for k, v := range p.Guesses {
		out[k] = v
	}
	return out, nil
}

// MarkScored reveals the card under the reveal cursor. Only that card's
// owner may call it. Scores are applied immediately: every correct guesser
// gains a correct-guess point, and the owner gains one own-word point per
// correct guesser. Revealing the last real card closes the round.
func (g *Game) MarkScored(playerToken string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.playerByToken(playerToken)
	if !ok {
		return errPlayerNotFound
	}
	if !g.allowed(actionMarkScored) {
		return forbiddenf("wrong game phase")
	}
	card := g.currentCard()
	if card.OwnerID != p.ID {
		return forbiddenf("not your turn")
	}

	card.Revealed = true
	correct := 0
	for _, q := range g.players {
		if q == p {
			continue
		}
		if q.Guesses[p.ID] == card.ID {
			q.ScoreCorrectGuesses++
			correct++
		}
	}
	card.Score = correct
	p.ScoreOwnWords += correct

	g.revealed++
	if g.revealed == len(g.revealOrder) {
		g.endRound()
	}
	return nil
}

// currentCard returns the card under the reveal cursor. Only meaningful
// during the score phase.
func (g *Game) currentCard() *Card {
	return g.cardByID(g.revealOrder[g.revealed])
}

// endRound resets all per-round state and cycles back to wait-for-ready.
// Score counters are cumulative and survive.
func (g *Game) endRound() {
	g.round++
	for _, p := range g.players {
		p.Ready = false
		p.Letters = ""
		p.Word = ""
		p.Prompt = nil
		p.Guesses = nil
	}
	g.cards = nil
	g.revealOrder = nil
	g.revealed = 0
	g.phase = PhaseWaitForReady
}

// ----------------------------- lookups -------------------------------------

func (g *Game) playerByToken(token string) (*Player, bool) {
	for _, p := range g.players {
		if p.Token == token {
			return p, true
		}
	}
	return nil, false
}

func (g *Game) playerByID(id int) (*Player, bool) {
	if id < 0 || id >= len(g.players) {
		return nil, false
	}
	return g.players[id], true
}

func (g *Game) cardByID(id int) *Card {
	for _, c := range g.cards {
		if c.ID == id {
			return c
		}
	}
	return nil
}
