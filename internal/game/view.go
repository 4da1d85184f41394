// internal/game/view.go
//
// Per-viewer projection of a game session. View never mutates state: it is
// computed fresh per request under the session lock, and all identity and
// visibility redaction ("is_self", hidden card owners, unrevealed scores)
// lives here.

package game

import "sort"

// BoardView is the full JSON payload returned to a polling player.
type BoardView struct {
	Players         []PlayerView `json:"players"`
	Self            SelfView     `json:"self"`
	Round           int          `json:"round"`
	Phase           Phase        `json:"phase"`
	Cards           []CardView   `json:"cards"`
	CurrentlyScored *ScoredView  `json:"currently_scored,omitempty"`
	ScoreboardOrder []int        `json:"scoreboard_order"`
}

// CardView is one deck entry as a particular viewer sees it. PlayerID and
// Score stay null until the viewer is entitled to them.
type CardView struct {
	ID       int    `json:"id"`
	IsSelf   bool   `json:"is_self"`
	Text     string `json:"text"`
	PlayerID *int   `json:"player_id"`
	Score    *int   `json:"score"`
}

type PlayerView struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	IsReady             bool   `json:"is_ready"`
	IsSelf              bool   `json:"is_self"`
	Letters             string `json:"letters"`
	Word                string `json:"word"`
	ScoreTotal          int    `json:"score_total"`
	ScoreOwnWords       int    `json:"score_own_words"`
	ScoreCorrectGuesses int    `json:"score_correct_guesses"`
	AllWordsAssigned    bool   `json:"all_words_assigned"`
}

// SelfView repeats the viewer's own private state, including the prompt
// card dealt for the round (null before dealing).
type SelfView struct {
	Card    *CardView `json:"card"`
	Letters string    `json:"letters"`
	IsReady bool      `json:"is_ready"`
	Word    string    `json:"word"`
}

// ScoredView describes the card under the reveal cursor: the owner's actual
// word and what every other player guessed for that owner.
type ScoredView struct {
	PlayerID int         `json:"player_id"`
	Word     string      `json:"word"`
	Guesses  map[int]int `json:"guesses"`
}

// View renders the board from the perspective of the player owning
// playerToken.
func (g *Game) View(playerToken string) (BoardView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	viewer, ok := g.playerByToken(playerToken)
	if !ok {
		return BoardView{}, errPlayerNotFound
	}

	v := BoardView{
		Round:           g.round,
		Phase:           g.phase,
		Players:         make([]PlayerView, 0, len(g.players)),
		Cards:           make([]CardView, 0, len(g.cards)),
		ScoreboardOrder: g.scoreboardOrder(),
	}

	v.Self = SelfView{
		Letters: viewer.Letters,
		IsReady: viewer.Ready,
		Word:    viewer.Word,
	}
	if viewer.Prompt != nil {
		c := projectCard(viewer.Prompt, viewer)
		v.Self.Card = &c
	}

	for _, p := range g.players {
		v.Players = append(v.Players, PlayerView{
			ID:                  p.ID,
			Name:                p.Name,
			IsReady:             p.Ready,
			IsSelf:              p == viewer,
			Letters:             p.Letters,
			Word:                p.Word,
			ScoreTotal:          p.ScoreTotal(),
			ScoreOwnWords:       p.ScoreOwnWords,
			ScoreCorrectGuesses: p.ScoreCorrectGuesses,
			AllWordsAssigned:    p.Guesses != nil,
		})
	}

	for _, c := range g.cards {
		v.Cards = append(v.Cards, projectCard(c, viewer))
	}

	if g.phase == PhaseScore {
		card := g.currentCard()
		owner, _ := g.playerByID(card.OwnerID)
		sv := &ScoredView{
			PlayerID: owner.ID,
			Word:     owner.Word,
			Guesses:  make(map[int]int, len(g.players)-1),
		}
		for _, p := range g.players {
			if p == owner {
				continue
			}
			sv.Guesses[p.ID] = p.Guesses[owner.ID]
		}
		v.CurrentlyScored = sv
	}

	return v, nil
}

// projectCard redacts a card for one viewer: ownership is visible only on
// the viewer's own card or once revealed, the score only once revealed.
func projectCard(c *Card, viewer *Player) CardView {
	cv := CardView{
		ID:     c.ID,
		IsSelf: c == viewer.Prompt,
		Text:   c.Text,
	}
	if !c.Decoy && (cv.IsSelf || c.Revealed) {
		owner := c.OwnerID
		cv.PlayerID = &owner
	}
	if c.Revealed {
		score := c.Score
		cv.Score = &score
	}
	return cv
}

// ScoreboardRow is one ranked standings entry.
type ScoreboardRow struct {
	Name                string `json:"name"`
	ScoreTotal          int    `json:"score_total"`
	ScoreOwnWords       int    `json:"score_own_words"`
	ScoreCorrectGuesses int    `json:"score_correct_guesses"`
}

// Scoreboard returns the standings in rank order. Unlike View it carries no
// per-viewer state, so any holder of the game token may read it.
func (g *Game) Scoreboard() []ScoreboardRow {
	g.mu.Lock()
	defer g.mu.Unlock()

	rows := make([]ScoreboardRow, 0, len(g.players))
	for _, id := range g.scoreboardOrder() {
		p := g.players[id]
		rows = append(rows, ScoreboardRow{
			Name:                p.Name,
			ScoreTotal:          p.ScoreTotal(),
			ScoreOwnWords:       p.ScoreOwnWords,
			ScoreCorrectGuesses: p.ScoreCorrectGuesses,
		})
	}
	return rows
}

// scoreboardOrder ranks player ids by total score, then the own-word and
// correct-guess counters, with join order as the final deterministic tie
// break.
func (g *Game) scoreboardOrder() []int {
	ranked := append([]*Player(nil), g.players...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.ScoreTotal() != b.ScoreTotal() {
			return a.ScoreTotal() > b.ScoreTotal()
		}
		if a.ScoreOwnWords != b.ScoreOwnWords {
			return a.ScoreOwnWords > b.ScoreOwnWords
		}
		if a.ScoreCorrectGuesses != b.ScoreCorrectGuesses {
			return a.ScoreCorrectGuesses > b.ScoreCorrectGuesses
		}
		return a.ID < b.ID
	})

	order := make([]int, len(ranked))
	for i, p := range ranked {
		order[i] = p.ID
	}
	return order
}
