package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewLobby(t *testing.T) {
	g := newLobby(t, 2)
	require.NoError(t, g.Ready(g.players[0].Token))

	v, err := g.View(g.players[0].Token)
	require.NoError(t, err)

	assert.Equal(t, 1, v.Round)
	assert.Equal(t, PhaseWaitForReady, v.Phase)
	assert.Empty(t, v.Cards)
	assert.Nil(t, v.CurrentlyScored)
	assert.Nil(t, v.Self.Card)
	assert.True(t, v.Self.IsReady)
	assert.Equal(t, []int{0, 1}, v.ScoreboardOrder)

	require.Len(t, v.Players, 2)
	assert.True(t, v.Players[0].IsSelf)
	assert.False(t, v.Players[1].IsSelf)
	assert.True(t, v.Players[0].IsReady)
	assert.False(t, v.Players[1].IsReady)
}

func TestViewSelfCardAfterDeal(t *testing.T) {
	g := newStartedGame(t)
	p := g.players[1]

	v, err := g.View(p.Token)
	require.NoError(t, err)

	require.NotNil(t, v.Self.Card)
	assert.Equal(t, p.Prompt.ID, v.Self.Card.ID)
	assert.True(t, v.Self.Card.IsSelf)
	require.NotNil(t, v.Self.Card.PlayerID)
	assert.Equal(t, p.ID, *v.Self.Card.PlayerID)
	assert.Nil(t, v.Self.Card.Score)
	assert.Equal(t, p.Letters, v.Self.Letters)
}

func TestViewCardRedaction(t *testing.T) {
	g := newStartedGame(t)
	submitAllWords(t, g)
	p := g.players[0]

	v, err := g.View(p.Token)
	require.NoError(t, err)
	require.Len(t, v.Cards, 6)

	selfCards := 0
	for _, c := range v.Cards {
		assert.Nil(t, c.Score, "no score may leak before reveal")
		if c.IsSelf {
			selfCards++
			require.NotNil(t, c.PlayerID)
			assert.Equal(t, p.ID, *c.PlayerID)
		} else {
			assert.Nil(t, c.PlayerID, "only the viewer's own card carries an owner")
		}
	}
	assert.Equal(t, 1, selfCards)
}

func TestViewRevealedCard(t *testing.T) {
	g := newStartedGame(t)
	submitAllWords(t, g)
	submitAllGuesses(t, g)

	// Reveal the first card, then look at the board as somebody else.
	first := g.currentCard()
	owner, ok := g.playerByID(first.OwnerID)
	require.True(t, ok)
	require.NoError(t, g.MarkScored(owner.Token))

	var other *Player
	for _, p := range g.players {
		if p != owner {
			other = p
			break
		}
	}
	v, err := g.View(other.Token)
	require.NoError(t, err)

	for _, c := range v.Cards {
		if c.ID != first.ID {
			continue
		}
		require.NotNil(t, c.PlayerID)
		assert.Equal(t, owner.ID, *c.PlayerID)
		require.NotNil(t, c.Score)
		assert.Equal(t, first.Score, *c.Score)
	}
}

func TestViewAllWordsAssignedFlag(t *testing.T) {
	g := newStartedGame(t)
	submitAllWords(t, g)

	p := g.players[0]
	require.NoError(t, g.SubmitGuesses(p.Token, legalGuesses(g, p)))

	v, err := g.View(g.players[1].Token)
	require.NoError(t, err)
	for _, pv := range v.Players {
		assert.Equal(t, pv.ID == p.ID, pv.AllWordsAssigned)
	}
}

func TestViewCurrentlyScoredOnlyDuringScorePhase(t *testing.T) {
	g := newStartedGame(t)
	submitAllWords(t, g)

	v, err := g.View(g.players[0].Token)
	require.NoError(t, err)
	assert.Nil(t, v.CurrentlyScored)

	submitAllGuesses(t, g)

	owner, ok := g.playerByID(g.currentCard().OwnerID)
	require.True(t, ok)

	v, err = g.View(g.players[0].Token)
	require.NoError(t, err)
	require.NotNil(t, v.CurrentlyScored)
	assert.Equal(t, owner.ID, v.CurrentlyScored.PlayerID)
	assert.Equal(t, owner.Word, v.CurrentlyScored.Word)
	assert.Len(t, v.CurrentlyScored.Guesses, 2)
	for _, p := range g.players {
		if p == owner {
			continue
		}
		assert.Equal(t, p.Guesses[owner.ID], v.CurrentlyScored.Guesses[p.ID])
	}

	finishRound(t, g)
	v, err = g.View(g.players[0].Token)
	require.NoError(t, err)
	assert.Nil(t, v.CurrentlyScored)
}

func TestScoreboardRowsFollowRankOrder(t *testing.T) {
	g := newLobby(t, 3)
	g.players[1].ScoreOwnWords = 2
	g.players[1].ScoreCorrectGuesses = 1
	g.players[2].ScoreCorrectGuesses = 1

	rows := g.Scoreboard()
	require.Len(t, rows, 3)

	assert.Equal(t, ScoreboardRow{
		Name: "Player 2", ScoreTotal: 3, ScoreOwnWords: 2, ScoreCorrectGuesses: 1,
	}, rows[0])
	assert.Equal(t, ScoreboardRow{
		Name: "Player 3", ScoreTotal: 1, ScoreCorrectGuesses: 1,
	}, rows[1])
	assert.Equal(t, ScoreboardRow{Name: "Player 1"}, rows[2])
}

func TestScoreboardOrderRanksAndBreaksTies(t *testing.T) {
	g := newLobby(t, 4)
	g.players[0].ScoreOwnWords = 1
	g.players[0].ScoreCorrectGuesses = 1
	g.players[1].ScoreOwnWords = 2
	g.players[2].ScoreOwnWords = 0
	g.players[2].ScoreCorrectGuesses = 2
	// player 3 stays at zero

	// Totals: p0=2, p1=2, p2=2, p3=0. Own-word counter breaks the first tie,
	// the correct-guess counter the second, join order the last.
	assert.Equal(t, []int{1, 0, 2, 3}, g.scoreboardOrder())
}
