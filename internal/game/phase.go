// internal/game/phase.go
//
// The round state machine. Phases advance strictly in order and cycle back
// to wait-for-ready once a round's scoring completes. Action legality is
// looked up in an explicit per-phase table rather than inferred from field
// state.

package game

// Phase is the current stage of a round.
type Phase string

const (
	PhaseWaitForReady Phase = "wait-for-ready"
	PhaseSubmitWord   Phase = "submit-word"
	PhaseAssignWords  Phase = "assign-words"
	PhaseScore        Phase = "score"
)

// action enumerates the player-facing operations gated by phase.
type action int

const (
	actionJoin action = iota
	actionReady
	actionSubmitWord
	actionSubmitGuesses
	actionReadGuesses
	actionMarkScored
)

// allowedActions is the per-phase legality table. Anything absent here is
// rejected with a forbidden error.
var allowedActions = map[Phase]map[action]bool{
	PhaseWaitForReady: {actionJoin: true, actionReady: true},
	PhaseSubmitWord:   {actionSubmitWord: true},
	PhaseAssignWords:  {actionSubmitGuesses: true, actionReadGuesses: true},
	PhaseScore:        {actionMarkScored: true},
}

func (g *Game) allowed(a action) bool {
	return allowedActions[g.phase][a]
}
