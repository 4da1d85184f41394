package sse

// Event names published after successful game mutations.
const (
	EventPlayers    = "players"
	EventBoard      = "board"
	EventScoreboard = "scoreboard"
)
