// internal/game/errors.go
//
// Typed errors for the game engine. Every failure is classified so the HTTP
// layer can map it to a status code without string matching:
//   - KindValidation: malformed or semantically invalid input.
//   - KindForbidden:  structurally valid request that the current game state
//     disallows (wrong phase, not your turn, already done).
//   - KindNotFound:   unknown game or player token.

package game

import (
	"errors"
	"fmt"
)

// Kind classifies an engine error.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindForbidden
	KindNotFound
)

// Error is the error type returned by all engine operations.
type Error struct {
	Kind Kind
	Msg  string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Msg }

// KindOf returns the classification of err, or 0 for non-engine errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func forbiddenf(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

var errPlayerNotFound = &Error{Kind: KindNotFound, Msg: "invalid player_token"}
