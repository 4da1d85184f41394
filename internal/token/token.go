// internal/token/token.go
//
// Opaque identifiers for games and players. Tokens are 12 characters drawn
// from [a-z0-9] with crypto/rand entropy; they double as bearer secrets, so
// they are never derived from game state.

package token

import "crypto/rand"

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	length   = 12
)

// New returns a fresh random token matching ^[a-z0-9]{12}$.
// Collisions are the caller's concern (the registry retries on clash).
func New() string {
	var b [length]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("token: rand.Read failed: " + err.Error())
	}
	for i, c := range b {
		b[i] = alphabet[int(c)%len(alphabet)]
	}
	return string(b[:])
}
