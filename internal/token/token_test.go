package token

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var tokenRE = regexp.MustCompile(`^[a-z0-9]{12}$`)

func TestNewShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Regexp(t, tokenRE, New())
	}
}

func TestNewDoesNotRepeat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok := New()
		assert.False(t, seen[tok], "token %q repeated", tok)
		seen[tok] = true
	}
}
