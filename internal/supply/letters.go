// internal/supply/letters.go
//
// Letter-hand drawing. A hand is 12 runes: 4 vowels, 6 consonants, and 2
// non-breaking spaces, shuffled, with no letter appearing more than twice.

package supply

import "math/rand"

var (
	// Vowels are weighted by duplication; Y plays as a vowel here.
	vowels     = []rune("AAEEIIOOUUÄÖÜY")
	consonants = []rune("BCDFGHJKLMNPQRSTVWXZ")
)

const (
	handVowels     = 4
	handConsonants = 6
	handSpaces     = 2

	// HandSize is the total rune count of a dealt hand.
	HandSize = handVowels + handConsonants + handSpaces
)

// nbsp pads every hand so short words stay possible without revealing
// their length through missing tiles.
const nbsp = '\u00a0'

// Hand draws a fresh random letter hand.
func Hand() string {
	runes := make([]rune, 0, HandSize)
	runes = drawFrom(runes, vowels, handVowels)
	runes = drawFrom(runes, consonants, handConsonants)
	for i := 0; i < handSpaces; i++ {
		runes = append(runes, nbsp)
	}
	rand.Shuffle(len(runes), func(i, j int) {
		runes[i], runes[j] = runes[j], runes[i]
	})
	return string(runes)
}

// drawFrom appends n letters from pool, never using one letter more than
// twice per hand.
func drawFrom(runes []rune, pool []rune, n int) []rune {
	for drawn := 0; drawn < n; {
		l := pool[rand.Intn(len(pool))]
		if count(runes, l) >= 2 {
			continue
		}
		runes = append(runes, l)
		drawn++
	}
	return runes
}

func count(runes []rune, l rune) int {
	c := 0
	for _, m := range runes {
		if m == l {
			c++
		}
	}
	return c
}
