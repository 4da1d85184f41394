// internal/supply/supply.go
//
// Prompt-card management for the game engine.
//
// Responsibilities:
//   - Load prompt texts from an environment-provided file or fall back to
//     the embedded default list.
//   - Hand out random prompts and letter hands through the Dealer type,
//     which satisfies the engine's Supply interface.
//
// Initialization behavior (Init):
//   1. If PROMPTS_FILE is set, load one prompt per line from that file.
//   2. Otherwise use the embedded default_prompts.txt.
//
// Environment variables:
//   PROMPTS_FILE=/path/to/prompts.txt
//
// Constraints:
//   • Prompts shorter than 5 characters are dropped.
//   • Initialization is run once (sync.Once).

package supply

import (
	"bufio"
	"crypto/rand"
	_ "embed"
	"errors"
	"math/big"
	"os"
	"strings"
	"sync"
	"unicode/utf8"
)

//go:embed default_prompts.txt
var embeddedPrompts string

var (
	initOnce   sync.Once
	prompts    []string
	initialErr error
)

// Init loads the prompt list exactly once.
// Returns an error if the list ends up empty.
func Init() error {
	initOnce.Do(func() {
		if path := os.Getenv("PROMPTS_FILE"); path != "" {
			var err error
			prompts, err = readPromptFile(path)
			if err != nil {
				initialErr = err
				return
			}
		} else {
			prompts = normalizeLines(embeddedPrompts)
		}
		if len(prompts) == 0 {
			initialErr = errors.New("supply: prompt list is empty")
		}
	})
	return initialErr
}

// readPromptFile loads one prompt per line, trimmed, keeping only prompts
// longer than 4 characters.
func readPromptFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		p := strings.TrimSpace(sc.Text())
		if utf8.RuneCountInString(p) > 4 {
			out = append(out, p)
		}
	}
	return out, sc.Err()
}

// normalizeLines processes the embedded multiline string into a slice of
// usable prompts.
func normalizeLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		p := strings.TrimSpace(line)
		if utf8.RuneCountInString(p) > 4 {
			out = append(out, p)
		}
	}
	return out
}

// Stats returns the number of loaded prompts.
func Stats() int { return len(prompts) }

// Dealer is the production supply. It counts how often each prompt has been
// dealt across all games and prefers the least-used ones, so concurrent
// games see varied material. It satisfies the engine's Supply interface.
type Dealer struct {
	mu   sync.Mutex
	uses map[string]int
}

// NewDealer returns a Dealer, or an error if Init has not loaded any
// prompts yet.
func NewDealer() (*Dealer, error) {
	if len(prompts) == 0 {
		return nil, errors.New("supply: no prompts loaded, call Init first")
	}
	return &Dealer{uses: make(map[string]int)}, nil
}

// DrawHand returns a fresh 12-rune letter hand.
func (*Dealer) DrawHand() string { return Hand() }

// DrawPrompt returns a random prompt among the least-used ones not already
// dealt in the calling game. A game that exhausts the whole list relaxes the
// constraint and receives the least-used prompt overall.
func (d *Dealer) DrawPrompt(used map[string]bool) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	pick := d.leastUsed(func(p string) bool { return !used[p] })
	if pick == "" {
		pick = d.leastUsed(func(string) bool { return true })
	}
	d.uses[pick]++
	return pick
}

// leastUsed picks uniformly among the candidates with the lowest deal count,
// or returns "" if keep admits none.
func (d *Dealer) leastUsed(keep func(string) bool) string {
	best := -1
	var candidates []string
	for _, p := range prompts {
		if !keep(p) {
			continue
		}
		switch n := d.uses[p]; {
		case best == -1 || n < best:
			best = n
			candidates = append(candidates[:0], p)
		case n == best:
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(candidates))))
	return candidates[nBig.Int64()]
}
