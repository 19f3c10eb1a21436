// Package generator builds typing prompts.
package generator

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

var placementPrompts = []string{
	"The quick brown fox jumps over the lazy dog",
	"NeuroType helps you improve your typing speed",
	"Practice makes perfect in competitive typing",
	"Speed and accuracy are keys to victory",
	"Challenge yourself and beat the bot",
	"Every keystroke brings you closer to victory",
	"Master the keyboard and dominate the races",
	"Your fingers will fly across the keyboard",
	"Typing races push you to your limits",
	"Become a typing champion today",
}

// Rand is the random source used by Generator. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Generator produces randomized typing prompts.
type Generator struct {
	rnd Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithRand returns a Generator drawing from rnd.
func NewWithRand(rnd Rand) *Generator {
	return &Generator{rnd: rnd}
}

// PlacementPrompts returns a copy of the fixed placement sentences.
func PlacementPrompts() []string {
	return append([]string(nil), placementPrompts...)
}

// PlacementPrompt picks one of the placement sentences uniformly.
func (g *Generator) PlacementPrompt() string {
	return placementPrompts[g.rnd.Intn(len(placementPrompts))]
}

// PromptOptions controls word-list race prompts.
type PromptOptions struct {
	Words    int
	CapsPct  float64
	PunctPct float64
	PunctSet []rune
}

// RacePrompt joins words selected uniformly from the list, applying caps/punctuation rules.
func (g *Generator) RacePrompt(words []string, opts PromptOptions) string {
	return strings.Join(g.Generate(words, opts.Words, opts.CapsPct, opts.PunctPct, opts.PunctSet), " ")
}

// Generate selects words uniformly and applies caps/punctuation rules.
func (g *Generator) Generate(words []string, count int, capsPct, punctPct float64, punctSet []rune) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		word := words[g.rnd.Intn(len(words))]
		word = applyCaps(g.rnd, word, capsPct)
		word = applyPunct(g.rnd, word, punctPct, punctSet)
		result = append(result, word)
	}
	return result
}

// FallbackWords splits the placement sentences into lowercase words.
func FallbackWords() []string {
	seen := map[string]struct{}{}
	var words []string
	for _, p := range placementPrompts {
		for _, w := range strings.Fields(strings.ToLower(p)) {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			words = append(words, w)
		}
	}
	return words
}

func applyCaps(rnd Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}
