// Package bot simulates the opponent typist.
package bot

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/neurotype/internal/model"
)

const (
	minVariance   = 5.0
	varianceRange = 10.0
)

// Rand is the random source used by Bot. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Bot picks opponent speeds relative to the player's average.
type Bot struct {
	rnd Rand
}

// New returns a Bot seeded with the current time.
func New() *Bot {
	return &Bot{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewWithRand returns a Bot drawing from rnd.
func NewWithRand(rnd Rand) *Bot {
	return &Bot{rnd: rnd}
}

// Speed returns the bot WPM for a race. With the adaptive difficulty the bot
// lands 5-15 WPM above or below playerAverageWPM with equal probability.
// Any other difficulty returns playerAverageWPM unchanged.
func (b *Bot) Speed(playerAverageWPM float64, difficulty model.Difficulty) float64 {
	variance := b.rnd.Float64()*varianceRange + minVariance
	if difficulty != model.DifficultyAdaptive {
		return playerAverageWPM
	}
	if b.rnd.Float64() > 0.5 {
		return playerAverageWPM + variance
	}
	return playerAverageWPM - variance
}
