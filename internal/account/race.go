package account

import (
	"context"

	"github.com/verte-zerg/neurotype/internal/generator"
	"github.com/verte-zerg/neurotype/internal/model"
	"github.com/verte-zerg/neurotype/internal/stats"
)

// RaceOutcome is the result of recording a race.
type RaceOutcome struct {
	Won   bool
	Stats model.Stats
}

// BotSpeed returns the opponent WPM for playerAverageWPM at difficulty.
func (m *Manager) BotSpeed(playerAverageWPM float64, difficulty model.Difficulty) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bot.Speed(playerAverageWPM, difficulty)
}

// RacePrompt builds a race prompt from words.
func (m *Manager) RacePrompt(words []string, opts generator.PromptOptions) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen.RacePrompt(words, opts)
}

// RecordRaceResult appends a race to the active account and updates its stats.
// A tie counts as a loss.
func (m *Manager) RecordRaceResult(ctx context.Context, playerWPM, botWPM, accuracy float64, promptLength int) (RaceOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	username, ok := m.session.username()
	if !ok {
		return RaceOutcome{}, ErrNotLoggedIn
	}
	won := playerWPM > botWPM
	acc, err := m.loadAccount(ctx, username)
	if err != nil {
		return RaceOutcome{}, err
	}

	s := &acc.Stats
	s.Races = append(s.Races, model.RaceRecord{
		ID:           m.newID(),
		Date:         m.now().UTC(),
		PlayerWPM:    playerWPM,
		BotWPM:       botWPM,
		Won:          won,
		Accuracy:     accuracy,
		PromptLength: promptLength,
	})
	s.TotalRaces++
	if won {
		s.Wins++
	} else {
		s.Losses++
	}
	if playerWPM > s.BestWPM {
		s.BestWPM = playerWPM
	}
	s.AverageWPM = stats.AverageWPM(s.Races)

	if err := m.saveAccount(ctx, acc); err != nil {
		return RaceOutcome{}, err
	}
	m.session.set(acc)
	return RaceOutcome{Won: won, Stats: acc.Stats.Clone()}, nil
}

// UserStats returns the active account's stats.
func (m *Manager) UserStats() (model.Stats, bool) {
	acc, ok := m.session.Current()
	if !ok {
		return model.Stats{}, false
	}
	return acc.Stats, true
}
