// Package model defines shared data structures.
package model

import "time"

// Difficulty selects the bot policy for a race.
type Difficulty string

// DifficultyAdaptive tracks the player's average speed.
const DifficultyAdaptive Difficulty = "adaptive"

// Account is the persisted user record.
type Account struct {
	Username          string    `json:"username"`
	Password          string    `json:"password"`
	CreatedAt         time.Time `json:"createdAt"`
	PlacementComplete bool      `json:"placementComplete"`
	BaselineWPM       float64   `json:"baselineWPM"`
	Stats             Stats     `json:"stats"`
}

// Stats aggregates the races of a single account.
type Stats struct {
	AverageWPM float64      `json:"averageWPM"`
	BestWPM    float64      `json:"bestWPM"`
	Wins       int          `json:"wins"`
	Losses     int          `json:"losses"`
	TotalRaces int          `json:"totalRaces"`
	Races      []RaceRecord `json:"races"`
}

// RaceRecord captures a finished race against the bot.
type RaceRecord struct {
	ID           string    `json:"id,omitempty"`
	Date         time.Time `json:"date"`
	PlayerWPM    float64   `json:"playerWPM"`
	BotWPM       float64   `json:"botWPM"`
	Won          bool      `json:"won"`
	Accuracy     float64   `json:"accuracy"`
	PromptLength int       `json:"promptLength"`
}

// Clone returns a deep copy so callers cannot alias the race history.
func (a Account) Clone() Account {
	a.Stats = a.Stats.Clone()
	return a
}

// Clone returns a copy of the stats with its own race slice.
func (s Stats) Clone() Stats {
	races := make([]RaceRecord, len(s.Races))
	copy(races, s.Races)
	s.Races = races
	return s
}

// Config defines application settings resolved from flags and the config file.
type Config struct {
	StoreBackend  string
	StorePath     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	Difficulty    Difficulty
	RaceWords     int
	HashPasswords bool
}

