// Package stats contains race scoring, aggregation and reporting.
package stats

import (
	"errors"
	"math"
	"strings"

	"github.com/verte-zerg/neurotype/internal/model"
)

const (
	charsPerWord = 5.0
	sparkChars   = " .:-=+*#%@"
)

// ErrInvalidDuration is returned when WPM is requested for a non-positive duration.
var ErrInvalidDuration = errors.New("duration must be greater than zero")

// CalculateWPM returns round((characters/5) / (seconds/60)).
func CalculateWPM(characters int, timeInSeconds float64) (int, error) {
	if timeInSeconds <= 0 || math.IsNaN(timeInSeconds) || math.IsInf(timeInSeconds, 0) {
		return 0, ErrInvalidDuration
	}
	minutes := timeInSeconds / 60.0
	words := float64(characters) / charsPerWord
	return int(math.Round(words / minutes)), nil
}

// AverageWPM returns the rounded mean player WPM, or 0 without races.
func AverageWPM(races []model.RaceRecord) float64 {
	if len(races) == 0 {
		return 0
	}
	var total float64
	for _, r := range races {
		total += r.PlayerWPM
	}
	return math.Round(total / float64(len(races)))
}

// BestWPM returns the highest player WPM, or 0 without races.
func BestWPM(races []model.RaceRecord) float64 {
	best := 0.0
	for _, r := range races {
		if r.PlayerWPM > best {
			best = r.PlayerWPM
		}
	}
	return best
}

// Recompute rebuilds every aggregate field from the race history.
func Recompute(races []model.RaceRecord) model.Stats {
	s := model.Stats{Races: races}
	for _, r := range races {
		if r.Won {
			s.Wins++
		} else {
			s.Losses++
		}
	}
	s.TotalRaces = len(races)
	s.BestWPM = BestWPM(races)
	s.AverageWPM = AverageWPM(races)
	return s
}

// Consistent reports whether the aggregates agree with the race history.
func Consistent(s model.Stats) bool {
	want := Recompute(s.Races)
	return s.TotalRaces == want.TotalRaces &&
		s.Wins == want.Wins &&
		s.Losses == want.Losses &&
		s.BestWPM == want.BestWPM &&
		s.AverageWPM == want.AverageWPM
}

// WinRate returns wins/totalRaces in [0,1].
func WinRate(s model.Stats) float64 {
	if s.TotalRaces == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.TotalRaces)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
