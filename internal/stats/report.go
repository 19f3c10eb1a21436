package stats

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/verte-zerg/neurotype/internal/model"
)

const (
	terminalWidthBackup = 80
	minTrendWidth       = 10
	trendLabel          = "WPM trend "
)

// TerminalWidth returns the stdout terminal width, or 80 when unknown.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderSummary prints account-level stats.
func RenderSummary(w io.Writer, acc model.Account) error {
	s := acc.Stats
	lines := []string{
		fmt.Sprintf("Player: %s", acc.Username),
	}
	if acc.PlacementComplete {
		lines = append(lines, fmt.Sprintf("Baseline WPM: %.0f", acc.BaselineWPM))
	} else {
		lines = append(lines, "Baseline WPM: placement not completed")
	}
	lines = append(lines,
		fmt.Sprintf("Races: %d", s.TotalRaces),
		fmt.Sprintf("Wins: %d", s.Wins),
		fmt.Sprintf("Losses: %d", s.Losses),
		fmt.Sprintf("Win rate: %.1f%%", WinRate(s)*100),
		fmt.Sprintf("Avg WPM: %.0f", s.AverageWPM),
		fmt.Sprintf("Best WPM: %.0f", s.BestWPM),
		"",
	)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderRaces prints the last races as a table, oldest first. last <= 0 prints all.
func RenderRaces(w io.Writer, races []model.RaceRecord, last int) error {
	if len(races) == 0 {
		_, err := fmt.Fprintln(w, "No races found.")
		return err
	}
	if last > 0 && len(races) > last {
		races = races[len(races)-last:]
	}
	headers := []string{"Date", "Player", "Bot", "Result", "Accuracy", "Length"}
	rows := make([][]string, 0, len(races))
	for _, r := range races {
		result := "loss"
		if r.Won {
			result = "win"
		}
		rows = append(rows, []string{
			r.Date.Local().Format(time.DateTime),
			fmt.Sprintf("%.0f", r.PlayerWPM),
			fmt.Sprintf("%.0f", r.BotWPM),
			result,
			fmt.Sprintf("%.1f%%", r.Accuracy*100),
			fmt.Sprintf("%d", r.PromptLength),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTrend prints a moving-average sparkline of player WPM fitted to totalWidth.
func RenderTrend(w io.Writer, races []model.RaceRecord, window, totalWidth int) error {
	if len(races) == 0 {
		return nil
	}
	values := make([]float64, len(races))
	for i, r := range races {
		values[i] = r.PlayerWPM
	}
	values = MovingAverage(values, window)
	width := max(totalWidth-len(trendLabel), minTrendWidth)
	if len(values) > width {
		values = values[len(values)-width:]
	}
	_, err := fmt.Fprintf(w, "%s%s\n", trendLabel, Sparkline(values))
	return err
}
