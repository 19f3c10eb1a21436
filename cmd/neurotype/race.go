package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/neurotype/internal/account"
	"github.com/verte-zerg/neurotype/internal/config"
	"github.com/verte-zerg/neurotype/internal/generator"
	"github.com/verte-zerg/neurotype/internal/model"
	"github.com/verte-zerg/neurotype/internal/stats"
	"github.com/verte-zerg/neurotype/internal/wordlist"
)

const defaultPunctSet = ".,!?;:"

var (
	speedWPM     float64
	speedChars   int
	speedSeconds float64

	raceBotWPM   float64
	raceAccuracy float64
	raceLength   int

	promptWords    int
	promptLang     string
	promptWordlist string
	promptCaps     float64
	promptPunct    float64

	botAverage    float64
	botDifficulty string

	statsLast   int
	statsWindow int
)

func addSpeedFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&speedWPM, "wpm", 0, "typing speed in WPM")
	cmd.Flags().IntVar(&speedChars, "chars", 0, "characters typed (with --seconds, instead of --wpm)")
	cmd.Flags().Float64Var(&speedSeconds, "seconds", 0, "time taken in seconds")
	cmd.MarkFlagsMutuallyExclusive("wpm", "chars")
	cmd.MarkFlagsRequiredTogether("chars", "seconds")
	cmd.MarkFlagsOneRequired("wpm", "chars")
}

func resolveSpeed(cmd *cobra.Command) (float64, error) {
	if cmd.Flags().Changed("wpm") {
		if speedWPM < 0 {
			return 0, fmt.Errorf("--wpm must be >= 0")
		}
		return speedWPM, nil
	}
	wpm, err := stats.CalculateWPM(speedChars, speedSeconds)
	if err != nil {
		return 0, fmt.Errorf("--seconds: %w", err)
	}
	return float64(wpm), nil
}

func newPlacementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "placement",
		Short: "Placement match to set your baseline speed",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "prompt",
		Short: "Print a placement sentence",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.manager.GeneratePlacementPrompt())
			return err
		}),
	})
	complete := &cobra.Command{
		Use:   "complete",
		Short: "Record your placement speed",
		Args:  cobra.NoArgs,
		RunE:  withApp(runPlacementCompleteCmd),
	}
	addSpeedFlags(complete)
	cmd.AddCommand(complete)
	return cmd
}

func runPlacementCompleteCmd(cmd *cobra.Command, _ []string, a *app) error {
	wpm, err := resolveSpeed(cmd)
	if err != nil {
		return err
	}
	if err := a.manager.CompletePlacement(cmd.Context(), wpm); err != nil {
		return describeError(err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Placement complete. Baseline %.0f WPM.\n", wpm)
	return err
}

func newRaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "race",
		Short: "Race the bot",
	}

	prompt := &cobra.Command{
		Use:   "prompt",
		Short: "Print a race prompt",
		Args:  cobra.NoArgs,
		RunE:  withApp(runRacePromptCmd),
	}
	prompt.Flags().IntVar(&promptWords, "words", defaultRaceWords, "words per prompt")
	prompt.Flags().StringVar(&promptLang, "lang", defaultLang, "word list language")
	prompt.Flags().StringVar(&promptWordlist, "wordlist", "", "word list path (default: config dir)")
	prompt.Flags().Float64Var(&promptCaps, "caps", 0, "probability of capitalized first letter (0-1)")
	prompt.Flags().Float64Var(&promptPunct, "punct", 0, "punctuation probability per word (0-1)")
	cmd.AddCommand(prompt)

	botCmd := &cobra.Command{
		Use:   "bot",
		Short: "Pick the bot speed for your next race",
		Args:  cobra.NoArgs,
		RunE:  withApp(runRaceBotCmd),
	}
	botCmd.Flags().Float64Var(&botAverage, "avg", 0, "player average WPM (default: your stats)")
	botCmd.Flags().StringVar(&botDifficulty, "difficulty", defaultDifficulty, "bot difficulty")
	cmd.AddCommand(botCmd)

	record := &cobra.Command{
		Use:   "record",
		Short: "Record a finished race",
		Args:  cobra.NoArgs,
		RunE:  withApp(runRaceRecordCmd),
	}
	addSpeedFlags(record)
	record.Flags().Float64Var(&raceBotWPM, "bot", 0, "bot WPM")
	record.Flags().Float64Var(&raceAccuracy, "accuracy", 1, "accuracy (0-1)")
	record.Flags().IntVar(&raceLength, "length", 0, "prompt length in characters (default: --chars)")
	_ = record.MarkFlagRequired("bot")
	cmd.AddCommand(record)

	return cmd
}

func runRacePromptCmd(cmd *cobra.Command, _ []string, a *app) error {
	words := a.cfg.RaceWords
	if cmd.Flags().Changed("words") {
		words = promptWords
	}
	if words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if promptCaps < 0 || promptCaps > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if promptPunct < 0 || promptPunct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}

	path := promptWordlist
	if path == "" {
		path = config.DefaultWordListPath(promptLang)
	}
	list, err := wordlist.LoadWords(path, wordlist.FilterForLang(promptLang))
	if err != nil {
		logErrf("failed to load word list (%v); using built-in words\n", err)
		list = generator.FallbackWords()
	}
	text := a.manager.RacePrompt(list, generator.PromptOptions{
		Words:    words,
		CapsPct:  promptCaps,
		PunctPct: promptPunct,
		PunctSet: []rune(defaultPunctSet),
	})
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

func runRaceBotCmd(cmd *cobra.Command, _ []string, a *app) error {
	difficulty := a.cfg.Difficulty
	if cmd.Flags().Changed("difficulty") {
		difficulty = model.Difficulty(botDifficulty)
	}
	avg := botAverage
	if !cmd.Flags().Changed("avg") {
		acc, ok := a.manager.CurrentUser()
		if !ok {
			return describeError(account.ErrNotLoggedIn)
		}
		avg = playerAverage(acc)
	}
	speed := math.Max(a.manager.BotSpeed(avg, difficulty), 0)
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%.0f\n", speed)
	return err
}

// playerAverage prefers race history and falls back to the placement baseline.
func playerAverage(acc model.Account) float64 {
	if acc.Stats.TotalRaces > 0 {
		return acc.Stats.AverageWPM
	}
	return acc.BaselineWPM
}

func runRaceRecordCmd(cmd *cobra.Command, _ []string, a *app) error {
	wpm, err := resolveSpeed(cmd)
	if err != nil {
		return err
	}
	if raceAccuracy < 0 || raceAccuracy > 1 {
		return fmt.Errorf("--accuracy must be between 0 and 1")
	}
	length := raceLength
	if !cmd.Flags().Changed("length") {
		length = speedChars
	}
	outcome, err := a.manager.RecordRaceResult(cmd.Context(), wpm, raceBotWPM, raceAccuracy, length)
	if err != nil {
		return describeError(err)
	}
	result := "Lost"
	if outcome.Won {
		result = "Won"
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %.0f vs %.0f WPM. Record %d-%d, avg %.0f, best %.0f.\n",
		result, wpm, raceBotWPM, outcome.Stats.Wins, outcome.Stats.Losses, outcome.Stats.AverageWPM, outcome.Stats.BestWPM)
	return err
}

func newWPMCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wpm <characters> <seconds>",
		Short: "Compute words per minute",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var chars int
			var seconds float64
			if _, err := fmt.Sscan(args[0], &chars); err != nil {
				return fmt.Errorf("invalid characters %q: %w", args[0], err)
			}
			if _, err := fmt.Sscan(args[1], &seconds); err != nil {
				return fmt.Errorf("invalid seconds %q: %w", args[1], err)
			}
			wpm, err := stats.CalculateWPM(chars, seconds)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), wpm)
			return err
		},
	}
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show your race stats",
		Args:  cobra.NoArgs,
		RunE:  withApp(runStatsCmd),
	}
	cmd.Flags().IntVar(&statsLast, "last", defaultLast, "number of recent races to list (0 for all)")
	cmd.Flags().IntVar(&statsWindow, "window", defaultTrendWin, "moving average window for the trend line")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string, a *app) error {
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	acc, ok := a.manager.CurrentUser()
	if !ok {
		return describeError(account.ErrNotLoggedIn)
	}
	w := cmd.OutOrStdout()
	if err := stats.RenderSummary(w, acc); err != nil {
		return err
	}
	if err := stats.RenderRaces(w, acc.Stats.Races, statsLast); err != nil {
		return err
	}
	if !stats.Consistent(acc.Stats) {
		logErrln("warning: stored totals disagree with race history")
	}
	return stats.RenderTrend(w, acc.Stats.Races, statsWindow, stats.TerminalWidth())
}
