package account

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/verte-zerg/neurotype/internal/bot"
	"github.com/verte-zerg/neurotype/internal/generator"
	"github.com/verte-zerg/neurotype/internal/model"
	"github.com/verte-zerg/neurotype/internal/stats"
	"github.com/verte-zerg/neurotype/internal/store"
)

func TestPlacementAndFirstRaceScenario(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, store.NewMemory())

	if err := m.CreateAccount(ctx, "alice1", "Secret!1"); err != nil {
		t.Fatalf("create account: %v", err)
	}
	if m.HasCompletedPlacement() {
		t.Fatalf("new account must not have completed placement")
	}
	if err := m.CompletePlacement(ctx, 45); err != nil {
		t.Fatalf("complete placement: %v", err)
	}
	if !m.HasCompletedPlacement() {
		t.Fatalf("expected placement to be complete")
	}
	acc, _ := m.CurrentUser()
	if acc.BaselineWPM != 45 {
		t.Fatalf("expected baseline 45, got %.1f", acc.BaselineWPM)
	}

	outcome, err := m.RecordRaceResult(ctx, 55, 40, 0.97, 120)
	if err != nil {
		t.Fatalf("record race: %v", err)
	}
	if !outcome.Won {
		t.Fatalf("expected a win")
	}
	s, ok := m.UserStats()
	if !ok {
		t.Fatalf("expected stats")
	}
	if s.Wins != 1 || s.TotalRaces != 1 || s.BestWPM != 55 || s.AverageWPM != 55 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	r := s.Races[0]
	if r.PlayerWPM != 55 || r.BotWPM != 40 || r.Accuracy != 0.97 || r.PromptLength != 120 || !r.Won {
		t.Fatalf("unexpected race record: %+v", r)
	}

	if err := m.DeleteAccount(ctx); err != nil {
		t.Fatalf("delete account: %v", err)
	}
	if m.IsLoggedIn() {
		t.Fatalf("expected logged out after delete")
	}
	if err := m.Login(ctx, "alice1", "Secret!1"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCompletePlacementOverwritesBaseline(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, store.NewMemory())
	if err := m.CreateAccount(ctx, "alice1", "Secret!1"); err != nil {
		t.Fatalf("create account: %v", err)
	}
	for _, wpm := range []float64{45, 61} {
		if err := m.CompletePlacement(ctx, wpm); err != nil {
			t.Fatalf("complete placement: %v", err)
		}
	}
	acc, _ := m.CurrentUser()
	if !acc.PlacementComplete || acc.BaselineWPM != 61 {
		t.Fatalf("expected overwritten baseline 61, got %+v", acc)
	}
}

func TestCompletePlacementRereadsStore(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	m := newTestManager(t, st)
	if err := m.CreateAccount(ctx, "alice1", "Secret!1"); err != nil {
		t.Fatalf("create account: %v", err)
	}

	// Another manager over the same store records a race meanwhile.
	other := newTestManager(t, st)
	if err := other.LoadCurrentUser(ctx); err != nil {
		t.Fatalf("load current user: %v", err)
	}
	if _, err := other.RecordRaceResult(ctx, 70, 60, 1, 50); err != nil {
		t.Fatalf("record race: %v", err)
	}

	if err := m.CompletePlacement(ctx, 45); err != nil {
		t.Fatalf("complete placement: %v", err)
	}
	s, _ := m.UserStats()
	if s.TotalRaces != 1 {
		t.Fatalf("expected external race to be kept, got %+v", s)
	}
}

func TestNotLoggedInOperations(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, store.NewMemory())

	if err := m.CompletePlacement(ctx, 40); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn from CompletePlacement, got %v", err)
	}
	if _, err := m.RecordRaceResult(ctx, 40, 30, 1, 10); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn from RecordRaceResult, got %v", err)
	}
	if _, ok := m.UserStats(); ok {
		t.Fatalf("expected no stats when logged out")
	}
	if m.HasCompletedPlacement() {
		t.Fatalf("expected no placement when logged out")
	}
}

func TestRecordRaceResultTieIsLoss(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, store.NewMemory())
	if err := m.CreateAccount(ctx, "alice1", "Secret!1"); err != nil {
		t.Fatalf("create account: %v", err)
	}
	outcome, err := m.RecordRaceResult(ctx, 60, 60, 0.95, 100)
	if err != nil {
		t.Fatalf("record race: %v", err)
	}
	if outcome.Won {
		t.Fatalf("tie must count as a loss")
	}
	if outcome.Stats.Losses != 1 || outcome.Stats.Wins != 0 {
		t.Fatalf("unexpected stats: %+v", outcome.Stats)
	}
}

func TestRecordRaceResultAggregates(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, store.NewMemory())
	if err := m.CreateAccount(ctx, "alice1", "Secret!1"); err != nil {
		t.Fatalf("create account: %v", err)
	}

	rnd := rand.New(rand.NewSource(3))
	var values []float64
	for n := 1; n <= 25; n++ {
		player := float64(20 + rnd.Intn(100))
		botWPM := float64(20 + rnd.Intn(100))
		values = append(values, player)

		outcome, err := m.RecordRaceResult(ctx, player, botWPM, 0.9, 80)
		if err != nil {
			t.Fatalf("record race %d: %v", n, err)
		}
		s := outcome.Stats
		if s.TotalRaces != n || len(s.Races) != n || s.Wins+s.Losses != n {
			t.Fatalf("race %d: counters out of sync: %+v", n, s)
		}
		var sum, best float64
		for _, v := range values {
			sum += v
			best = math.Max(best, v)
		}
		if s.BestWPM != best {
			t.Fatalf("race %d: expected best %.0f, got %.0f", n, best, s.BestWPM)
		}
		if want := math.Round(sum / float64(n)); s.AverageWPM != want {
			t.Fatalf("race %d: expected average %.0f, got %.0f", n, want, s.AverageWPM)
		}
		if !stats.Consistent(s) {
			t.Fatalf("race %d: stats inconsistent with history", n)
		}
	}

	s, _ := m.UserStats()
	for i := range s.Races {
		if s.Races[i].PlayerWPM != values[i] {
			t.Fatalf("race %d out of insertion order", i)
		}
	}
}

func TestUserStatsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, store.NewMemory())
	if err := m.CreateAccount(ctx, "alice1", "Secret!1"); err != nil {
		t.Fatalf("create account: %v", err)
	}
	if _, err := m.RecordRaceResult(ctx, 50, 40, 1, 10); err != nil {
		t.Fatalf("record race: %v", err)
	}
	s, _ := m.UserStats()
	s.Races[0].PlayerWPM = 999
	again, _ := m.UserStats()
	if again.Races[0].PlayerWPM != 50 {
		t.Fatalf("session state leaked through returned stats")
	}
}

type seqRand struct {
	ints   []int
	floats []float64
}

func (s *seqRand) Intn(n int) int {
	v := s.ints[0] % n
	s.ints = s.ints[1:]
	return v
}

func (s *seqRand) Float64() float64 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func TestInjectedRandomSources(t *testing.T) {
	rnd := &seqRand{ints: []int{3}, floats: []float64{0.5, 0.9, 0.1}}
	m := newTestManager(t, store.NewMemory(),
		WithGenerator(generator.NewWithRand(rnd)),
		WithBot(bot.NewWithRand(rnd)),
	)
	if got := m.GeneratePlacementPrompt(); got != "Speed and accuracy are keys to victory" {
		t.Fatalf("unexpected placement prompt %q", got)
	}
	if got := m.BotSpeed(50, model.DifficultyAdaptive); got != 60 {
		t.Fatalf("expected bot speed 60, got %.1f", got)
	}
	if got := m.BotSpeed(50, "nightmare"); got != 50 {
		t.Fatalf("expected passthrough for unknown difficulty, got %.1f", got)
	}
}
