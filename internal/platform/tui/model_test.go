package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/trajguess/internal/core"
	"github.com/vovakirdan/trajguess/internal/storage"
)

// scriptedGame finishes one round per Confirm and ends after two.
type scriptedGame struct {
	resets  int
	resized [2]int
	seen    [][]core.Action
	rounds  int
	pending []core.Result
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.rounds = 0
}

func (g *scriptedGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.seen = append(g.seen, append([]core.Action(nil), in.Sequence()...))
	if in.Has(core.ActionConfirm) && g.rounds < 2 {
		g.rounds++
		g.pending = append(g.pending, core.Result{
			Player: "ana", Steps: 4, Similarity: 0.5, Score: 25, Elapsed: 2,
		})
	}
	out := core.StepResult{State: g.State(), Results: g.pending}
	g.pending = nil
	return out
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState {
	score := g.rounds * 25
	return core.GameState{
		Score:    score,
		GameOver: g.rounds == 2,
		Players:  []core.PlayerScore{{Name: "ana", Score: score}, {Name: "bo", Score: 0}},
	}
}

func testModel(t *testing.T, store *storage.Store) (Model, *scriptedGame) {
	t.Helper()
	g := &scriptedGame{}
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	m := NewModel(g, store, cfg, nil)
	m.Init()
	return m, g
}

func step(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModelForwardsActionsInOrder(t *testing.T) {
	m, g := testModel(t, nil)

	m = step(t, m,
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}},
		TickMsg{},
	)

	if len(g.seen) != 1 {
		t.Fatalf("game stepped %d times, expected 1", len(g.seen))
	}
	want := []core.Action{core.ActionRight, core.ActionRight, core.ActionPlace}
	got := g.seen[0]
	if len(got) != len(want) {
		t.Fatalf("actions = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("action %d = %s, expected %s", i, got[i], want[i])
		}
	}

	// input is cleared between ticks
	step(t, m, TickMsg{})
	if len(g.seen[1]) != 0 {
		t.Errorf("second tick saw %v, expected no actions", g.seen[1])
	}
}

func TestModelPersistsRoundsAndTotals(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	store.RegisterUser("ana")

	m, _ := testModel(t, store)
	enter := tea.KeyMsg{Type: tea.KeyEnter}
	m = step(t, m, enter, TickMsg{}, enter, TickMsg{}, TickMsg{})

	if !m.State().GameOver {
		t.Fatal("expected game over after two rounds")
	}

	rounds, err := store.RecentRounds("", "ana", 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 2 {
		t.Errorf("Expected 2 saved rounds, got %d", len(rounds))
	}

	// zero totals are not recorded
	scores, _ := store.TopScores("scripted", 10)
	if len(scores) != 1 || scores[0].Player != "ana" || scores[0].Score != 50 {
		t.Errorf("unexpected scores: %v", scores)
	}

	u, _ := store.GetUser("ana")
	if u == nil || u.HighScore != 50 {
		t.Errorf("high score not raised: %+v", u)
	}
}

func TestModelResizeKeepsMatch(t *testing.T) {
	m, g := testModel(t, nil)

	step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if g.resets != 1 {
		t.Errorf("resize restarted the game (%d resets)", g.resets)
	}
	if g.resized[0] != 100 || g.resized[1] >= 40 || g.resized[1] < 30 {
		t.Errorf("game resized to %v, expected 100 wide and room for help", g.resized)
	}
}

func TestModelBackQuitsWhenStandalone(t *testing.T) {
	m, _ := testModel(t, nil)
	enter := tea.KeyMsg{Type: tea.KeyEnter}
	m = step(t, m, enter, TickMsg{}, enter, TickMsg{})

	next, cmd := m.Update(runeKey('b'))
	m = next.(Model)
	if !m.BackToMenu() || !m.IsQuitting() || cmd == nil {
		t.Errorf("back at game over: menu=%v quitting=%v cmd=%v", m.BackToMenu(), m.IsQuitting(), cmd != nil)
	}
}

func TestModelView(t *testing.T) {
	m, _ := testModel(t, nil)

	view := m.View()
	if !strings.Contains(view, "scripted") {
		t.Error("view does not contain the game render")
	}
	if !strings.Contains(view, "place") {
		t.Error("view does not contain the help footer")
	}
}
