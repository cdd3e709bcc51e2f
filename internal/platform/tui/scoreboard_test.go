package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/trajguess/internal/registry"
	"github.com/vovakirdan/trajguess/internal/storage"
)

func TestScoreboardRoundsViewIgnoresOtherGames(t *testing.T) {
	registry.Register("scripted", func() registry.Game { return &scriptedGame{} })
	t.Cleanup(func() { registry.Unregister("scripted") })

	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveRound(storage.RoundRecord{GameID: "scripted", Player: "ana", Steps: 4, Similarity: 0.5}); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	// newer rounds of another mode, more than the view shows
	for i := 0; i < maxRounds+50; i++ {
		if _, err := store.SaveRound(storage.RoundRecord{GameID: "elsewhere", Player: "bo", Steps: 6}); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	next, _ := m.Update(runeKey('v'))
	m = next.(ScoreboardModel)

	if !m.showRounds {
		t.Fatal("v should switch to the rounds view")
	}
	if len(m.rounds) != 1 || m.rounds[0].Player != "ana" {
		t.Fatalf("rounds = %+v, expected the single scripted round", m.rounds)
	}
	if view := m.View(); !strings.Contains(view, "RECENT ROUNDS") || !strings.Contains(view, "ana") {
		t.Errorf("rounds view missing title or player:\n%s", view)
	}
}
