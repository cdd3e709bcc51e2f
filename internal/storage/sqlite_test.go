package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []struct {
		game   string
		player string
		score  int
	}{
		{"trajguess", "ana", 100},
		{"trajguess", "bo", 50},
		{"trajguess", "ana", 200},
		{"trajguess_complex", "bo", 500},
	} {
		if _, err := store.SaveScore(s.game, s.player, s.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("trajguess", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Player != "ana" || scores[2].Player != "bo" {
		t.Errorf("Players not stored: %v", scores)
	}

	hex, err := store.TopScores("trajguess_complex", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(hex) != 1 {
		t.Errorf("Expected 1 complex score, got %d", len(hex))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", "p", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("trajguess")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("trajguess", "p", 100)
	store.SaveScore("trajguess", "p", 300)
	store.SaveScore("trajguess", "p", 200)

	high, err = store.HighScore("trajguess")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("trajguess", "p", 100)
	store.SaveScore("trajguess", "p", 200)
	store.SaveScore("trajguess_duo", "p", 300)
	store.SaveRound(RoundRecord{GameID: "trajguess", Player: "p", Steps: 8})

	if err := store.ClearScores("trajguess"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("trajguess", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if rounds, _ := store.RecentRounds("", "p", 10); len(rounds) != 0 {
		t.Errorf("Expected 0 rounds after clear, got %d", len(rounds))
	}
	if scores, _ := store.TopScores("trajguess_duo", 10); len(scores) != 1 {
		t.Errorf("Duo scores should not be affected by clearing trajguess")
	}
}

func TestStoreRegisterUser(t *testing.T) {
	store := openTestStore(t)

	u, err := store.RegisterUser("  ana ")
	if err != nil {
		t.Fatalf("RegisterUser() failed: %v", err)
	}
	if u.Name != "ana" || u.HighScore != 0 || u.ID == 0 {
		t.Errorf("unexpected user: %+v", u)
	}

	if _, err := store.RegisterUser("ana"); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate RegisterUser() error = %v, expected ErrUserExists", err)
	}

	ok, err := store.UserExists("ana")
	if err != nil || !ok {
		t.Errorf("UserExists(ana) = %v, %v", ok, err)
	}
	ok, err = store.UserExists("bo")
	if err != nil || ok {
		t.Errorf("UserExists(bo) = %v, %v", ok, err)
	}
}

func TestStoreRegisterUserInvalidName(t *testing.T) {
	store := openTestStore(t)

	for _, name := range []string{"", "   ", strings.Repeat("x", MaxNameLen+1)} {
		if _, err := store.RegisterUser(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("RegisterUser(%q) error = %v, expected ErrInvalidName", name, err)
		}
	}
}

func TestStoreGetUnknownUser(t *testing.T) {
	store := openTestStore(t)

	u, err := store.GetUser("nobody")
	if err != nil {
		t.Fatalf("GetUser() failed: %v", err)
	}
	if u != nil {
		t.Errorf("Expected nil user, got %+v", u)
	}
}

func TestStoreUpdateHighScore(t *testing.T) {
	store := openTestStore(t)
	store.RegisterUser("ana")

	tests := []struct {
		score   float64
		changed bool
		want    float64
	}{
		{42.5, true, 42.5},
		{10, false, 42.5},
		{42.5, false, 42.5},
		{80, true, 80},
	}
	for _, tt := range tests {
		changed, err := store.UpdateHighScore("ana", tt.score)
		if err != nil {
			t.Fatalf("UpdateHighScore(%v) failed: %v", tt.score, err)
		}
		if changed != tt.changed {
			t.Errorf("UpdateHighScore(%v) changed = %v, expected %v", tt.score, changed, tt.changed)
		}
		u, _ := store.GetUser("ana")
		if u.HighScore != tt.want {
			t.Errorf("after %v high score = %v, expected %v", tt.score, u.HighScore, tt.want)
		}
	}

	if _, err := store.UpdateHighScore("bo", 5); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UpdateHighScore(bo) error = %v, expected ErrUserNotFound", err)
	}
}

func TestStoreRounds(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRound(RoundRecord{
		GameID: "trajguess", Player: "ana", Steps: 8,
		Similarity: 0.5, Score: 40, Elapsed: 2.5,
	})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("generated id %q is not a uuid", id)
	}

	fixed := "6f1c0b8e-0000-4000-8000-000000000001"
	if got, err := store.SaveRound(RoundRecord{ID: fixed, GameID: "trajguess", Player: "bo", Steps: 6}); err != nil || got != fixed {
		t.Fatalf("SaveRound() with id = %q, %v", got, err)
	}
	if _, err := store.SaveRound(RoundRecord{ID: fixed, GameID: "trajguess", Player: "bo"}); err == nil {
		t.Error("duplicate round id should fail")
	}

	all, err := store.RecentRounds("", "", 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 rounds, got %d", len(all))
	}

	ana, err := store.RecentRounds("", "ana", 10)
	if err != nil {
		t.Fatalf("RecentRounds(ana) failed: %v", err)
	}
	if len(ana) != 1 {
		t.Fatalf("Expected 1 round for ana, got %d", len(ana))
	}
	r := ana[0]
	if r.ID != id || r.Steps != 8 || r.Similarity != 0.5 || r.Score != 40 || r.Elapsed != 2.5 {
		t.Errorf("unexpected round: %+v", r)
	}
}

func TestStoreRecentRoundsFiltersGameBeforeLimit(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRound(RoundRecord{GameID: "trajguess", Player: "ana", Steps: 8}); err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	for i := 0; i < 30; i++ {
		if _, err := store.SaveRound(RoundRecord{GameID: "trajguess_duo", Player: "bo", Steps: 6}); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	rounds, err := store.RecentRounds("trajguess", "", 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 1 || rounds[0].GameID != "trajguess" || rounds[0].Player != "ana" {
		t.Errorf("Expected the single trajguess round, got %+v", rounds)
	}

	duo, err := store.RecentRounds("trajguess_duo", "", 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(duo) != 10 {
		t.Errorf("Expected 10 duo rounds, got %d", len(duo))
	}
	for _, r := range duo {
		if r.GameID != "trajguess_duo" {
			t.Errorf("round from %s leaked into duo results", r.GameID)
		}
	}

	if got, _ := store.RecentRounds("trajguess_duo", "ana", 10); len(got) != 0 {
		t.Errorf("Expected no duo rounds for ana, got %d", len(got))
	}
	if got, _ := store.RecentRounds("", "", 50); len(got) != 31 {
		t.Errorf("Expected 31 rounds overall, got %d", len(got))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("trajguess", "ana", 100)
	store.SaveScore("trajguess", "bo", 300)
	store.SaveRound(RoundRecord{GameID: "trajguess", Player: "ana", Similarity: 1})
	store.SaveRound(RoundRecord{GameID: "trajguess", Player: "bo", Similarity: 0.5})

	stats, err := store.GetGameStats("trajguess")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("unexpected score stats: %+v", stats)
	}
	if stats.RoundsCount != 2 || stats.AvgSimilarity != 0.75 {
		t.Errorf("unexpected round stats: %+v", stats)
	}

	empty, err := store.GetGameStats("none")
	if err != nil {
		t.Fatalf("GetGameStats(none) failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for empty game: %+v", empty)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/subdir/deep/test.db")
	if err != nil {
		t.Fatalf("Open() with home path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created under home
	if _, err := os.Stat(filepath.Join(home, "subdir", "deep", "test.db")); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
