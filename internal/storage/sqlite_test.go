package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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

// saveScore records a bare run and fails the test on error.
func saveScore(t *testing.T, store *Store, gameID string, score int) {
	t.Helper()
	if _, err := store.SaveRun(RunResult{GameID: gameID, Score: score}); err != nil {
		t.Fatalf("SaveRun(%s, %d) failed: %v", gameID, score, err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		saveScore(t, store, "colorrun", score)
	}
	saveScore(t, store, "shield", 500)

	scores, err := store.TopScores("colorrun", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %v", scores)
	}

	shieldScores, err := store.TopScores("shield", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(shieldScores) != 1 {
		t.Errorf("Expected 1 shield score, got %d", len(shieldScores))
	}
}

func TestStoreSaveRunDetails(t *testing.T) {
	store := openTestStore(t)

	run := RunResult{
		GameID:     "shield",
		Score:      42,
		Difficulty: "hard",
		Duration:   95*time.Second + 250*time.Millisecond,
		Won:        true,
	}
	if _, err := store.SaveRun(run); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	entries, err := store.TopScores("shield", 1)
	if err != nil || len(entries) != 1 {
		t.Fatalf("TopScores() = %v, %v", entries, err)
	}
	e := entries[0]
	if e.Difficulty != "hard" || e.Duration != run.Duration || !e.Won || e.Score != 42 {
		t.Errorf("run details lost: %+v", e)
	}
	if e.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}

	if _, err := store.SaveRun(RunResult{Score: 1}); err == nil {
		t.Error("SaveRun() without a game id should fail")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		saveScore(t, store, "test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("colorrun")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	saveScore(t, store, "colorrun", 100)
	saveScore(t, store, "colorrun", 300)
	saveScore(t, store, "colorrun", 200)

	high, err = store.HighScore("colorrun")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	saveScore(t, store, "colorrun", 100)
	saveScore(t, store, "colorrun", 200)
	saveScore(t, store, "shield", 300)

	if err := store.ClearScores("colorrun"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	cleared, _ := store.TopScores("colorrun", 10)
	if len(cleared) != 0 {
		t.Errorf("Expected 0 colorrun scores after clear, got %d", len(cleared))
	}

	kept, _ := store.TopScores("shield", 10)
	if len(kept) != 1 {
		t.Errorf("Shield scores should not be affected by clearing colorrun")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		saveScore(t, store, "test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	saveScore(t, store, "colorrun", 10)
	saveScore(t, store, "shield", 20)
	saveScore(t, store, "colorrun", 5)

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].Score != 5 || runs[1].Score != 20 {
		t.Errorf("Runs not newest first: %v", runs)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunResult{GameID: "shield", Score: 10, Duration: time.Minute})
	store.SaveRun(RunResult{GameID: "shield", Score: 30, Duration: 2 * time.Minute, Won: true})
	store.SaveRun(RunResult{GameID: "colorrun", Score: 7})

	stats, err := store.GetGameStats("shield")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.Wins != 1 || stats.HighScore != 30 || stats.TotalScore != 40 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 20 || stats.LongestRun != 2*time.Minute {
		t.Errorf("unexpected average/longest: %+v", stats)
	}

	empty, err := store.GetGameStats("missing")
	if err != nil {
		t.Fatalf("GetGameStats() on an unplayed game failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unplayed game should have empty stats: %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["colorrun"].HighScore != 7 || all["shield"].Wins != 1 {
		t.Errorf("unexpected all-games stats: %+v", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
