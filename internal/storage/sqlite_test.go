package storage

import (
	"database/sql"
	"os"
	"path/filepath"
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

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveResult(Result{GameID: "match3", Score: 42}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	stats, err := store.GetGameStats("match3")
	if err != nil || stats.HighScore != 42 {
		t.Errorf("GetGameStats() = %+v, %v; want high score 42", stats, err)
	}
}

func TestStoreSaveResultAndTopScores(t *testing.T) {
	store := openTestStore(t)

	results := []Result{
		{GameID: "match3", Score: 120, Turns: 10, BestChain: 2, Seed: 1},
		{GameID: "match3", Score: 45, Turns: 4, BestChain: 1, Seed: 2},
		{GameID: "match3", Score: 300, Turns: 30, BestChain: 4, Seed: 3},
		{GameID: "match3_moves", Score: 500, Turns: 20, BestChain: 3, Seed: 4},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult(%+v) failed: %v", r, err)
		}
	}

	scores, err := store.TopScores("match3", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{300, 120, 45}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}
	top := scores[0]
	if top.Turns != 30 || top.BestChain != 4 || top.Seed != 3 {
		t.Errorf("top entry details lost: %+v", top)
	}
	if top.CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 15 {
		store.SaveResult(Result{GameID: "match3", Score: (i + 1) * 10})
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"explicit", 3, 3},
		{"zero uses default", 0, DefaultTopLimit},
		{"negative uses default", -5, DefaultTopLimit},
		{"more than stored", 50, 15},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scores, err := store.TopScores("match3", tc.limit)
			if err != nil {
				t.Fatalf("TopScores() failed: %v", err)
			}
			if len(scores) != tc.want {
				t.Errorf("got %d scores, want %d", len(scores), tc.want)
			}
			if scores[0].Score != 150 {
				t.Errorf("first score = %d, want 150", scores[0].Score)
			}
		})
	}
}

func TestStoreUpgradesBareScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")

	// A database written before turn details were recorded
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	if _, err := db.Exec(migrations[0]); err != nil {
		t.Fatalf("creating old schema failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO scores (game_id, score) VALUES ('match3', 77)"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	db.Close()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on old database failed: %v", err)
	}
	defer store.Close()

	v, err := schemaVersion(store.db)
	if err != nil || v != len(migrations) {
		t.Errorf("schema version = %d, %v; want %d", v, err, len(migrations))
	}

	if _, err := store.SaveResult(Result{GameID: "match3", Score: 90, Turns: 8, BestChain: 2, Seed: 5}); err != nil {
		t.Fatalf("SaveResult() after upgrade failed: %v", err)
	}
	scores, err := store.TopScores("match3", 10)
	if err != nil || len(scores) != 2 {
		t.Fatalf("TopScores() = %d entries, %v; want 2", len(scores), err)
	}
	if scores[1].Score != 77 || scores[1].Turns != 0 || scores[1].Seed != 0 {
		t.Errorf("old row after upgrade = %+v", scores[1])
	}
	if scores[0].Turns != 8 {
		t.Errorf("new row lost its turns: %+v", scores[0])
	}
}

func TestStoreRejectsNewerSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "future.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("PRAGMA failed: %v", err)
	}
	db.Close()

	if store, err := Open(dbPath); err == nil {
		store.Close()
		t.Error("Open() should refuse a schema from a newer build")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in, want string
	}{
		{"~/.match3/scores.db", filepath.Join(home, ".match3", "scores.db")},
		{"~", home},
		{"./scores.db", "./scores.db"},
		{"~other/scores.db", "~other/scores.db"},
	}
	for _, tc := range tests {
		got, err := ExpandPath(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ExpandPath(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(Result{GameID: "match3", Score: 100})
	store.SaveResult(Result{GameID: "match3", Score: 200})
	store.SaveResult(Result{GameID: "match3_moves", Score: 300})

	if err := store.ClearScores("match3"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	classic, _ := store.TopScores("match3", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic scores after clear, got %d", len(classic))
	}

	moves, _ := store.TopScores("match3_moves", 10)
	if len(moves) != 1 {
		t.Errorf("moves scores should not be affected by clearing classic")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("match3")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveResult(Result{GameID: "match3", Score: 10, BestChain: 1})
	store.SaveResult(Result{GameID: "match3", Score: 30, BestChain: 5})
	store.SaveResult(Result{GameID: "match3_moves", Score: 7, BestChain: 2})

	stats, err := store.GetGameStats("match3")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.TotalScore != 40 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %v, want 20", stats.AvgScore)
	}
	if stats.BestChain != 5 {
		t.Errorf("BestChain = %d, want 5", stats.BestChain)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not parsed")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["match3_moves"].HighScore != 7 || all["match3_moves"].GamesCount != 1 {
		t.Errorf("moves stats = %+v", all["match3_moves"])
	}
}
