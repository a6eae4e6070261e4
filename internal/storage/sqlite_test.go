package storage

import (
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

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

func TestSaveAndLoadRun(t *testing.T) {
	store := openTestStore(t)

	ticks := []TickRecord{
		{Actions: 0, Held: 1 << 2, Millis: 16.666666666666668},
		{Actions: 1 << 3, Held: 0, Millis: 17.25},
		{Actions: 0, Held: 0, Millis: 100},
	}
	id, err := store.SaveRun(RunRecord{
		GameID: "highway",
		Seed:   -42,
		Config: "hero:\n  speed: 5\n",
		Ticks:  3,
		Score:  7,
		Cause:  "devil",
	}, ticks)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	run, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if run == nil {
		t.Fatal("Run() returned nil for a saved run")
	}
	if run.Seed != -42 || run.Score != 7 || run.Ticks != 3 || run.Cause != "devil" {
		t.Errorf("run = %+v", run)
	}
	if run.Session != "local" {
		t.Errorf("session = %q, expected default local", run.Session)
	}
	if run.Config != "hero:\n  speed: 5\n" {
		t.Errorf("config = %q", run.Config)
	}
	if run.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}

	got, err := store.RunTicks(id)
	if err != nil {
		t.Fatalf("RunTicks() failed: %v", err)
	}
	if len(got) != len(ticks) {
		t.Fatalf("got %d ticks, expected %d", len(got), len(ticks))
	}
	for i := range ticks {
		// Millis must survive bit-exact for replays to match
		if got[i] != ticks[i] {
			t.Errorf("tick %d = %+v, expected %+v", i, got[i], ticks[i])
		}
	}
}

func TestRunMissing(t *testing.T) {
	store := openTestStore(t)

	run, err := store.Run(999)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if run != nil {
		t.Errorf("Run(999) = %+v, expected nil", run)
	}
}

func TestRecentRunsNewestFirst(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		if _, err := store.SaveRun(RunRecord{GameID: "highway", Seed: int64(i), Config: "{}", Score: i}, nil); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, expected 3", len(runs))
	}
	for i, want := range []int64{5, 4, 3} {
		if runs[i].Seed != want {
			t.Errorf("runs[%d].Seed = %d, expected %d", i, runs[i].Seed, want)
		}
	}

	n, err := store.RunCount()
	if err != nil || n != 5 {
		t.Errorf("RunCount() = %d, %v; expected 5", n, err)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{GameID: "highway", Config: "{}"}, []TickRecord{{Millis: 1}})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs after clear", len(runs))
	}
	ticks, err := store.RunTicks(id)
	if err != nil {
		t.Fatalf("RunTicks() failed: %v", err)
	}
	if len(ticks) != 0 {
		t.Errorf("got %d ticks after clear", len(ticks))
	}
}
