package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/highway-runner/internal/config"
)

func TestApplyEnvKeepsExplicitFlags(t *testing.T) {
	oldFPS, oldSeed, oldMute := flagFPS, flagSeed, flagMute
	t.Cleanup(func() { flagFPS, flagSeed, flagMute = oldFPS, oldSeed, oldMute })

	if err := rootCmd.ParseFlags([]string{"--fps", "30"}); err != nil {
		t.Fatalf("ParseFlags() failed: %v", err)
	}

	fps, seed, mute := 90, int64(7), true
	applyEnv(rootCmd, config.Env{FPS: &fps, Seed: &seed, Mute: &mute})

	if flagFPS != 30 {
		t.Errorf("fps = %d, explicit flag should win over HIGHWAY_FPS", flagFPS)
	}
	if flagSeed != 7 {
		t.Errorf("seed = %d, expected HIGHWAY_SEED to apply", flagSeed)
	}
	if !flagMute {
		t.Error("HIGHWAY_MUTE should apply")
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/runner")

	tests := []struct {
		in   string
		want string
	}{
		{"~/.highway/runs.db", filepath.Join("/home/runner", ".highway", "runs.db")},
		{"./runs.db", "./runs.db"},
		{"/tmp/x", "/tmp/x"},
	}
	for _, tc := range tests {
		if got := expandHome(tc.in); got != tc.want {
			t.Errorf("expandHome(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestLoadCatalogFallsBackToEmbedded(t *testing.T) {
	broken := filepath.Join(t.TempDir(), "sprites.yaml")
	if err := os.WriteFile(broken, []byte("sprites: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"embedded", ""},
		{"broken sheet", broken},
		{"missing sheet", filepath.Join(t.TempDir(), "nope.yaml")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			catalog, err := loadCatalog(tc.path, nil)
			if err != nil {
				t.Fatalf("loadCatalog(%q) error = %v", tc.path, err)
			}
			if !catalog.Ready() {
				t.Errorf("loadCatalog(%q) catalog not ready", tc.path)
			}
		})
	}
}
