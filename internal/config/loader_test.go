package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	embedded, err := ParseSliding(defaultSlidingYAML)
	if err != nil {
		t.Fatalf("ParseSliding(embedded) failed: %v", err)
	}
	def := DefaultSlidingConfig()

	if embedded.Board != def.Board {
		t.Errorf("Board = %+v, expected %+v", embedded.Board, def.Board)
	}
	if embedded.Gesture != def.Gesture {
		t.Errorf("Gesture = %+v, expected %+v", embedded.Gesture, def.Gesture)
	}
	if embedded.TUI != def.TUI {
		t.Errorf("TUI = %+v, expected %+v", embedded.TUI, def.TUI)
	}
	for tile, color := range def.Web.TileColors {
		if embedded.Web.TileColors[tile] != color {
			t.Errorf("TileColors[%d] = %q, expected %q", tile, embedded.Web.TileColors[tile], color)
		}
	}
}

func TestLoadSlidingCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("board:\n  shuffle_moves: 12\ngesture:\n  min_swipe: 30\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadSliding(path)
	if err != nil {
		t.Fatalf("LoadSliding() failed: %v", err)
	}

	if cfg.Board.ShuffleMoves != 12 {
		t.Errorf("ShuffleMoves = %d, expected 12", cfg.Board.ShuffleMoves)
	}
	if cfg.Gesture.MinSwipe != 30 {
		t.Errorf("MinSwipe = %v, expected 30", cfg.Gesture.MinSwipe)
	}
	// Unset values keep defaults
	if cfg.Board.Size != 3 {
		t.Errorf("Size = %d, expected default 3", cfg.Board.Size)
	}
	if cfg.Gesture.MaxDrag != 150 {
		t.Errorf("MaxDrag = %v, expected default 150", cfg.Gesture.MaxDrag)
	}
}

func TestLoadSlidingMissingCustomPath(t *testing.T) {
	_, err := LoadSliding(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("LoadSliding() with a missing custom file should fail")
	}
	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseSlidingRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"tiny board", "board:\n  size: 1\n"},
		{"negative shuffle", "board:\n  shuffle_moves: -1\n"},
		{"zero swipe", "gesture:\n  min_swipe: 0\n"},
		{"zero drag", "gesture:\n  max_drag: 0\n"},
		{"narrow cell", "tui:\n  cell_width: 2\n"},
		{"bad scale", "tui:\n  pointer_scale_x: 0\n"},
		{"malformed", "board: [\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseSliding([]byte(tc.yaml)); err == nil {
				t.Errorf("ParseSliding(%q) should fail", tc.yaml)
			}
		})
	}
}

func TestApplySlidingPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		expected int
	}{
		{DifficultyEasy, 30},
		{DifficultyNormal, 100},
		{DifficultyHard, 250},
		{DifficultyFixed, 77},
		{"", 77},
		{"unknown", 77},
	}

	for _, tc := range tests {
		cfg := DefaultSlidingConfig()
		cfg.Board.ShuffleMoves = 77
		ApplySlidingPreset(&cfg, tc.preset)
		if cfg.Board.ShuffleMoves != tc.expected {
			t.Errorf("preset %q: ShuffleMoves = %d, expected %d", tc.preset, cfg.Board.ShuffleMoves, tc.expected)
		}
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("relative/path.db")
	if err != nil || got != "relative/path.db" {
		t.Errorf("ExpandHome(relative) = %q, %v", got, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err = ExpandHome("~/.slide/results.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if got != filepath.Join(home, ".slide", "results.db") {
		t.Errorf("ExpandHome(~) = %q", got)
	}
}
