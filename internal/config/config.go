// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
)

// SlidingConfig contains all configuration for the sliding puzzle.
type SlidingConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Gesture GestureConfig `yaml:"gesture"`
	TUI     TUIConfig     `yaml:"tui"`
	Web     WebConfig     `yaml:"web"`
}

// BoardConfig defines the board dimension and shuffle depth.
type BoardConfig struct {
	Size         int `yaml:"size"`
	ShuffleMoves int `yaml:"shuffle_moves"`
}

// GestureConfig defines swipe thresholds in pointer pixels.
type GestureConfig struct {
	MinSwipe float64 `yaml:"min_swipe"` // Minimum travel for a swipe to count
	MaxDrag  float64 `yaml:"max_drag"`  // Visual travel limit of the drag preview
}

// TUIConfig defines terminal layout and how mouse cells map to pointer pixels.
type TUIConfig struct {
	CellWidth     int     `yaml:"cell_width"`
	CellHeight    int     `yaml:"cell_height"`
	PointerScaleX float64 `yaml:"pointer_scale_x"`
	PointerScaleY float64 `yaml:"pointer_scale_y"`
}

// WebConfig defines the browser palette.
type WebConfig struct {
	EmptyColor string         `yaml:"empty_color" json:"emptyColor"`
	TileColors map[int]string `yaml:"tile_colors" json:"tileColors"`
}

// Validate checks that the configuration describes a playable puzzle.
func (c SlidingConfig) Validate() error {
	var errs []error
	if c.Board.Size < 2 {
		errs = append(errs, fmt.Errorf("board.size must be at least 2, got %d", c.Board.Size))
	}
	if c.Board.ShuffleMoves < 0 {
		errs = append(errs, fmt.Errorf("board.shuffle_moves must not be negative, got %d", c.Board.ShuffleMoves))
	}
	if c.Gesture.MinSwipe <= 0 {
		errs = append(errs, fmt.Errorf("gesture.min_swipe must be positive, got %v", c.Gesture.MinSwipe))
	}
	if c.Gesture.MaxDrag <= 0 {
		errs = append(errs, fmt.Errorf("gesture.max_drag must be positive, got %v", c.Gesture.MaxDrag))
	}
	if c.TUI.CellWidth < 3 || c.TUI.CellHeight < 1 {
		errs = append(errs, fmt.Errorf("tui cell must be at least 3x1, got %dx%d", c.TUI.CellWidth, c.TUI.CellHeight))
	}
	if c.TUI.PointerScaleX <= 0 || c.TUI.PointerScaleY <= 0 {
		errs = append(errs, errors.New("tui pointer scales must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid sliding config: %w", errors.Join(errs...))
	}
	return nil
}
