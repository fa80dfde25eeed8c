package config

import (
	_ "embed"
)

//go:embed defaults/sliding.yaml
var defaultSlidingYAML []byte

// DefaultSlidingConfig returns the default sliding puzzle configuration.
func DefaultSlidingConfig() SlidingConfig {
	return SlidingConfig{
		Board: BoardConfig{
			Size:         3,
			ShuffleMoves: 100,
		},
		Gesture: GestureConfig{
			MinSwipe: 50,
			MaxDrag:  150,
		},
		TUI: TUIConfig{
			CellWidth:     7,
			CellHeight:    3,
			PointerScaleX: 10,
			PointerScaleY: 20,
		},
		Web: WebConfig{
			EmptyColor: "#2d3436",
			TileColors: map[int]string{
				1: "#ff6b6b", // Red
				2: "#feca57", // Orange
				3: "#48dbfb", // Cyan
				4: "#ff9ff3", // Pink
				5: "#54a0ff", // Blue
				6: "#5f27cd", // Purple
				7: "#00d2d3", // Teal
				8: "#1dd1a1", // Green
			},
		},
	}
}
