package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ShuffleMovesForPreset returns how many random moves scramble the board
// for a preset. Fixed and unknown presets return fallback unchanged.
func ShuffleMovesForPreset(preset DifficultyPreset, fallback int) int {
	switch preset {
	case DifficultyEasy:
		return 30
	case DifficultyNormal:
		return 100
	case DifficultyHard:
		return 250
	default:
		return fallback
	}
}

// IsFixedPreset returns true if the preset keeps the configured shuffle depth.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplySlidingPreset modifies the config based on a difficulty preset.
func ApplySlidingPreset(cfg *SlidingConfig, preset DifficultyPreset) {
	if preset == "" || IsFixedPreset(preset) {
		return
	}
	cfg.Board.ShuffleMoves = ShuffleMovesForPreset(preset, cfg.Board.ShuffleMoves)
}
