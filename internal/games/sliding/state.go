package sliding

import "math/rand"

// Phase is the puzzle's coarse state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseWon
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of one puzzle: the tiles, how many moves
// were accepted, and whether the board has been solved.
// Transitions return a new State and never modify the receiver.
type State struct {
	Size  int
	Tiles Board
	Moves int
	Won   bool
}

// NewState returns a freshly shuffled puzzle of the given size.
func NewState(rng *rand.Rand, size, shuffleMoves int) State {
	return State{
		Size:  size,
		Tiles: ShuffleBoard(rng, size, shuffleMoves),
	}
}

// Reset discards the current board and starts over with a new shuffle.
// Always allowed, including after a win.
func (s State) Reset(rng *rand.Rand, shuffleMoves int) State {
	return NewState(rng, s.Size, shuffleMoves)
}

// Phase returns PhaseWon once the puzzle is solved.
func (s State) Phase() Phase {
	if s.Won {
		return PhaseWon
	}
	return PhasePlaying
}

// EmptyIndex returns the index of the empty slot.
func (s State) EmptyIndex() int {
	return s.Tiles.EmptyIndex()
}

// ValidMoves returns the tile indices that may slide into the empty slot.
func (s State) ValidMoves() []int {
	return ValidMoves(s.EmptyIndex(), s.Size)
}

// CanMove reports whether ApplyMove(target) would be accepted.
func (s State) CanMove(target int) bool {
	return !s.Won && IsValidMove(s.EmptyIndex(), target, s.Size)
}

// ApplyMove slides the tile at target into the empty slot.
// It is a no-op, returning the receiver and false, when the puzzle is won or
// target is not adjacent to the empty slot.
func (s State) ApplyMove(target int) (State, bool) {
	if !s.CanMove(target) {
		return s, false
	}

	empty := s.EmptyIndex()
	next := s.Clone()
	next.Tiles[empty], next.Tiles[target] = next.Tiles[target], next.Tiles[empty]
	next.Moves++
	next.Won = next.Tiles.IsSolved()
	return next, true
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	s.Tiles = s.Tiles.Clone()
	return s
}

// TileAt returns the tile value at idx, or -1 when idx is out of range.
func (s State) TileAt(idx int) int {
	if idx < 0 || idx >= len(s.Tiles) {
		return -1
	}
	return s.Tiles[idx]
}
