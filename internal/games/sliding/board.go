// Package sliding implements the sliding-tile puzzle: an N×N board with one
// empty slot, a move/win state machine, and a swipe gesture interpreter.
package sliding

import (
	"math/rand"
	"strconv"
	"strings"
)

const (
	// DefaultSize is the classic 3x3 (8-puzzle) board.
	DefaultSize = 3

	// DefaultShuffleMoves is how many random legal moves scramble a new board.
	DefaultShuffleMoves = 100

	// Empty is the value of the empty slot.
	Empty = 0
)

// Board is a row-major sequence of N*N tile values. 0 is the empty slot.
type Board []int

// SolvedBoard returns the identity arrangement [0, 1, ..., n*n-1].
func SolvedBoard(n int) Board {
	b := make(Board, n*n)
	for i := range b {
		b[i] = i
	}
	return b
}

// Clone returns an independent copy of the board.
func (b Board) Clone() Board {
	return append(Board(nil), b...)
}

// EmptyIndex returns the index of the empty slot, or -1 if there is none.
func (b Board) EmptyIndex() int {
	for i, v := range b {
		if v == Empty {
			return i
		}
	}
	return -1
}

// IsSolved reports whether the board is the identity arrangement.
func (b Board) IsSolved() bool {
	for i, v := range b {
		if v != i {
			return false
		}
	}
	return true
}

// IsPermutation reports whether every value 0..len-1 appears exactly once.
func (b Board) IsPermutation() bool {
	seen := make([]bool, len(b))
	for _, v := range b {
		if v < 0 || v >= len(b) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Equal reports whether two boards hold the same values in the same order.
func (b Board) Equal(other Board) bool {
	if len(b) != len(other) {
		return false
	}
	for i := range b {
		if b[i] != other[i] {
			return false
		}
	}
	return true
}

// String formats the board row by row, e.g. "1 2 _ / 4 5 3 / 7 8 6".
func (b Board) String() string {
	n := sideOf(len(b))
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			if n > 0 && i%n == 0 {
				sb.WriteString(" / ")
			} else {
				sb.WriteByte(' ')
			}
		}
		if v == Empty {
			sb.WriteByte('_')
		} else {
			sb.WriteString(strconv.Itoa(v))
		}
	}
	return sb.String()
}

// IsSolvable reports whether the board can reach the identity by sliding.
// Every slide is a transposition with the empty slot and shifts the empty
// slot's distance from its home (index 0) by one, so the permutation parity
// must match the parity of that distance.
func IsSolvable(b Board, n int) bool {
	if len(b) != n*n || !b.IsPermutation() {
		return false
	}
	inversions := 0
	for i := 0; i < len(b); i++ {
		for j := i + 1; j < len(b); j++ {
			if b[i] > b[j] {
				inversions++
			}
		}
	}
	row, col := RowCol(b.EmptyIndex(), n)
	return inversions%2 == (row+col)%2
}

// RowCol maps a board index to its row and column.
func RowCol(idx, n int) (row, col int) {
	return idx / n, idx % n
}

// ValidMoves returns the indices orthogonally adjacent to emptyIndex, in
// up, down, left, right order. Out-of-range input yields nil.
func ValidMoves(emptyIndex, n int) []int {
	if n <= 0 || emptyIndex < 0 || emptyIndex >= n*n {
		return nil
	}
	row, col := RowCol(emptyIndex, n)
	moves := make([]int, 0, 4)

	// Up
	if row > 0 {
		moves = append(moves, emptyIndex-n)
	}
	// Down
	if row < n-1 {
		moves = append(moves, emptyIndex+n)
	}
	// Left
	if col > 0 {
		moves = append(moves, emptyIndex-1)
	}
	// Right
	if col < n-1 {
		moves = append(moves, emptyIndex+1)
	}

	return moves
}

// IsValidMove reports whether target is adjacent to emptyIndex.
func IsValidMove(emptyIndex, target, n int) bool {
	for _, m := range ValidMoves(emptyIndex, n) {
		if m == target {
			return true
		}
	}
	return false
}

// ShuffleBoard walks the empty slot through steps random legal moves,
// starting from the solved board. The result is always solvable.
func ShuffleBoard(rng *rand.Rand, n, steps int) Board {
	b := SolvedBoard(n)
	empty := 0
	for range steps {
		moves := ValidMoves(empty, n)
		if len(moves) == 0 {
			break
		}
		target := moves[rng.Intn(len(moves))]
		b[empty], b[target] = b[target], b[empty]
		empty = target
	}
	return b
}

// sideOf returns n for a board of n*n cells, or 0 if length is not square.
func sideOf(length int) int {
	for n := 1; n*n <= length; n++ {
		if n*n == length {
			return n
		}
	}
	return 0
}
