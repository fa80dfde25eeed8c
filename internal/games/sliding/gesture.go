package sliding

import "github.com/vovakirdan/slide-arcade/internal/core"

const (
	// DefaultMinSwipe is the travel, in pointer pixels, a swipe needs to count.
	DefaultMinSwipe = 50.0

	// DefaultMaxDrag caps the drag preview offset, in pointer pixels.
	DefaultMaxDrag = 150.0
)

// Direction is the intent of a swipe.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Delta returns the index change of moving one cell in this direction.
func (d Direction) Delta(n int) int {
	switch d {
	case DirUp:
		return -n
	case DirDown:
		return n
	case DirLeft:
		return -1
	case DirRight:
		return 1
	default:
		return 0
	}
}

// Point is a pointer position in pixels.
type Point struct {
	X, Y float64
}

// Offset is the drag preview translation of the held tile, in pixels.
type Offset struct {
	X, Y float64
}

// IsZero reports whether the offset moves nothing.
func (o Offset) IsZero() bool {
	return o.X == 0 && o.Y == 0
}

// Session is the short-lived record of one drag, from press to release.
type Session struct {
	Tile   int    // Index of the tile the gesture started on
	Start  Point  // Anchor position
	Last   Point  // Most recent known position
	Offset Offset // Constrained preview offset from the latest update
}

// Reason explains how a finished gesture was resolved.
type Reason int

const (
	ReasonAccepted       Reason = iota
	ReasonNoSession             // No gesture was in progress
	ReasonWon                   // Puzzle already solved
	ReasonNoDisplacement        // Pointer never moved from the anchor
	ReasonTooShort              // Travel below the swipe threshold
	ReasonNotTowardEmpty        // Swipe direction does not lead into the empty slot
)

// String returns a short description of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonAccepted:
		return "accepted"
	case ReasonNoSession:
		return "no session"
	case ReasonWon:
		return "won"
	case ReasonNoDisplacement:
		return "no displacement"
	case ReasonTooShort:
		return "too short"
	case ReasonNotTowardEmpty:
		return "not toward empty"
	default:
		return "unknown"
	}
}

// Result describes a finished gesture. Target is only meaningful when a
// direction was determined.
type Result struct {
	Reason    Reason
	Tile      int
	Direction Direction
	Target    int
}

// Accepted reports whether the gesture should move Tile into the empty slot.
func (r Result) Accepted() bool {
	return r.Reason == ReasonAccepted
}

// Interpreter turns press/drag/release samples into validated moves.
// It holds at most one Session at a time.
type Interpreter struct {
	MinSwipe float64
	MaxDrag  float64

	session *Session
}

// NewInterpreter creates an interpreter with the given thresholds.
// Non-positive values fall back to the defaults.
func NewInterpreter(minSwipe, maxDrag float64) *Interpreter {
	if minSwipe <= 0 {
		minSwipe = DefaultMinSwipe
	}
	if maxDrag <= 0 {
		maxDrag = DefaultMaxDrag
	}
	return &Interpreter{MinSwipe: minSwipe, MaxDrag: maxDrag}
}

// Active reports whether a gesture is in progress.
func (in *Interpreter) Active() bool {
	return in.session != nil
}

// Session returns a copy of the current session, if any.
func (in *Interpreter) Session() (Session, bool) {
	if in.session == nil {
		return Session{}, false
	}
	return *in.session, true
}

// Start opens a session for the tile at index tile, anchored at (x, y).
// It is rejected when the tile is out of range or empty, or the puzzle is
// won. A new start replaces any session left open.
func (in *Interpreter) Start(s State, tile int, x, y float64) bool {
	in.session = nil
	if s.Won {
		return false
	}
	if v := s.TileAt(tile); v < 0 || v == Empty {
		return false
	}

	p := Point{X: x, Y: y}
	in.session = &Session{Tile: tile, Start: p, Last: p}
	return true
}

// Update records the pointer at (x, y) and recomputes the drag preview.
// Only movement along the row or column toward the empty slot survives, and
// it is limited to MaxDrag. Returns false when there is no session or the
// puzzle is won.
func (in *Interpreter) Update(s State, x, y float64) (Offset, bool) {
	if in.session == nil || s.Won {
		return Offset{}, false
	}

	in.session.Last = Point{X: x, Y: y}
	dx := x - in.session.Start.X
	dy := y - in.session.Start.Y
	in.session.Offset = in.constrain(s, in.session.Tile, dx, dy)
	return in.session.Offset, true
}

// End finishes the gesture with the pointer released at (x, y).
// The session is discarded whatever the outcome.
func (in *Interpreter) End(s State, x, y float64) Result {
	if in.session != nil {
		in.session.Last = Point{X: x, Y: y}
	}
	return in.EndAtLast(s)
}

// EndAtLast finishes the gesture using the last known pointer position,
// for pointers that left the surface before release.
func (in *Interpreter) EndAtLast(s State) Result {
	sess := in.session
	in.session = nil

	if sess == nil {
		return Result{Reason: ReasonNoSession, Tile: -1, Target: -1}
	}
	res := Result{Tile: sess.Tile, Target: -1}
	if s.Won {
		res.Reason = ReasonWon
		return res
	}

	dx := sess.Last.X - sess.Start.X
	dy := sess.Last.Y - sess.Start.Y
	if dx == 0 && dy == 0 {
		res.Reason = ReasonNoDisplacement
		return res
	}

	// Ties resolve to the horizontal axis.
	var travel float64
	if core.AbsF(dx) >= core.AbsF(dy) {
		travel = core.AbsF(dx)
		res.Direction = DirRight
		if dx < 0 {
			res.Direction = DirLeft
		}
	} else {
		travel = core.AbsF(dy)
		res.Direction = DirDown
		if dy < 0 {
			res.Direction = DirUp
		}
	}
	if travel < in.MinSwipe {
		res.Reason = ReasonTooShort
		return res
	}

	target, ok := swipeTarget(s, sess.Tile, res.Direction)
	res.Target = target
	if !ok || target != s.EmptyIndex() {
		res.Reason = ReasonNotTowardEmpty
		return res
	}

	res.Reason = ReasonAccepted
	return res
}

// Cancel discards the session without moving anything.
func (in *Interpreter) Cancel() {
	in.session = nil
}

// Finish ends the gesture at (x, y) and applies an accepted move to m.
func (in *Interpreter) Finish(m *Manager, x, y float64) Result {
	res := in.End(m.Snapshot(), x, y)
	if res.Accepted() {
		m.Apply(res.Tile)
	}
	return res
}

// FinishAtLast ends the gesture at the last known position and applies an
// accepted move to m.
func (in *Interpreter) FinishAtLast(m *Manager) Result {
	res := in.EndAtLast(m.Snapshot())
	if res.Accepted() {
		m.Apply(res.Tile)
	}
	return res
}

// constrain keeps only the offset component that points from the tile
// toward the empty slot along a shared row or column.
func (in *Interpreter) constrain(s State, tile int, dx, dy float64) Offset {
	n := s.Size
	tileRow, tileCol := RowCol(tile, n)
	emptyRow, emptyCol := RowCol(s.EmptyIndex(), n)

	var off Offset
	if tileRow == emptyRow {
		switch {
		case emptyCol < tileCol:
			off.X = core.ClampF(dx, -in.MaxDrag, 0)
		case emptyCol > tileCol:
			off.X = core.ClampF(dx, 0, in.MaxDrag)
		}
	}
	if tileCol == emptyCol {
		switch {
		case emptyRow < tileRow:
			off.Y = core.ClampF(dy, -in.MaxDrag, 0)
		case emptyRow > tileRow:
			off.Y = core.ClampF(dy, 0, in.MaxDrag)
		}
	}
	return off
}

// swipeTarget returns the cell a tile would slide into when swiped in dir.
// ok is false when the empty slot is not on that side of the tile along a
// shared row or column.
func swipeTarget(s State, tile int, dir Direction) (target int, ok bool) {
	n := s.Size
	tileRow, tileCol := RowCol(tile, n)
	emptyRow, emptyCol := RowCol(s.EmptyIndex(), n)

	switch dir {
	case DirLeft:
		ok = tileRow == emptyRow && tileCol > emptyCol
	case DirRight:
		ok = tileRow == emptyRow && tileCol < emptyCol
	case DirUp:
		ok = tileCol == emptyCol && tileRow > emptyRow
	case DirDown:
		ok = tileCol == emptyCol && tileRow < emptyRow
	}
	if !ok {
		return -1, false
	}
	return tile + dir.Delta(n), true
}
