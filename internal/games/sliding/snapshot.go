package sliding

// DragSnapshot describes the tile being dragged and its preview offset.
type DragSnapshot struct {
	Tile int     `json:"tile"`
	DX   float64 `json:"dx"`
	DY   float64 `json:"dy"`
}

// Snapshot captures the observable puzzle state for tests and transports.
type Snapshot struct {
	Size       int           `json:"size"`
	Tiles      []int         `json:"tiles"`
	Moves      int           `json:"moves"`
	Won        bool          `json:"won"`
	Phase      string        `json:"phase"`
	ValidMoves []int         `json:"validMoves"`
	Drag       *DragSnapshot `json:"drag,omitempty"`
}

// NewSnapshot builds a snapshot of s, including the drag preview when in
// holds an active session.
func NewSnapshot(s State, in *Interpreter) Snapshot {
	snap := Snapshot{
		Size:       s.Size,
		Tiles:      []int(s.Tiles.Clone()),
		Moves:      s.Moves,
		Won:        s.Won,
		Phase:      s.Phase().String(),
		ValidMoves: s.ValidMoves(),
	}
	if snap.ValidMoves == nil || s.Won {
		snap.ValidMoves = []int{}
	}
	if in != nil {
		if sess, ok := in.Session(); ok {
			snap.Drag = &DragSnapshot{Tile: sess.Tile, DX: sess.Offset.X, DY: sess.Offset.Y}
		}
	}
	return snap
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return NewSnapshot(g.mgr.Snapshot(), g.gesture)
}
