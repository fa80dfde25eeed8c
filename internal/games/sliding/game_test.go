package sliding

import (
	"strings"
	"testing"

	"github.com/vovakirdan/slide-arcade/internal/config"
	"github.com/vovakirdan/slide-arcade/internal/core"
	"github.com/vovakirdan/slide-arcade/internal/registry"
)

// newSolvedGame returns an 80x24 game that starts on the solved board.
// With the default layout the grid spans columns 29-49 and rows 3-11,
// so tile index 1 is centered at (39, 4).
func newSolvedGame(t *testing.T) *Game {
	t.Helper()
	cfg := config.DefaultSlidingConfig()
	cfg.Board.ShuffleMoves = 0
	g := NewWithConfig(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	return g
}

func actionFrame(a core.Action) core.InputFrame {
	f := core.NewInputFrame()
	f.Set(a)
	return f
}

func pointerFrame(kind core.PointerKind, x, y int) core.InputFrame {
	f := core.NewInputFrame()
	f.AddPointer(core.PointerEvent{Kind: kind, X: x, Y: y})
	return f
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatal("sliding should be registered")
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Sliding Puzzle" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestKeySlides(t *testing.T) {
	tests := []struct {
		name   string
		action core.Action
		want   Board
		moved  bool
	}{
		{"up pulls the tile below", core.ActionUp, Board{3, 1, 2, 0, 4, 5, 6, 7, 8}, true},
		{"left pulls the tile to the right", core.ActionLeft, Board{1, 0, 2, 3, 4, 5, 6, 7, 8}, true},
		{"down has nothing above", core.ActionDown, SolvedBoard(3), false},
		{"right has nothing to the left", core.ActionRight, SolvedBoard(3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newSolvedGame(t)
			res := g.Step(actionFrame(tt.action))

			if res.Changed != tt.moved {
				t.Errorf("Changed = %v, want %v", res.Changed, tt.moved)
			}
			if got := g.Puzzle().Tiles; !got.Equal(tt.want) {
				t.Errorf("tiles = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeysWinAndRestart(t *testing.T) {
	g := newSolvedGame(t)

	g.Step(actionFrame(core.ActionLeft))
	res := g.Step(actionFrame(core.ActionRight))

	if !res.State.GameOver || res.State.Score != 2 {
		t.Fatalf("State = %+v, want won in 2 moves", res.State)
	}

	// Moves are ignored once won.
	if res := g.Step(actionFrame(core.ActionLeft)); res.Changed {
		t.Error("move after win should change nothing")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "You Won!") || !strings.Contains(out, "Completed in 2 moves") {
		t.Errorf("victory overlay missing:\n%s", out)
	}

	res = g.Step(actionFrame(core.ActionRestart))
	if !res.Changed || res.State.GameOver || res.State.Score != 0 {
		t.Errorf("after restart State = %+v", res.State)
	}
}

func TestEmptyFrameChangesNothing(t *testing.T) {
	g := newSolvedGame(t)
	if res := g.Step(core.NewInputFrame()); res.Changed {
		t.Error("an empty frame should not report a change")
	}
}

func TestPointerClickMovesTile(t *testing.T) {
	g := newSolvedGame(t)

	g.Step(pointerFrame(core.PointerDown, 39, 4))
	g.Step(pointerFrame(core.PointerUp, 39, 4))

	s := g.Puzzle()
	if s.Moves != 1 || !s.Tiles.Equal(Board{1, 0, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("after click tiles=%v moves=%d", s.Tiles, s.Moves)
	}
}

func TestPointerClickOnDistantTile(t *testing.T) {
	g := newSolvedGame(t)

	// Index 8 is the bottom-right cell, far from the empty slot.
	g.Step(pointerFrame(core.PointerDown, 46, 10))
	g.Step(pointerFrame(core.PointerUp, 46, 10))

	if s := g.Puzzle(); s.Moves != 0 {
		t.Errorf("clicking a distant tile moved it: %v", s.Tiles)
	}
}

func TestPointerSwipe(t *testing.T) {
	g := newSolvedGame(t)

	g.Step(pointerFrame(core.PointerDown, 39, 4))
	res := g.Step(pointerFrame(core.PointerMove, 33, 4))
	if !res.Changed {
		t.Error("dragging should request a redraw")
	}

	snap := g.Snapshot()
	if snap.Drag == nil || snap.Drag.Tile != 1 || snap.Drag.DX != -60 || snap.Drag.DY != 0 {
		t.Errorf("Drag = %+v, want tile 1 dx -60", snap.Drag)
	}

	g.Step(pointerFrame(core.PointerUp, 33, 4))
	s := g.Puzzle()
	if s.Moves != 1 || s.EmptyIndex() != 1 {
		t.Errorf("after swipe tiles=%v moves=%d", s.Tiles, s.Moves)
	}
	if g.Snapshot().Drag != nil {
		t.Error("drag should end on release")
	}
}

func TestPointerRejectedSwipeIsNotClick(t *testing.T) {
	// Index 3 sits below the empty slot and spans columns 29-35, rows 6-8.
	tests := []struct {
		name         string
		downX, downY int
		upX, upY     int
	}{
		{"away from the empty slot", 29, 7, 34, 7},
		{"too short toward the empty slot", 31, 8, 31, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newSolvedGame(t)

			g.Step(pointerFrame(core.PointerDown, tt.downX, tt.downY))
			g.Step(pointerFrame(core.PointerMove, tt.upX, tt.upY))
			g.Step(pointerFrame(core.PointerUp, tt.upX, tt.upY))

			s := g.Puzzle()
			if s.Moves != 0 || !s.Tiles.Equal(SolvedBoard(3)) {
				t.Errorf("rejected swipe moved a tile: tiles=%v moves=%d", s.Tiles, s.Moves)
			}
		})
	}
}

func TestPointerLeaveFinishesSwipe(t *testing.T) {
	g := newSolvedGame(t)

	g.Step(pointerFrame(core.PointerDown, 39, 4))
	g.Step(pointerFrame(core.PointerMove, 32, 4))
	g.Step(pointerFrame(core.PointerLeave, 0, 0))

	if s := g.Puzzle(); s.Moves != 1 {
		t.Errorf("leave after a long drag should move, got moves=%d", s.Moves)
	}
}

func TestPointerOutsideBoard(t *testing.T) {
	g := newSolvedGame(t)

	g.Step(pointerFrame(core.PointerDown, 2, 2))
	g.Step(pointerFrame(core.PointerUp, 2, 2))

	if s := g.Puzzle(); s.Moves != 0 {
		t.Errorf("press outside the board moved a tile: %v", s.Tiles)
	}
}

func TestSameSeedSameBoard(t *testing.T) {
	cfg := config.DefaultSlidingConfig()
	a, b := NewWithConfig(cfg), NewWithConfig(cfg)
	a.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 99})
	b.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 99})

	if !a.Puzzle().Tiles.Equal(b.Puzzle().Tiles) {
		t.Errorf("same seed gave %v and %v", a.Puzzle().Tiles, b.Puzzle().Tiles)
	}
	if !IsSolvable(a.Puzzle().Tiles, cfg.Board.Size) {
		t.Errorf("board %v is not solvable", a.Puzzle().Tiles)
	}
}

func TestRenderHUD(t *testing.T) {
	g := newSolvedGame(t)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"SLIDING PUZZLE", "Moves: 0", "3x3"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	// Tile 1 is drawn in its cell with its palette color.
	if c := screen.GetCell(39, 4); c.Rune != '1' || c.Color != TileColor(1) {
		t.Errorf("cell (39,4) = %+v, want tile 1", c)
	}
}

func TestSnapshot(t *testing.T) {
	g := newSolvedGame(t)
	g.Step(actionFrame(core.ActionLeft))

	snap := g.Snapshot()
	if snap.Size != 3 || snap.Moves != 1 || snap.Won || snap.Phase != "playing" {
		t.Errorf("Snapshot() = %+v", snap)
	}
	if len(snap.ValidMoves) != 3 {
		t.Errorf("ValidMoves = %v, want 3 neighbours of index 1", snap.ValidMoves)
	}

	// The snapshot owns its tiles.
	snap.Tiles[0] = 42
	if g.Puzzle().TileAt(0) == 42 {
		t.Error("Snapshot() shares tiles with the game")
	}
}

func TestTileColor(t *testing.T) {
	if TileColor(Empty) != core.ColorGray {
		t.Error("empty slot should be gray")
	}
	if TileColor(1) != core.ColorRed || TileColor(9) != core.ColorRed {
		t.Error("palette should start with red and cycle every 8 tiles")
	}
}
