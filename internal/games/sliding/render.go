package sliding

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/slide-arcade/internal/core"
)

const hudHeight = 3

// tilePalette colors tiles by value, cycling for boards larger than 3x3.
var tilePalette = []core.Color{
	core.ColorRed,
	core.ColorOrange,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorTeal,
	core.ColorBlue,
	core.ColorPurple,
	core.ColorPink,
}

// TileColor returns the color of a tile value. The empty slot is gray.
func TileColor(v int) core.Color {
	if v <= Empty {
		return core.ColorGray
	}
	return tilePalette[(v-1)%len(tilePalette)]
}

// boardRect returns the screen area of the grid, centered horizontally.
func (g *Game) boardRect() core.Rect {
	n := g.mgr.Snapshot().Size
	w := n * g.cfg.TUI.CellWidth
	h := n * g.cfg.TUI.CellHeight
	x := max((g.runtime.ScreenW-w)/2, 0)
	return core.NewRect(x, hudHeight, w, h)
}

// tileRect returns the screen area of the cell at idx.
func (g *Game) tileRect(idx int) core.Rect {
	board := g.boardRect()
	row, col := RowCol(idx, g.mgr.Snapshot().Size)
	cw, ch := g.cfg.TUI.CellWidth, g.cfg.TUI.CellHeight
	return core.NewRect(board.X+col*cw, board.Y+row*ch, cw, ch)
}

// tileAt returns the cell index under screen position (x, y), or -1.
func (g *Game) tileAt(x, y int) int {
	board := g.boardRect()
	if !board.Contains(x, y) {
		return -1
	}
	n := g.mgr.Snapshot().Size
	col := (x - board.X) / g.cfg.TUI.CellWidth
	row := (y - board.Y) / g.cfg.TUI.CellHeight
	return row*n + col
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	s := g.mgr.Snapshot()
	board := g.boardRect()

	g.renderHUD(dst, s, board)

	sess, dragging := g.gesture.Session()
	dragging = dragging && !sess.Offset.IsZero()

	for i, v := range s.Tiles {
		r := g.tileRect(i)
		if v == Empty {
			drawEmpty(dst, r)
			continue
		}
		if dragging && i == sess.Tile {
			drawEmpty(dst, r)
			continue
		}
		drawTile(dst, r, v)
	}

	// The held tile is drawn last so it slides over its neighbours.
	if dragging {
		r := g.tileRect(sess.Tile)
		r.X += g.previewCells(sess.Offset.X, g.cfg.TUI.PointerScaleX, g.cfg.TUI.CellWidth)
		r.Y += g.previewCells(sess.Offset.Y, g.cfg.TUI.PointerScaleY, g.cfg.TUI.CellHeight)
		drawTile(dst, r, s.TileAt(sess.Tile))
	}

	if s.Won {
		cx, cy := board.Center()
		drawOverlay(dst, cx, cy,
			"You Won!",
			fmt.Sprintf("Completed in %d moves", s.Moves),
			"Press R for a new game",
		)
	}
}

// previewCells converts a pixel offset to whole cells, limited to one tile.
func (g *Game) previewCells(offset, scale float64, limit int) int {
	if scale <= 0 {
		return 0
	}
	cells := int(math.Round(offset / scale))
	return core.Clamp(cells, -limit, limit)
}

func (g *Game) renderHUD(dst *core.Screen, s State, board core.Rect) {
	dst.DrawTextCentered(0, "SLIDING PUZZLE")

	moves := fmt.Sprintf("Moves: %d", s.Moves)
	dst.DrawText(board.X, 1, moves)

	size := fmt.Sprintf("%dx%d", s.Size, s.Size)
	dst.DrawText(max(board.Right()-len(size), board.X+len(moves)+1), 1, size)
}

func drawTile(dst *core.Screen, r core.Rect, v int) {
	c := TileColor(v)
	label := strconv.Itoa(v)
	cx, cy := r.Center()

	if r.H < 3 {
		dst.SetColor(r.X, r.Y, '[', c)
		dst.SetColor(r.Right()-1, r.Y, ']', c)
		dst.DrawTextColor(cx-len(label)/2, cy, label, c)
		return
	}
	dst.DrawBox(r, c)
	dst.DrawTextColor(cx-len(label)/2, cy, label, c)
}

func drawEmpty(dst *core.Screen, r core.Rect) {
	dst.DrawRect(r, ' ', core.ColorDefault)
	cx, cy := r.Center()
	dst.SetColor(cx, cy, '·', core.ColorGray)
}

// drawOverlay draws a centered text box.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightYellow)

	for i, line := range lines {
		dst.DrawTextColor(centerX-len(line)/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}
