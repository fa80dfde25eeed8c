package sliding

import (
	"math/rand"

	"github.com/vovakirdan/slide-arcade/internal/config"
	"github.com/vovakirdan/slide-arcade/internal/core"
	"github.com/vovakirdan/slide-arcade/internal/registry"
)

// GameID is the registry identifier of the sliding puzzle.
const GameID = "sliding"

// Game adapts the puzzle to the registry contract: keys and pointer
// events in, a character screen out.
type Game struct {
	cfg     config.SlidingConfig
	runtime core.RuntimeConfig

	mgr     *Manager
	gesture *Interpreter
	unsub   func()
	dirty   bool // Set by the manager listener when the board changes

	pressTile int // Tile under the last pointer press, -1 if none
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = "" // Use config default
	}
}

// LoadConfig resolves the active configuration the same way Reset does.
func LoadConfig() config.SlidingConfig {
	cfg, err := config.LoadSliding(configPath)
	if err != nil {
		cfg = config.DefaultSlidingConfig()
	}
	config.ApplySlidingPreset(&cfg, difficultyPreset)
	return cfg
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// New creates a sliding puzzle using the active configuration.
func New() *Game {
	return NewWithConfig(LoadConfig())
}

// NewWithConfig creates a sliding puzzle with an explicit configuration.
func NewWithConfig(cfg config.SlidingConfig) *Game {
	return &Game{cfg: cfg, pressTile: -1}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Sliding Puzzle"
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.SlidingConfig {
	return g.cfg
}

// Reset starts a fresh shuffled board seeded from cfg.Seed.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.unsub != nil {
		g.unsub()
	}

	rng := rand.New(rand.NewSource(runtime.Seed))
	g.mgr = NewManager(rng, g.cfg.Board.Size, g.cfg.Board.ShuffleMoves)
	g.gesture = NewInterpreter(g.cfg.Gesture.MinSwipe, g.cfg.Gesture.MaxDrag)
	g.unsub = g.mgr.Subscribe(func(State) { g.dirty = true })
	g.pressTile = -1
	g.dirty = false
}

// Resize updates the screen size used for layout and hit testing.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
}

// Manager exposes the board state manager, for subscribers.
func (g *Game) Manager() *Manager {
	return g.mgr
}

// Puzzle returns a copy of the current board state.
func (g *Game) Puzzle() State {
	return g.mgr.Snapshot()
}

// NewGame reshuffles the board, keeping the RNG stream.
func (g *Game) NewGame() {
	g.gesture.Cancel()
	g.pressTile = -1
	g.mgr.Reset()
}

// Step handles one input event. There is no clock: a frame without
// actions or pointer events changes nothing.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.dirty = false
	dragging := g.gesture.Active()

	if in.Has(core.ActionRestart) {
		g.NewGame()
		return core.StepResult{State: g.State(), Changed: true}
	}

	switch {
	case in.Has(core.ActionUp):
		g.slide(DirUp)
	case in.Has(core.ActionDown):
		g.slide(DirDown)
	case in.Has(core.ActionLeft):
		g.slide(DirLeft)
	case in.Has(core.ActionRight):
		g.slide(DirRight)
	}

	for _, ev := range in.Pointers {
		g.handlePointer(ev)
	}

	changed := g.dirty || dragging || g.gesture.Active()
	return core.StepResult{State: g.State(), Changed: changed}
}

// slide moves the tile that sits on the far side of the empty slot in
// direction dir, so "left" pulls the right-hand neighbour left.
func (g *Game) slide(dir Direction) {
	s := g.mgr.Snapshot()
	tile, ok := keyTarget(s, dir)
	if !ok {
		return
	}
	g.mgr.Apply(tile)
}

// keyTarget returns the tile a directional key would move.
func keyTarget(s State, dir Direction) (int, bool) {
	empty := s.EmptyIndex()
	if empty < 0 || dir == DirNone {
		return -1, false
	}
	tile := empty - dir.Delta(s.Size)
	if !IsValidMove(empty, tile, s.Size) {
		return -1, false
	}
	return tile, true
}

func (g *Game) handlePointer(ev core.PointerEvent) {
	px, py := g.toPixels(ev.X, ev.Y)

	switch ev.Kind {
	case core.PointerDown:
		g.pressTile = g.tileAt(ev.X, ev.Y)
		if g.pressTile >= 0 {
			g.gesture.Start(g.mgr.Snapshot(), g.pressTile, px, py)
		} else {
			g.gesture.Cancel()
		}

	case core.PointerMove:
		if g.gesture.Active() {
			g.gesture.Update(g.mgr.Snapshot(), px, py)
		}

	case core.PointerUp:
		pressed := g.pressTile
		g.pressTile = -1
		res := g.gesture.Finish(g.mgr, px, py)
		// Only a release that never left the press point is a click; a
		// rejected swipe moves nothing.
		if res.Reason == ReasonNoDisplacement && pressed >= 0 && g.tileAt(ev.X, ev.Y) == pressed {
			g.mgr.Apply(pressed)
		}

	case core.PointerLeave:
		g.pressTile = -1
		g.gesture.FinishAtLast(g.mgr)
	}
}

// toPixels converts a terminal cell to gesture pixels.
func (g *Game) toPixels(x, y int) (float64, float64) {
	return float64(x) * g.cfg.TUI.PointerScaleX, float64(y) * g.cfg.TUI.PointerScaleY
}

// State returns the current game state. Score is the move count.
func (g *Game) State() core.GameState {
	s := g.mgr.Snapshot()
	return core.GameState{
		Score:    s.Moves,
		GameOver: s.Won,
	}
}

// Controls returns the key help line.
func (g *Game) Controls() string {
	return "Arrows/WASD: Slide | Mouse: Drag or click a tile | R/N: New game | Q: Quit"
}
