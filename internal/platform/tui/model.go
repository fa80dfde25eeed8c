// Package tui provides the Bubble Tea integration for the puzzle.
// The loop is event-driven: every key, mouse or focus message becomes one
// game Step, with no timer in between.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/slide-arcade/internal/config"
	"github.com/vovakirdan/slide-arcade/internal/core"
	"github.com/vovakirdan/slide-arcade/internal/registry"
	"github.com/vovakirdan/slide-arcade/internal/storage"
)

// helpHeight is the number of rows reserved under the board for help.
const helpHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running a game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     storage.ResultSaver
	logger    *log.Logger
	player    string
	config    core.RuntimeConfig
	keys      KeyMap
	help      help.Model
	gameState core.GameState
	started   time.Time
	quitting  bool
	saved     bool // Whether the result has been saved for the current win
}

// NewModel creates a new Bubble Tea model for the given game and starts it.
// store may be nil, in which case results are not recorded.
func NewModel(game registry.Game, store storage.ResultSaver, player string, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 0)),
		store:  store,
		logger: log.Default(),
		player: player,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	m.help.Width = cfg.ScreenW

	game.Reset(cfg)
	m.gameState = game.State()
	m.started = time.Now()
	return m
}

// WithLogger returns a copy of the model that logs through l.
func (m Model) WithLogger(l *log.Logger) Model {
	m.logger = l
	return m
}

// Init implements tea.Model. Nothing is scheduled: the game only moves on input.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		ev, ok := MapMouse(msg)
		if !ok {
			return m, nil
		}
		frame := core.NewInputFrame()
		frame.AddPointer(ev)
		return m.step(frame), nil

	case tea.BlurMsg:
		// The pointer left the terminal mid-drag.
		frame := core.NewInputFrame()
		frame.AddPointer(core.PointerEvent{Kind: core.PointerLeave})
		return m.step(frame), nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	frame := core.NewInputFrame()
	if m.keys.MapKeyToFrame(msg, &frame) {
		m.quitting = true
		return m, tea.Quit
	}
	if frame.Empty() {
		return m, nil
	}
	return m.step(frame), nil
}

// handleResize processes window resize events without losing the board.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpHeight, 0))
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, max(msg.Height-helpHeight, 0))
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m
}

// step feeds one input event to the game and records a finished game once.
func (m Model) step(frame core.InputFrame) Model {
	result := m.game.Step(frame)

	if frame.Has(core.ActionRestart) {
		m.started = time.Now()
		m.saved = false
	}
	m.gameState = result.State

	if m.gameState.GameOver && !m.saved {
		m.saveResult()
		m.saved = true
	}
	return m
}

// saveResult stores the finished game. Failures are logged, not fatal.
func (m Model) saveResult() {
	if m.store == nil {
		return
	}
	r := storage.Result{
		GameID:   m.game.ID(),
		Player:   m.player,
		Moves:    m.gameState.Score,
		Duration: time.Since(m.started),
	}
	if _, err := m.store.SaveResult(r); err != nil {
		m.logger.Warn("could not save result", "game", r.GameID, "player", r.Player, "error", err)
		return
	}
	m.logger.Debug("result saved", "game", r.GameID, "player", r.Player, "moves", r.Moves)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := config.DataPath("screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// GameState returns the state after the last processed event.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store storage.ResultSaver, player string, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, player, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Press, drag and release events
		tea.WithReportFocus(),     // Blur ends a drag that left the window
	)

	_, err := p.Run()
	return err
}
