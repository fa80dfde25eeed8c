package main

import (
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/slide-arcade/internal/core"
	"github.com/vovakirdan/slide-arcade/internal/games/sliding"
	"github.com/vovakirdan/slide-arcade/internal/platform/tui"
	"github.com/vovakirdan/slide-arcade/internal/registry"
	"github.com/vovakirdan/slide-arcade/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in this terminal",
	Long: `Start a shuffled puzzle in the terminal.

Controls:
  Arrows/WASD  - Slide the tile next to the empty slot
  Mouse        - Click a tile, or drag it toward the empty slot
  R/N          - New game (any time)
  Ctrl+S       - Save a screenshot
  ?            - Toggle help
  Q/Esc        - Quit

Difficulty options:
  easy   - 30 shuffle moves
  normal - 100 shuffle moves
  hard   - 250 shuffle moves
  fixed  - Use the config's shuffle_moves

Examples:
  slide play
  slide play --difficulty hard
  slide play --seed 42
  slide play --config ./my-sliding.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with results (default: current user)")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := sliding.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		exitf("unknown game %q\nRun 'slide list' to see available games.", gameID)
	}
	if _, err := loadConfig(); err != nil {
		exitf("%v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	game, err := registry.Create(gameID)
	if err != nil {
		exitf("creating game: %v", err)
	}

	var saver storage.ResultSaver
	store, err := openStore()
	if err != nil {
		// The puzzle still works; results are just not recorded.
		logger.Warn("could not open results database", "error", err)
	} else {
		saver = store
		defer store.Close()
	}

	cfg := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}
	if err := tui.Run(game, saver, playerName(), cfg); err != nil {
		exitf("running game: %v", err)
	}
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}
