package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/slide-arcade/internal/config"
	"github.com/vovakirdan/slide-arcade/internal/core"
	"github.com/vovakirdan/slide-arcade/internal/games/sliding"
	"github.com/vovakirdan/slide-arcade/internal/platform/tui"
	"github.com/vovakirdan/slide-arcade/internal/registry"
	"github.com/vovakirdan/slide-arcade/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a difficulty, play, repeat",
	Long: `Start in interactive menu mode.

Choose a difficulty and press Enter to play. Quitting a puzzle returns to
the menu. Tab opens the best results.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - Best results
  Q            - Quit

Examples:
  slide menu
  slide menu --config ./my-sliding.yaml`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with results (default: current user)")
}

func runMenu(_ *cobra.Command, _ []string) {
	base, err := config.LoadSliding(flagConfig)
	if err != nil {
		exitf("%v", err)
	}
	items := tui.MenuItems(base.Board.ShuffleMoves)

	var saver storage.ResultSaver
	store, err := openStore()
	if err != nil {
		logger.Warn("could not open results database", "error", err)
	} else {
		saver = store
		defer store.Close()
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	cfg := core.RuntimeConfig{ScreenW: width, ScreenH: height, Seed: flagSeed}
	preset := config.DifficultyPreset(flagDifficulty)

	for {
		res, err := tui.RunMenu(items, preset, cfg)
		if err != nil {
			exitf("%v", err)
		}
		cfg = res.Config
		if res.Quit {
			return
		}

		if res.WantsScoreboard {
			if store == nil {
				continue
			}
			if err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH); err != nil {
				logger.Error("scoreboard failed", "error", err)
			}
			continue
		}

		preset = res.Preset
		sliding.SetDifficultyPreset(string(preset))
		game, err := registry.Create(sliding.GameID)
		if err != nil {
			exitf("creating game: %v", err)
		}

		if err := tui.Run(game, saver, playerName(), cfg); err != nil {
			logger.Error("game failed", "error", err)
		}

		// A fixed --seed replays the same board only for the first game.
		cfg.Seed = time.Now().UnixNano()
	}
}
