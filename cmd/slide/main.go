// slide is a sliding-tile puzzle for the terminal, SSH, the browser and MCP
// agents.
//
// Usage:
//
//	slide list              - List available games
//	slide play              - Play in this terminal
//	slide menu              - Pick a difficulty, play, repeat
//	slide serve             - Start SSH server for remote play
//	slide web               - Serve the puzzle to browsers
//	slide mcp               - Serve the puzzle to MCP clients over stdio
//	slide scores            - Show the best results
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible shuffles
//	--db <path>           - Set database path (default: ~/.slide/results.db)
//	--config <path>       - Load a custom puzzle config YAML
//	--difficulty <name>   - Shuffle preset: easy, normal, hard, fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/slide-arcade/internal/config"
	"github.com/vovakirdan/slide-arcade/internal/games/sliding"
	"github.com/vovakirdan/slide-arcade/internal/storage"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string

	logger *log.Logger
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slide",
	Short: "Slide Arcade - the sliding-tile puzzle",
	Long: `Slide Arcade is the classic 8-puzzle: slide numbered tiles into the
empty slot until they are back in order.

Available commands:
  list     - Show all available games
  play     - Play in this terminal
  menu     - Interactive difficulty picker
  serve    - Start SSH server for remote play
  web      - Serve the puzzle to browsers
  mcp      - Serve the puzzle to MCP clients over stdio
  scores   - View the best results

Examples:
  slide play
  slide play --difficulty easy
  slide serve --ssh :2222
  slide web --addr :8080
  slide scores`,
	PersistentPreRunE: setup,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", config.DataPath("results.db"), "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom puzzle config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Shuffle preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup builds the logger and hands config choices to the game package.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "slide",
	})
	log.SetDefault(logger)

	switch config.DifficultyPreset(flagDifficulty) {
	case "", config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
	default:
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	sliding.SetConfigPath(flagConfig)
	sliding.SetDifficultyPreset(flagDifficulty)
	return nil
}

// loadConfig resolves the puzzle config, reporting a broken custom file
// instead of silently falling back to defaults.
func loadConfig() (config.SlidingConfig, error) {
	cfg, err := config.LoadSliding(flagConfig)
	if err != nil {
		return config.SlidingConfig{}, err
	}
	config.ApplySlidingPreset(&cfg, config.DifficultyPreset(flagDifficulty))
	return cfg, nil
}

// openStore opens the results database. Surfaces that only record results
// keep working without it, so callers decide whether a failure is fatal.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened results database", "path", flagDBPath)
	return store, nil
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
