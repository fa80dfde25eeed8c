package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/slide-arcade/internal/platform/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the puzzle to MCP clients over stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout.

Tools: board_state, valid_moves, move_tile, swipe, new_game, best_results.
Logs go to stderr so they never mix with the protocol stream.

Example client configuration:
  {"command": "slide", "args": ["mcp", "--difficulty", "easy"]}`,
	Run: runMCP,
}

func runMCP(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}

	opts := mcpserver.Options{
		Config: cfg,
		Logger: logger,
		Seed:   flagSeed,
		Name:   "Slide Arcade",
		Ver:    version,
	}
	store, err := openStore()
	if err != nil {
		logger.Warn("results will not be recorded", "error", err)
	} else {
		opts.Store = store
		defer store.Close()
	}

	if err := mcpserver.NewServer(opts).Serve(); err != nil {
		exitf("%v", err)
	}
}
