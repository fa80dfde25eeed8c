package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slide-arcade/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the puzzle to browsers",
	Long: `Start an HTTP server with a touch-friendly puzzle page.

Each browser tab plays its own puzzle over a websocket. Tap a tile or drag
it toward the empty slot. Solved puzzles are recorded as web:<address>.

Endpoints:
  /              - The puzzle page
  /ws            - Game websocket
  /api/results   - Best results as JSON
  /api/config    - Board size, swipe thresholds and colours

Examples:
  slide web
  slide web --addr 127.0.0.1:9000`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}

	opts := web.Options{Config: cfg, Logger: logger, Seed: flagSeed}
	store, err := openStore()
	if err != nil {
		logger.Warn("results will not be recorded", "error", err)
	} else {
		opts.Store = store
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving the puzzle on http://%s\n", flagWebAddr)
	fmt.Println("Press Ctrl+C to stop")
	if err := web.NewServer(opts).ListenAndServe(ctx, flagWebAddr); err != nil {
		exitf("%v", err)
	}
}
