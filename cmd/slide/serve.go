package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/slide-arcade/internal/games/sliding"
	"github.com/vovakirdan/slide-arcade/internal/platform/tui"
	"github.com/vovakirdan/slide-arcade/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and solve puzzles.

Each SSH connection gets its own puzzle. Results are recorded under the
SSH user name in the server's database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.slide/host_key

Examples:
  slide serve                           # Listen on :23234 with auto-generated key
  slide serve --ssh :2222               # Listen on port 2222
  slide serve --host-key ./my_host_key  # Use specific host key
  slide serve --db ./results.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	if _, err := loadConfig(); err != nil {
		exitf("%v", err)
	}

	store, err := openStore()
	if err != nil {
		exitf("opening results database: %v", err)
	}
	defer store.Close()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		GameID:      sliding.GameID,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	var saver storage.ResultSaver = store
	server, err := tui.NewSSHServer(cfg, saver, logger)
	if err != nil {
		exitf("creating server: %v", err)
	}

	fmt.Printf("Starting SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		exitf("server: %v", err)
	}
}
