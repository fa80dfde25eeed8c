// Package mcpserver exposes one sliding puzzle to MCP clients over stdio.
// Agents read the board and play it with the same move and swipe rules as
// the terminal and browser surfaces.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/slide-arcade/internal/config"
	"github.com/vovakirdan/slide-arcade/internal/games/sliding"
	"github.com/vovakirdan/slide-arcade/internal/storage"
)

// Player is recorded as the owner of results solved through this server.
const Player = "mcp"

// ResultStore is the part of the results database the MCP surface uses.
type ResultStore interface {
	storage.ResultSaver
	BestResults(gameID string, limit int) ([]storage.Result, error)
}

// Options configures a Server.
type Options struct {
	Config config.SlidingConfig
	Store  ResultStore // Optional
	Logger *log.Logger // Optional, defaults to log.Default()
	Seed   int64       // 0 uses the clock
	Name   string      // Reported server name
	Ver    string      // Reported server version
}

// Server owns the shared puzzle and the MCP tool registrations.
type Server struct {
	mu      sync.Mutex
	mgr     *sliding.Manager
	gesture *sliding.Interpreter
	started time.Time
	saved   bool

	store     ResultStore
	logger    *log.Logger
	mcpServer *server.MCPServer
}

// toolResponse is the JSON body every game tool returns.
type toolResponse struct {
	Board string `json:"board"`
	sliding.Snapshot
	Outcome   string `json:"outcome,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// NewServer creates a server with a freshly shuffled puzzle.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	name := opts.Name
	if name == "" {
		name = "Slide Arcade"
	}
	ver := opts.Ver
	if ver == "" {
		ver = "1.0.0"
	}

	cfg := opts.Config
	s := &Server{
		mgr:     sliding.NewManager(rand.New(rand.NewSource(seed)), cfg.Board.Size, cfg.Board.ShuffleMoves),
		gesture: sliding.NewInterpreter(cfg.Gesture.MinSwipe, cfg.Gesture.MaxDrag),
		started: time.Now(),
		store:   opts.Store,
		logger:  logger.WithPrefix("mcp"),
	}
	s.mgr.Subscribe(s.onChange)

	s.mcpServer = server.NewMCPServer(
		name,
		ver,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Sliding Puzzle - MCP Interface

The board is an N x N grid read row by row. Tile 0 ("_") is the empty slot.
The puzzle is solved when the tiles read 0, 1, 2, ... in order.

AVAILABLE TOOLS:
- board_state: Current tiles, move count and whether the puzzle is won
- valid_moves: Indices of tiles that can slide into the empty slot
- move_tile: Slide the tile at an index into the empty slot
- swipe: Drag a tile by (dx, dy) pixels; at least 50 px toward the empty slot moves it
- new_game: Shuffle a new puzzle
- best_results: Fewest-move solutions recorded so far`),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Serve runs the server over stdin and stdout until the client disconnects.
func (s *Server) Serve() error {
	s.logger.Info("serving over stdio")
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("mcp: cannot serve stdio: %w", err)
	}
	return nil
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Get the current puzzle state",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, s.handleBoardState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "valid_moves",
		Description: "List the tile indices that can slide into the empty slot",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, s.handleValidMoves)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move_tile",
		Description: "Slide the tile at the given board index into the empty slot",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"index": map[string]any{
					"type":        "integer",
					"description": "Board index of the tile, row by row from 0",
				},
			},
			Required: []string{"index"},
		},
	}, s.handleMoveTile)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "swipe",
		Description: "Drag the tile at index by (dx, dy) pixels and release it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"index": map[string]any{
					"type":        "integer",
					"description": "Board index of the tile to drag",
				},
				"dx": map[string]any{
					"type":        "number",
					"description": "Horizontal travel in pixels, negative is left",
				},
				"dy": map[string]any{
					"type":        "number",
					"description": "Vertical travel in pixels, negative is up",
				},
			},
			Required: []string{"index", "dx", "dy"},
		},
	}, s.handleSwipe)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Discard the current puzzle and shuffle a new one",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "best_results",
		Description: "List the best recorded solutions, fewest moves first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results (default 10)",
				},
			},
		},
	}, s.handleBestResults)
}

// onChange runs under s.mu, inside the Manager call that changed the state.
func (s *Server) onChange(state sliding.State) {
	if !state.Won || s.saved {
		return
	}
	s.saved = true
	s.logger.Info("puzzle solved", "moves", state.Moves)
	if s.store == nil {
		return
	}
	r := storage.Result{
		GameID:   sliding.GameID,
		Player:   Player,
		Moves:    state.Moves,
		Duration: time.Since(s.started),
	}
	if _, err := s.store.SaveResult(r); err != nil {
		s.logger.Warn("could not save result", "error", err)
	}
}

func (s *Server) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.respond(toolResponse{})
}

func (s *Server) handleValidMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	moves := sliding.NewSnapshot(s.mgr.Snapshot(), nil).ValidMoves
	s.mu.Unlock()

	data, err := json.Marshal(moves)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleMoveTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	index, err := intArg(args, "index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.respond(toolResponse{Outcome: s.applyOutcome(index)})
}

func (s *Server) handleSwipe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	index, err := intArg(args, "index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dx, err := floatArg(args, "dx")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dy, err := floatArg(args, "dy")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.mgr.Snapshot()
	if !s.gesture.Start(state, index, 0, 0) {
		outcome := outcomeNotATile
		if state.Won {
			outcome = sliding.ReasonWon.String()
		}
		return s.respond(toolResponse{Outcome: outcome})
	}
	s.gesture.Update(s.mgr.Snapshot(), dx, dy)
	res := s.gesture.Finish(s.mgr, dx, dy)

	resp := toolResponse{Outcome: res.Reason.String()}
	if res.Direction != sliding.DirNone {
		resp.Direction = res.Direction.String()
	}
	return s.respond(resp)
}

// Outcomes for rejected moves that never reach the gesture interpreter.
const (
	outcomeNotATile   = "not a tile"
	outcomeNotMovable = "not adjacent to empty"
)

// applyOutcome moves the tile at index, or describes why it stayed put.
// Callers hold s.mu.
func (s *Server) applyOutcome(index int) string {
	state := s.mgr.Snapshot()
	switch {
	case state.Won:
		return sliding.ReasonWon.String()
	case s.mgr.Apply(index):
		return sliding.ReasonAccepted.String()
	case state.TileAt(index) < 0 || state.TileAt(index) == sliding.Empty:
		return outcomeNotATile
	default:
		return outcomeNotMovable
	}
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gesture.Cancel()
	s.started = time.Now()
	s.saved = false
	s.mgr.Reset()
	return s.respond(toolResponse{})
}

func (s *Server) handleBestResults(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.store == nil {
		return mcp.NewToolResultText("[]"), nil
	}

	limit := 10
	args := arguments(request)
	if _, ok := args["limit"]; ok {
		n, err := intArg(args, "limit")
		if err != nil || n <= 0 {
			return mcp.NewToolResultError("limit must be a positive integer"), nil
		}
		limit = n
	}

	results, err := s.store.BestResults(sliding.GameID, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if results == nil {
		results = []storage.Result{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// respond fills resp with the current state. Callers hold s.mu.
func (s *Server) respond(resp toolResponse) (*mcp.CallToolResult, error) {
	state := s.mgr.Snapshot()
	resp.Board = state.Tiles.String()
	resp.Snapshot = sliding.NewSnapshot(state, nil)

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func arguments(request mcp.CallToolRequest) map[string]any {
	args, _ := request.Params.Arguments.(map[string]any)
	return args
}

// intArg reads a whole number. JSON numbers arrive as float64.
func intArg(args map[string]any, name string) (int, error) {
	v, err := floatArg(args, name)
	if err != nil {
		return 0, err
	}
	if v != float64(int(v)) {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return int(v), nil
}

func floatArg(args map[string]any, name string) (float64, error) {
	raw, ok := args[name]
	if !ok {
		return 0, fmt.Errorf("%s is required", name)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%s must be a number", name)
	}
}
