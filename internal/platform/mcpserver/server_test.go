package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/slide-arcade/internal/config"
	"github.com/vovakirdan/slide-arcade/internal/games/sliding"
	"github.com/vovakirdan/slide-arcade/internal/storage"
)

type fakeStore struct {
	saved   []storage.Result
	best    []storage.Result
	bestErr error
	limit   int
}

func (f *fakeStore) SaveResult(r storage.Result) (int64, error) {
	f.saved = append(f.saved, r)
	return int64(len(f.saved)), nil
}

func (f *fakeStore) BestResults(gameID string, limit int) ([]storage.Result, error) {
	f.limit = limit
	return f.best, f.bestErr
}

type decodedResponse struct {
	Board string `json:"board"`
	sliding.Snapshot
	Outcome   string `json:"outcome"`
	Direction string `json:"direction"`
}

func newSolvedServer(t *testing.T, store ResultStore) *Server {
	t.Helper()
	cfg := config.DefaultSlidingConfig()
	cfg.Board.ShuffleMoves = 0
	return NewServer(Options{Config: cfg, Store: store, Seed: 1})
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	content, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return content.Text
}

func decode(t *testing.T, res *mcp.CallToolResult) decodedResponse {
	t.Helper()
	require.False(t, res.IsError, text(t, res))
	var got decodedResponse
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	return got
}

func TestNewServerDefaults(t *testing.T) {
	s := NewServer(Options{Config: config.DefaultSlidingConfig()})
	require.NotNil(t, s.MCPServer())

	got := decode(t, call(t, s.handleBoardState, nil))
	assert.Equal(t, 3, got.Size)
	assert.Len(t, got.Tiles, 9)
}

func TestBoardState(t *testing.T) {
	s := newSolvedServer(t, nil)

	got := decode(t, call(t, s.handleBoardState, nil))
	assert.Equal(t, "_ 1 2 / 3 4 5 / 6 7 8", got.Board)
	assert.Equal(t, 3, got.Size)
	assert.Equal(t, 0, got.Moves)
	assert.False(t, got.Won)
	assert.Equal(t, "playing", got.Phase)
}

func TestValidMoves(t *testing.T) {
	s := newSolvedServer(t, nil)

	res := call(t, s.handleValidMoves, nil)
	var moves []int
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &moves))
	assert.ElementsMatch(t, []int{1, 3}, moves)
}

func TestMoveTileToWin(t *testing.T) {
	store := &fakeStore{}
	s := newSolvedServer(t, store)

	got := decode(t, call(t, s.handleMoveTile, map[string]any{"index": 3.0}))
	assert.Equal(t, "3 1 2 / _ 4 5 / 6 7 8", got.Board)
	assert.Equal(t, 1, got.Moves)
	assert.Equal(t, "accepted", got.Outcome)

	got = decode(t, call(t, s.handleMoveTile, map[string]any{"index": 0.0}))
	assert.True(t, got.Won)
	assert.Equal(t, 2, got.Moves)

	got = decode(t, call(t, s.handleMoveTile, map[string]any{"index": 1.0}))
	assert.Equal(t, "won", got.Outcome)
	assert.Equal(t, 2, got.Moves)

	require.Len(t, store.saved, 1)
	assert.Equal(t, Player, store.saved[0].Player)
	assert.Equal(t, sliding.GameID, store.saved[0].GameID)
	assert.Equal(t, 2, store.saved[0].Moves)
}

func TestMoveTileBadArguments(t *testing.T) {
	s := newSolvedServer(t, nil)

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing index", map[string]any{}},
		{"not a number", map[string]any{"index": "two"}},
		{"fractional", map[string]any{"index": 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := call(t, s.handleMoveTile, tt.args)
			assert.True(t, res.IsError)
		})
	}
}

func TestMoveTileRejectedIsNoOp(t *testing.T) {
	s := newSolvedServer(t, nil)

	tests := []struct {
		name    string
		index   float64
		outcome string
	}{
		{"not adjacent", 8, "not adjacent to empty"},
		{"empty slot", 0, "not a tile"},
		{"out of range", 42, "not a tile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decode(t, call(t, s.handleMoveTile, map[string]any{"index": tt.index}))
			assert.Equal(t, tt.outcome, got.Outcome)
			assert.Equal(t, 0, got.Moves)
			assert.Equal(t, "_ 1 2 / 3 4 5 / 6 7 8", got.Board)
		})
	}
}

func TestSwipe(t *testing.T) {
	s := newSolvedServer(t, nil)

	got := decode(t, call(t, s.handleSwipe, map[string]any{"index": 1.0, "dx": -80.0, "dy": 5.0}))
	assert.Equal(t, "accepted", got.Outcome)
	assert.Equal(t, "left", got.Direction)
	assert.Equal(t, "1 _ 2 / 3 4 5 / 6 7 8", got.Board)
	assert.Equal(t, 1, got.Moves)
	assert.Nil(t, got.Drag)
}

func TestSwipeNotAccepted(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		outcome string
	}{
		{"too short", map[string]any{"index": 1.0, "dx": -30.0, "dy": 0.0}, "too short"},
		{"away from empty", map[string]any{"index": 1.0, "dx": 80.0, "dy": 0.0}, "not toward empty"},
		{"no travel", map[string]any{"index": 1.0, "dx": 0.0, "dy": 0.0}, "no displacement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSolvedServer(t, nil)
			got := decode(t, call(t, s.handleSwipe, tt.args))
			assert.Equal(t, tt.outcome, got.Outcome)
			assert.Equal(t, 0, got.Moves)
		})
	}
}

func TestSwipeOnEmptySlot(t *testing.T) {
	s := newSolvedServer(t, nil)

	got := decode(t, call(t, s.handleSwipe, map[string]any{"index": 0.0, "dx": 80.0, "dy": 0.0}))
	assert.Equal(t, "not a tile", got.Outcome)
	assert.Equal(t, 0, got.Moves)

	res := call(t, s.handleSwipe, map[string]any{"index": 1.0})
	assert.True(t, res.IsError)
}

func TestSwipeAfterWin(t *testing.T) {
	s := newSolvedServer(t, nil)
	call(t, s.handleMoveTile, map[string]any{"index": 1.0})
	call(t, s.handleMoveTile, map[string]any{"index": 0.0})

	got := decode(t, call(t, s.handleSwipe, map[string]any{"index": 1.0, "dx": -80.0, "dy": 0.0}))
	assert.Equal(t, "won", got.Outcome)
	assert.True(t, got.Won)
	assert.Equal(t, 2, got.Moves)
}

func TestNewGameAfterWin(t *testing.T) {
	store := &fakeStore{}
	s := newSolvedServer(t, store)

	call(t, s.handleMoveTile, map[string]any{"index": 1.0})
	got := decode(t, call(t, s.handleMoveTile, map[string]any{"index": 0.0}))
	require.True(t, got.Won)

	got = decode(t, call(t, s.handleNewGame, nil))
	assert.False(t, got.Won)
	assert.Equal(t, 0, got.Moves)

	call(t, s.handleMoveTile, map[string]any{"index": 1.0})
	call(t, s.handleMoveTile, map[string]any{"index": 0.0})
	assert.Len(t, store.saved, 2)
}

func TestBestResults(t *testing.T) {
	store := &fakeStore{best: []storage.Result{{ID: 1, GameID: sliding.GameID, Player: "ann", Moves: 20}}}
	s := newSolvedServer(t, store)

	res := call(t, s.handleBestResults, map[string]any{"limit": 3.0})
	require.False(t, res.IsError)
	assert.Contains(t, text(t, res), `"player": "ann"`)
	assert.Equal(t, 3, store.limit)

	res = call(t, s.handleBestResults, nil)
	require.False(t, res.IsError)
	assert.Equal(t, 10, store.limit)

	res = call(t, s.handleBestResults, map[string]any{"limit": -1.0})
	assert.True(t, res.IsError)

	store.bestErr = errors.New("locked")
	res = call(t, s.handleBestResults, nil)
	assert.True(t, res.IsError)
}

func TestBestResultsWithoutStore(t *testing.T) {
	s := newSolvedServer(t, nil)

	res := call(t, s.handleBestResults, nil)
	assert.Equal(t, "[]", text(t, res))
}
