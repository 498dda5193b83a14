package mcp

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gridmaze/internal/maze"
)

func newTestServer(t *testing.T, cfg maze.Config) (*Server, *maze.Engine) {
	t.Helper()
	state, err := maze.New(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	engine := maze.NewEngine(state)
	t.Cleanup(engine.Close)
	return NewServer(engine), engine
}

func slowConfig() maze.Config {
	cfg := maze.DefaultConfig()
	cfg.TickPeriod = time.Hour
	cfg.ResetDelay = time.Hour
	return cfg
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}}
	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, result.IsError
}

func pathToExit() []any {
	moves := []any{"right"}
	for i := 0; i < 5; i++ {
		moves = append(moves, "down")
	}
	for i := 0; i < 6; i++ {
		moves = append(moves, "right")
	}
	return moves
}

func TestGameStateShowsBoard(t *testing.T) {
	s, _ := newTestServer(t, slowConfig())

	text, isErr := call(t, s.handleGameState, "game_state", nil)
	assert.False(t, isErr)
	assert.Contains(t, text, "Board 8x8, phase playing")
	assert.Contains(t, text, "@......#")
	assert.Contains(t, text, "Player: (1,0)")
	assert.Contains(t, text, "Wins: 0")
}

func TestMove(t *testing.T) {
	s, engine := newTestServer(t, slowConfig())

	text, isErr := call(t, s.handleMove, "move", map[string]any{"direction": "right"})
	assert.False(t, isErr)
	assert.Contains(t, text, "Moved right to (1,1).")
	assert.Equal(t, maze.Pos(1, 1), engine.Frame().Player)

	text, _ = call(t, s.handleMove, "move", map[string]any{"direction": "up"})
	assert.Contains(t, text, "Blocked: (0,1) is a wall.")
	assert.Equal(t, maze.Pos(1, 1), engine.Frame().Player)
}

func TestMoveOffGridFromEntrance(t *testing.T) {
	s, engine := newTestServer(t, slowConfig())

	text, isErr := call(t, s.handleMove, "move", map[string]any{"direction": "left"})
	assert.False(t, isErr)
	assert.Contains(t, text, "Blocked: (1,-1) is off the grid.")
	assert.NotContains(t, text, "is a wall")
	assert.Equal(t, maze.Pos(1, 0), engine.Frame().Player)
}

func TestMoveRejectsBadDirection(t *testing.T) {
	s, _ := newTestServer(t, slowConfig())

	text, isErr := call(t, s.handleMove, "move", map[string]any{"direction": "sideways"})
	assert.True(t, isErr)
	assert.Contains(t, text, "unknown direction")

	_, isErr = call(t, s.handleMove, "move", map[string]any{})
	assert.True(t, isErr)
}

func TestBulkMoveStopsOnWin(t *testing.T) {
	s, engine := newTestServer(t, slowConfig())

	moves := append(pathToExit(), "left", "left")
	text, isErr := call(t, s.handleBulkMove, "bulk_move", map[string]any{"moves": moves})
	assert.False(t, isErr)
	assert.Contains(t, text, "You won! You reached the exit.")
	assert.Contains(t, text, "Stopped; 2 move(s) not applied.")
	assert.Contains(t, text, "appears in 1h0m0s")

	f := engine.Frame()
	assert.True(t, f.HasWon)
	assert.Equal(t, f.Exit, f.Player)
	assert.Equal(t, 1, f.Stats.Wins)
}

func TestBulkMoveValidatesAllMovesFirst(t *testing.T) {
	s, engine := newTestServer(t, slowConfig())

	text, isErr := call(t, s.handleBulkMove, "bulk_move", map[string]any{"moves": []any{"right", "jump"}})
	assert.True(t, isErr)
	assert.Contains(t, text, "move 2")
	assert.Equal(t, maze.Pos(1, 0), engine.Frame().Player)

	_, isErr = call(t, s.handleBulkMove, "bulk_move", map[string]any{"moves": []any{}})
	assert.True(t, isErr)
}

func TestMoveAfterWinWaitsForReset(t *testing.T) {
	s, engine := newTestServer(t, slowConfig())
	call(t, s.handleBulkMove, "bulk_move", map[string]any{"moves": pathToExit()})

	text, _ := call(t, s.handleMove, "move", map[string]any{"direction": "left"})
	assert.Contains(t, text, "You step through the exit door.")
	assert.NotContains(t, text, "Waiting for the board to reset.")
	assert.Equal(t, engine.Frame().Exit, engine.Frame().Player)

	text, _ = call(t, s.handleMove, "move", map[string]any{"direction": "left"})
	assert.Contains(t, text, "Waiting for the board to reset.")
	assert.Equal(t, engine.Frame().Exit, engine.Frame().Player)
}

func TestTickFrozenWhileWon(t *testing.T) {
	s, _ := newTestServer(t, slowConfig())

	text, _ := call(t, s.handleTick, "tick", nil)
	assert.Contains(t, text, "Obstacles moved.")

	call(t, s.handleBulkMove, "bulk_move", map[string]any{"moves": pathToExit()})
	text, _ = call(t, s.handleTick, "tick", nil)
	assert.Contains(t, text, "Obstacles are frozen.")
}

func TestResetAndRestart(t *testing.T) {
	s, engine := newTestServer(t, slowConfig())
	call(t, s.handleBulkMove, "bulk_move", map[string]any{"moves": pathToExit()})

	text, isErr := call(t, s.handleResetBoard, "reset_board", nil)
	assert.False(t, isErr)
	assert.Contains(t, text, "Board reset.")
	f := engine.Frame()
	assert.Equal(t, maze.Pos(1, 0), f.Player)
	assert.False(t, f.HasWon)
	assert.Equal(t, 1, f.ObstacleCount)

	text, _ = call(t, s.handleRestart, "restart", nil)
	assert.Contains(t, text, "New run started.")
	f = engine.Frame()
	assert.Equal(t, 0, f.ObstacleCount)
	assert.Equal(t, 0, f.Stats.Wins)
}

func TestClosedEngineReportsError(t *testing.T) {
	s, engine := newTestServer(t, slowConfig())
	engine.Close()

	text, isErr := call(t, s.handleMove, "move", map[string]any{"direction": "right"})
	assert.True(t, isErr)
	assert.True(t, strings.Contains(text, "closed"), text)
}

func TestInstructions(t *testing.T) {
	s, _ := newTestServer(t, slowConfig())

	text, _ := call(t, s.handleInstructions, "game_instructions", nil)
	assert.Contains(t, text, "GRID LEGEND")
	assert.NotNil(t, s.MCPServer())
}
