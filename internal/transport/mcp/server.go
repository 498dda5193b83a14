// Package mcp exposes a running maze engine as Model Context Protocol tools so
// that an agent can read the board and play over stdio.
package mcp

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/gridmaze/internal/maze"
)

const (
	serverName    = "Grid Maze"
	serverVersion = "1.0.0"
)

const instructions = `Grid Maze - MCP Interface

GAME OBJECTIVE:
Walk the player (@) from the entrance on the left wall to the exit (E) on the
right wall without touching an obstacle (X). Obstacles wander one cell at a time,
diagonals included, on every tick.

RULES:
- Walls (#) block movement. Moving into a wall or off the grid does nothing.
- Reaching the exit is a win. The board resets after a short delay; with the
  seeded policy every win adds one obstacle to the next board.
- Sharing a cell with an obstacle is a loss. The board resets at once and the
  seeded policy drops back to zero obstacles.
- When the board has no room left for the next obstacle count, the run is over.
  Use restart to begin a new run.

GRID LEGEND:
  # wall   . floor   E exit   @ player   X obstacle

AVAILABLE TOOLS:
- game_state: current board and counters
- move: one step up/down/left/right
- bulk_move: several steps in order, stopping at the first win or collision
- tick: advance the obstacles once (only needed when the server does not tick by itself)
- reset_board: new board, same difficulty
- restart: new run from the starting difficulty
- game_instructions: this text`

var directionEnum = []string{"up", "down", "left", "right"}

// Server serves the maze tools for one engine.
type Server struct {
	engine    *maze.Engine
	mcpServer *server.MCPServer
	logger    *log.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. MCP over stdio owns stdout, so the logger must
// write elsewhere.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates the MCP server and registers its tools.
func NewServer(engine *maze.Engine, opts ...Option) *Server {
	s := &Server{
		engine: engine,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves requests on stdin and stdout until the input closes.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP over stdio")
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board, player position, obstacles and session counters",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the player one cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        directionEnum,
					"description": "Direction to move",
				},
			},
			Required: []string{"direction"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Execute several moves in order; stops early on a win or a collision",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": directionEnum,
					},
					"description": "Moves to apply",
				},
			},
			Required: []string{"moves"},
		},
	}, s.handleBulkMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "tick",
		Description: "Advance the obstacles by one step",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleTick)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_board",
		Description: "Generate a new board and put the player back at the entrance; counters are kept",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleResetBoard)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "restart",
		Description: "Start a new run from the starting difficulty with zeroed counters",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleRestart)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules, the grid legend and the tool list",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleInstructions)
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(describeFrame(s.engine.Frame())), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, _ := request.GetArguments()["direction"].(string)
	dir, err := maze.ParseDirection(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	if _, err := s.move(&b, dir); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b.WriteString("\n")
	b.WriteString(describeFrame(s.engine.Frame()))
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, ok := request.GetArguments()["moves"].([]interface{})
	if !ok || len(items) == 0 {
		return mcp.NewToolResultError("moves must be a non-empty array of directions"), nil
	}

	dirs := make([]maze.Direction, 0, len(items))
	for i, item := range items {
		raw, _ := item.(string)
		dir, err := maze.ParseDirection(raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("move %d: %v", i+1, err)), nil
		}
		dirs = append(dirs, dir)
	}

	var b strings.Builder
	for i, dir := range dirs {
		fmt.Fprintf(&b, "%d. ", i+1)
		stop, err := s.move(&b, dir)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if stop {
			if rest := len(dirs) - i - 1; rest > 0 {
				fmt.Fprintf(&b, "Stopped; %d move(s) not applied.\n", rest)
			}
			break
		}
	}
	b.WriteString("\n")
	b.WriteString(describeFrame(s.engine.Frame()))
	return mcp.NewToolResultText(b.String()), nil
}

// move applies one step and writes its outcome. It reports whether the move
// ended the current board.
func (s *Server) move(b *strings.Builder, dir maze.Direction) (bool, error) {
	before := s.engine.Frame()
	res, err := s.engine.Move(dir)
	if err != nil {
		return false, err
	}
	s.logger.Debug("mcp move", "direction", dir, "moved", res.Moved, "events", len(res.Events))

	switch {
	case before.Phase == maze.PhaseCleared:
		b.WriteString("The run is over; use restart.\n")
	case res.DoorStep:
		b.WriteString("You step through the exit door.\n")
	case res.Moved:
		fmt.Fprintf(b, "Moved %s to %s.\n", dir, before.Player.Add(dir))
	case before.HasWon:
		b.WriteString("Waiting for the board to reset.\n")
	default:
		target := before.Player.Add(dir)
		if target.Row < 0 || target.Col < 0 || target.Row >= before.Size || target.Col >= before.Size {
			fmt.Fprintf(b, "Blocked: %s is off the grid.\n", target)
		} else {
			fmt.Fprintf(b, "Blocked: %s is a wall.\n", target)
		}
	}

	for _, e := range res.Events {
		b.WriteString(e.Message())
		b.WriteString("\n")
	}
	if res.PendingReset != nil {
		fmt.Fprintf(b, "A new board with %d obstacle(s) appears in %s.\n",
			s.engine.Frame().ObstacleCount, s.engine.Config().ResetDelay)
	}
	return len(res.Events) > 0, nil
}

func (s *Server) handleTick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.engine.Tick()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	if res.Stepped {
		b.WriteString("Obstacles moved.\n")
	} else {
		b.WriteString("Obstacles are frozen.\n")
	}
	for _, e := range res.Events {
		b.WriteString(e.Message())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(describeFrame(s.engine.Frame()))
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleResetBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.engine.Reset(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Board reset.\n\n" + describeFrame(s.engine.Frame())), nil
}

func (s *Server) handleRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.engine.Restart(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("New run started.\n\n" + describeFrame(s.engine.Frame())), nil
}

func (s *Server) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

// describeFrame renders the board with a legend and counters.
func describeFrame(f maze.Frame) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Board %dx%d, phase %s, board #%d\n", f.Size, f.Size, f.Phase, f.Generation)
	for _, row := range f.Rows() {
		b.WriteString(row)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Player: %s  Exit: %s\n", f.Player, f.Exit)

	positions := make([]string, len(f.Obstacles))
	for i, o := range f.Obstacles {
		positions[i] = o.Pos.String()
	}
	fmt.Fprintf(&b, "Obstacles (%s): %d [%s]\n", f.Policy, len(f.Obstacles), strings.Join(positions, " "))
	fmt.Fprintf(&b, "Wins: %d  Losses: %d  Streak: %d  Best streak: %d\n",
		f.Stats.Wins, f.Stats.Losses, f.Stats.Streak, f.Stats.BestStreak)
	return b.String()
}
