package mcpserver

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"ovals/internal/service"
	"ovals/internal/surface"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server for the oval editor.
// It exposes tools, resources, and prompts so AI agents can draw on the canvas
// and edit its description the same way a user would.
type Server struct {
	mcp     *server.MCPServer
	session *service.Session
	raster  *surface.Raster
	layout  *LayoutEngine

	background string

	// Serializes press/move/release sequences issued by tools.
	gestureMu sync.Mutex
}

// Deps holds all dependencies passed from the App layer to the MCP server.
type Deps struct {
	Session    *service.Session
	Raster     *surface.Raster // the surface the session draws on
	Background string
}

// New creates and configures a new MCP server with all tools and resources.
func New(deps Deps) *Server {
	s := &Server{
		session:    deps.Session,
		raster:     deps.Raster,
		layout:     NewLayoutEngine(),
		background: deps.Background,
	}

	s.mcp = server.NewMCPServer(
		"ovals-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerCanvasTools()
	s.registerDescriptionTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// numberArg reads a required numeric argument.
func numberArg(args map[string]any, key string) (float64, error) {
	switch v := args[key].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case nil:
		return 0, fmt.Errorf("%s is required", key)
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, v)
	}
}

// optionalNumber reads a numeric argument that may be absent.
func optionalNumber(args map[string]any, key string) (float64, bool, error) {
	if _, ok := args[key]; !ok {
		return 0, false, nil
	}
	v, err := numberArg(args, key)
	return v, err == nil, err
}
