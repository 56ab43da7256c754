package mcpserver

import (
	"context"
	"fmt"

	"ovals/internal/description"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerDescriptionTools() {
	s.mcp.AddTool(mcp.NewTool("describe_canvas",
		mcp.WithDescription("Return the textual description of the canvas, one line per oval: "+
			"OVAL <id> -> [coords:x0,y0,x1,y1 | border_width:w | fill_color:c | border_color:c]"),
	), s.handleDescribeCanvas)

	s.mcp.AddTool(mcp.NewTool("apply_description",
		mcp.WithDescription("Edit ovals through their description. Each line names an existing oval and any subset of "+
			"its attributes; valid lines are applied, invalid lines are reported and leave their oval untouched."),
		mcp.WithString("text", mcp.Description("Description lines to apply"), mcp.Required()),
	), s.handleApplyDescription)
}

func (s *Server) handleDescribeCanvas(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := description.Format(s.session.Shapes())
	if text == "" {
		return textResult("(empty canvas)"), nil
	}
	return textResult(text), nil
}

func (s *Server) handleApplyDescription(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}

	s.gestureMu.Lock()
	defer s.gestureMu.Unlock()

	res, err := s.session.ApplyDescription(ctx, text)
	if err != nil {
		return nil, err
	}
	return jsonResult(res)
}
