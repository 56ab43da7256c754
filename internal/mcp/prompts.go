package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("sketch_scene",
		mcp.WithPromptDescription("Guide through sketching a scene out of ovals and refining it through the description"),
		mcp.WithArgument("subject",
			mcp.ArgumentDescription("What the scene should show"),
			mcp.RequiredArgument(),
		),
	), s.handleSketchScenePrompt)
}

func (s *Server) handleSketchScenePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	subject := req.Params.Arguments["subject"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Sketch %s with ovals", subject),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Sketch "%s" on the canvas using only ovals. Follow these steps:

1. Use describe_canvas to see what is already there
2. Block out the large shapes first with draw_oval, then the details
3. Use apply_description to adjust coordinates, colors and border widths of existing ovals
   (a line only needs the attributes you want to change, e.g. "OVAL 2 -> [fill_color:gold]")
4. Use drag_oval to nudge ovals into place
5. Finish with render_canvas and check the picture

Colors may be CSS color names or hex values such as #3b82f6.`, subject),
				},
			},
		},
	}, nil
}
