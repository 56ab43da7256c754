package domain

// CanvasState represents the complete state of an editor session for rendering.
// Returned to the frontend to redraw the canvas and the description panel.
type CanvasState struct {
	SessionID   string       `json:"sessionId"`
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Shapes      []Shape      `json:"shapes"`
	Description string       `json:"description"`
	Lines       []LineStatus `json:"lines"`
}

// LineStatus is the error classification of one panel line.
type LineStatus struct {
	Line    int    `json:"line"`
	Error   bool   `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}
