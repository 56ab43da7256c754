package description_test

import (
	"errors"
	"strings"
	"testing"

	"ovals/internal/description"
	"ovals/internal/domain"
)

type idSet map[domain.ShapeID]bool

func (s idSet) Has(id domain.ShapeID) bool { return s[id] }

func sampleShapes() []domain.Shape {
	return []domain.Shape{
		{ID: 1, Box: domain.Box{X0: 10, Y0: 10, X1: 60, Y1: 40}, Style: domain.Style{BorderWidth: 1, FillColor: "green", BorderColor: "midnightblue"}},
		{ID: 2, Box: domain.Box{X0: -3.25, Y0: 0.1, X1: 7.5, Y1: 1e3}, Style: domain.Style{BorderWidth: 2.5, FillColor: "#3b82f6", BorderColor: ""}},
		{ID: 7, Box: domain.Box{X0: 5, Y0: 5, X1: 5, Y1: 5}, Style: domain.Style{BorderWidth: 0, FillColor: "Lavender", BorderColor: "orange red"}},
	}
}

func TestFormatShape(t *testing.T) {
	s := domain.Shape{
		ID:    3,
		Box:   domain.Box{X0: 10, Y0: 20, X1: 30.5, Y1: 40},
		Style: domain.Style{BorderWidth: 1, FillColor: "green", BorderColor: "midnightblue"},
	}
	want := "OVAL 3 -> [coords:10.0,20.0,30.5,40.0 | border_width:1.0 | fill_color:green | border_color:midnightblue]"
	if got := description.FormatShape(s); got != want {
		t.Errorf("FormatShape =\n%s\nwant\n%s", got, want)
	}
}

func TestFormat_OneLinePerShape(t *testing.T) {
	text := description.Format(sampleShapes())
	if !strings.HasSuffix(text, "\n") {
		t.Error("expected trailing newline")
	}
	if n := strings.Count(text, "\n"); n != 3 {
		t.Errorf("expected 3 lines, got %d", n)
	}
	if description.Format(nil) != "" {
		t.Error("expected empty description for no shapes")
	}
}

func TestRoundTrip(t *testing.T) {
	shapes := sampleShapes()
	known := idSet{1: true, 2: true, 7: true}

	entries := description.Parse(description.Format(shapes), known)
	if len(entries) != len(shapes) {
		t.Fatalf("expected %d entries, got %d", len(shapes), len(entries))
	}
	for i, e := range entries {
		if e.Err != nil {
			t.Fatalf("line %d rejected: %v", i, e.Err)
		}
		want := shapes[i]
		req := e.Request
		if req.ID != want.ID {
			t.Errorf("line %d: id %d, want %d", i, req.ID, want.ID)
		}
		if req.Box == nil || *req.Box != want.Box {
			t.Errorf("line %d: box %v, want %v", i, req.Box, want.Box)
		}
		if req.BorderWidth == nil || *req.BorderWidth != want.Style.BorderWidth {
			t.Errorf("line %d: border width mismatch", i)
		}
		if req.FillColor == nil || *req.FillColor != want.Style.FillColor {
			t.Errorf("line %d: fill %v, want %q", i, req.FillColor, want.Style.FillColor)
		}
		if req.BorderColor == nil || *req.BorderColor != want.Style.BorderColor {
			t.Errorf("line %d: border color %v, want %q", i, req.BorderColor, want.Style.BorderColor)
		}
	}
}

func TestParse_PerLineIsolation(t *testing.T) {
	lines := strings.Split(strings.TrimSuffix(description.Format(sampleShapes()), "\n"), "\n")
	lines[1] = "OVAL 2 [coords:1,2,3,4]"
	text := strings.Join(lines, "\n") + "\n"

	entries := description.Parse(text, idSet{1: true, 2: true, 7: true})
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for _, e := range entries {
		bad := e.Line == 1
		if bad != (e.Err != nil) {
			t.Errorf("line %d: err=%v", e.Line, e.Err)
		}
	}
	if !errors.Is(entries[1].Err, description.ErrMalformedLine) {
		t.Errorf("expected malformed line, got %v", entries[1].Err)
	}
}

func TestParse_Duplicate(t *testing.T) {
	text := "OVAL 1 -> [coords:0,0,10,10]\nOVAL 1 -> [coords:0,0,50,50]\n"
	entries := description.Parse(text, idSet{1: true})
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Err != nil {
		t.Fatalf("first occurrence rejected: %v", entries[0].Err)
	}
	if entries[1].Err == nil || entries[1].Err.Kind != description.DuplicateShapeID {
		t.Fatalf("expected duplicate error, got %v", entries[1].Err)
	}
}

func TestParse_RejectedLineDoesNotCountAsHandled(t *testing.T) {
	text := "OVAL 1 -> [coords:0,0,10]\nOVAL 1 -> [coords:0,0,50,50]\n"
	entries := description.Parse(text, idSet{1: true})
	if entries[0].Err == nil {
		t.Fatal("expected first line to fail")
	}
	if entries[1].Err != nil {
		t.Fatalf("second line should be accepted, got %v", entries[1].Err)
	}
}

func TestParse_ErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind description.Kind
	}{
		{"no arrow", "OVAL 1 [coords:0,0,1,1]", description.MalformedLine},
		{"two arrows", "OVAL 1 -> [coords:0,0,1,1] -> x", description.MalformedLine},
		{"wrong keyword", "RECT 1 -> [coords:0,0,1,1]", description.MalformedLine},
		{"bad id", "OVAL one -> [coords:0,0,1,1]", description.MalformedLine},
		{"zero id", "OVAL 0 -> [coords:0,0,1,1]", description.MalformedLine},
		{"no brackets", "OVAL 1 -> coords:0,0,1,1", description.MalformedLine},
		{"empty block", "OVAL 1 -> []", description.MalformedLine},
		{"entry without colon", "OVAL 1 -> [coords 0,0,1,1]", description.MalformedLine},
		{"repeated key", "OVAL 1 -> [fill_color:red | fill_color:blue]", description.MalformedLine},
		{"unknown id", "OVAL 9 -> [coords:0,0,1,1]", description.UnknownShapeID},
		{"unknown key", "OVAL 1 -> [coords:0,0,1,1 | opacity:0.5]", description.UnknownAttribute},
		{"three coords", "OVAL 1 -> [coords:0,0,1]", description.InvalidAttributeValue},
		{"flipped coords", "OVAL 1 -> [coords:10,0,1,1]", description.InvalidAttributeValue},
		{"nan coords", "OVAL 1 -> [coords:NaN,0,1,1]", description.InvalidAttributeValue},
		{"text width", "OVAL 1 -> [border_width:thick]", description.InvalidAttributeValue},
		{"negative width", "OVAL 1 -> [border_width:-1]", description.InvalidAttributeValue},
		{"numeric color", "OVAL 1 -> [fill_color:12]", description.InvalidAttributeValue},
		{"unknown color", "OVAL 1 -> [border_color:blurple]", description.InvalidAttributeValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := description.Parse(tt.line, idSet{1: true})
			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(entries))
			}
			err := entries[0].Err
			if err == nil {
				t.Fatalf("expected %v, line accepted", tt.kind)
			}
			if err.Kind != tt.kind {
				t.Errorf("kind = %v, want %v (%v)", err.Kind, tt.kind, err)
			}
		})
	}
}

func TestParse_PartialUpdate(t *testing.T) {
	entries := description.Parse("OVAL 4 -> [ fill_color : orange red ]", idSet{4: true})
	if len(entries) != 1 || entries[0].Err != nil {
		t.Fatalf("unexpected result: %+v", entries)
	}
	req := entries[0].Request
	if req.Box != nil || req.BorderWidth != nil || req.BorderColor != nil {
		t.Error("only fill color should be set")
	}
	if req.FillColor == nil || *req.FillColor != "orange red" {
		t.Errorf("fill color = %v", req.FillColor)
	}
}

func TestParse_SkipsBlankLines(t *testing.T) {
	text := "\nOVAL 1 -> [border_width:3]\r\n   \n\n"
	entries := description.Parse(text, idSet{1: true})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Line != 1 || entries[0].Err != nil {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}

func TestLineError_Message(t *testing.T) {
	entries := description.Parse("OVAL 5 -> [coords:0,0,1,1]", idSet{})
	err := entries[0].Err
	if !errors.Is(err, description.ErrUnknownShapeID) {
		t.Fatalf("expected ErrUnknownShapeID, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "line 1: unknown shape id") {
		t.Errorf("unexpected message %q", err.Error())
	}
}
