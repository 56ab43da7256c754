package description

import (
	"math"
	"strconv"
	"strings"

	"ovals/internal/domain"
	"ovals/internal/palette"
)

// Resolver tells the parser which shape ids exist.
type Resolver interface {
	Has(id domain.ShapeID) bool
}

// UpdateRequest carries the values one valid line asks for. Nil fields were
// not mentioned on the line and stay as they are.
type UpdateRequest struct {
	ID          domain.ShapeID
	Box         *domain.Box
	BorderWidth *float64
	FillColor   *string
	BorderColor *string
}

// Entry is the outcome of one non-blank line. Exactly one of Request and Err is set.
type Entry struct {
	Line    int // zero-based index into the text
	Text    string
	Request *UpdateRequest
	Err     *LineError
}

// Parse validates every non-blank line of text on its own. A rejected line
// never stops the pass. An id counts as handled once a line carrying it has
// passed every check; later lines with the same id are rejected.
func Parse(text string, resolver Resolver) []Entry {
	var entries []Entry
	handled := make(map[domain.ShapeID]bool)
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		req, lerr := parseLine(i, line, resolver, handled)
		entries = append(entries, Entry{Line: i, Text: line, Request: req, Err: lerr})
		if lerr == nil {
			handled[req.ID] = true
		}
	}
	return entries
}

func parseLine(i int, line string, resolver Resolver, handled map[domain.ShapeID]bool) (*UpdateRequest, *LineError) {
	header, block, ok := strings.Cut(line, idSeparator)
	if !ok {
		return nil, lineErrorf(MalformedLine, i, "missing %q", idSeparator)
	}
	if strings.Contains(block, idSeparator) {
		return nil, lineErrorf(MalformedLine, i, "more than one %q", idSeparator)
	}

	fields := strings.Fields(header)
	if len(fields) != 2 || fields[0] != shapeKeyword {
		return nil, lineErrorf(MalformedLine, i, "expected %q before %q", shapeKeyword+" <id>", idSeparator)
	}
	n, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil || n == 0 {
		return nil, lineErrorf(MalformedLine, i, "bad shape id %q", fields[1])
	}
	id := domain.ShapeID(n)

	block = strings.TrimSpace(block)
	if len(block) < 2 || block[0] != '[' || block[len(block)-1] != ']' {
		return nil, lineErrorf(MalformedLine, i, "property block must be enclosed in []")
	}

	if !resolver.Has(id) {
		return nil, lineErrorf(UnknownShapeID, i, "no shape with id %d", id)
	}
	if handled[id] {
		return nil, lineErrorf(DuplicateShapeID, i, "shape %d already described above", id)
	}

	req := &UpdateRequest{ID: id}
	seen := make(map[string]bool)
	for _, entry := range strings.Split(block[1:len(block)-1], entrySeparator) {
		key, val, ok := strings.Cut(strings.TrimSpace(entry), keySeparator)
		if !ok {
			return nil, lineErrorf(MalformedLine, i, "entry %q has no %q", strings.TrimSpace(entry), keySeparator)
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		switch key {
		case KeyCoords, KeyBorderWidth, KeyFillColor, KeyBorderColor:
		default:
			return nil, lineErrorf(UnknownAttribute, i, "unknown attribute %q", key)
		}
		if seen[key] {
			return nil, lineErrorf(MalformedLine, i, "attribute %q repeated", key)
		}
		seen[key] = true

		if lerr := applyAttribute(req, i, key, val); lerr != nil {
			return nil, lerr
		}
	}
	return req, nil
}

func applyAttribute(req *UpdateRequest, i int, key, val string) *LineError {
	switch key {
	case KeyCoords:
		box, ok := parseCoords(val)
		if !ok {
			return lineErrorf(InvalidAttributeValue, i, "coords %q: want x0,y0,x1,y1 with x0<=x1 and y0<=y1", val)
		}
		req.Box = &box
	case KeyBorderWidth:
		if !isNumeric(val) {
			return lineErrorf(InvalidAttributeValue, i, "%s expects a number, got %q", key, val)
		}
		w, err := strconv.ParseFloat(val, 64)
		if err != nil || math.IsInf(w, 0) {
			return lineErrorf(InvalidAttributeValue, i, "%s %q out of range", key, val)
		}
		req.BorderWidth = &w
	case KeyFillColor, KeyBorderColor:
		if isNumeric(val) {
			return lineErrorf(InvalidAttributeValue, i, "%s expects a color, got number %q", key, val)
		}
		if !palette.Valid(val) {
			return lineErrorf(InvalidAttributeValue, i, "%s: unknown color %q", key, val)
		}
		c := val
		if key == KeyFillColor {
			req.FillColor = &c
		} else {
			req.BorderColor = &c
		}
	}
	return nil
}

func parseCoords(val string) (domain.Box, bool) {
	parts := strings.Split(val, coordSeparator)
	if len(parts) != 4 {
		return domain.Box{}, false
	}
	var v [4]float64
	for k, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return domain.Box{}, false
		}
		v[k] = f
	}
	box := domain.Box{X0: v[0], Y0: v[1], X1: v[2], Y1: v[3]}
	return box, box.Valid()
}

// isNumeric reports whether s is digits with at most one decimal point.
func isNumeric(s string) bool {
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
