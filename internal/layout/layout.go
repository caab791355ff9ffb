// Package layout holds square ASCII room templates, their rotations and the
// per-edge walkability vectors used to decide whether two templates can be
// attached side by side.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidLayout = errors.New("layout: template must be a non-empty square")

// Rotation is a counter-clockwise quarter-turn count.
type Rotation int

const (
	Rotate0 Rotation = iota
	CCW90
	CCW180
	CCW270
)

// String returns the string representation of a Rotation
func (r Rotation) String() string {
	switch r {
	case Rotate0:
		return "0"
	case CCW90:
		return "ccw90"
	case CCW180:
		return "ccw180"
	case CCW270:
		return "ccw270"
	default:
		return "unknown"
	}
}

// AllRotations returns the four rotations in turn order.
func AllRotations() []Rotation {
	return []Rotation{Rotate0, CCW90, CCW180, CCW270}
}

// RoomLayout is an immutable square template. '.' and '+' are walkable.
type RoomLayout struct {
	rows []string
}

// NewRoomLayout validates rows and wraps them in a RoomLayout.
func NewRoomLayout(rows []string) (RoomLayout, error) {
	if len(rows) == 0 {
		return RoomLayout{}, ErrInvalidLayout
	}
	for i, row := range rows {
		if len(row) != len(rows) {
			return RoomLayout{}, fmt.Errorf("%w: row %d has length %d, want %d", ErrInvalidLayout, i, len(row), len(rows))
		}
	}
	return RoomLayout{rows: append([]string(nil), rows...)}, nil
}

// MustLayout is NewRoomLayout for literals; it panics on malformed input.
func MustLayout(rows ...string) RoomLayout {
	l, err := NewRoomLayout(rows)
	if err != nil {
		panic(err)
	}
	return l
}

// Size returns the side length.
func (l RoomLayout) Size() int {
	return len(l.rows)
}

// Rows returns a copy of the template rows.
func (l RoomLayout) Rows() []string {
	return append([]string(nil), l.rows...)
}

// At returns the symbol at column x, row y.
func (l RoomLayout) At(x, y int) byte {
	return l.rows[y][x]
}

// Equal reports whether both layouts hold the same symbols.
func (l RoomLayout) Equal(o RoomLayout) bool {
	if len(l.rows) != len(o.rows) {
		return false
	}
	for i := range l.rows {
		if l.rows[i] != o.rows[i] {
			return false
		}
	}
	return true
}

func (l RoomLayout) String() string {
	return strings.Join(l.rows, "\n")
}

// Rotate turns the layout counter-clockwise by r.
func (l RoomLayout) Rotate(r Rotation) RoomLayout {
	out := l
	for i := 0; i < int(r)%4; i++ {
		out = out.rotateCCW90()
	}
	return out
}

// rotateCCW90 moves the top-right corner to the top-left and swaps the
// orientation of edge symbols.
func (l RoomLayout) rotateCCW90() RoomLayout {
	n := len(l.rows)
	rows := make([]string, n)
	buf := make([]byte, n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			buf[x] = SubstituteEdgeChar(l.rows[x][n-1-y])
		}
		rows[y] = string(buf)
	}
	return RoomLayout{rows: rows}
}

// DistinctRotations returns the layout's rotations with duplicates removed,
// in turn order starting with the layout itself.
func (l RoomLayout) DistinctRotations() []RoomLayout {
	var out []RoomLayout
	for _, r := range AllRotations() {
		rotated := l.Rotate(r)
		dup := false
		for _, seen := range out {
			if seen.Equal(rotated) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, rotated)
		}
	}
	return out
}

// SubstituteEdgeChar maps an edge symbol to its quarter-turned form.
func SubstituteEdgeChar(ch byte) byte {
	switch ch {
	case '-':
		return '|'
	case '|':
		return '-'
	case '/':
		return '\\'
	case '\\':
		return '/'
	default:
		return ch
	}
}

// IsLayoutWalkable reports whether a template symbol is walkable.
func IsLayoutWalkable(ch byte) bool {
	return ch == '.' || ch == '+'
}

// UnmarshalYAML reads a layout written as a list of rows.
func (l *RoomLayout) UnmarshalYAML(value *yaml.Node) error {
	var rows []string
	if err := value.Decode(&rows); err != nil {
		return err
	}
	parsed, err := NewRoomLayout(rows)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*l = parsed
	return nil
}

// MarshalYAML writes the layout as a list of rows.
func (l RoomLayout) MarshalYAML() (interface{}, error) {
	return l.Rows(), nil
}
