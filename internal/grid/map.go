// Package grid holds the cell grid every dungeon generator carves into, along
// with the utilities they share: bounds checks, neighbor counting, flood-fill
// connectivity repair, corner repair and door placement.
package grid

import (
	"errors"
	"strings"
)

var ErrInvalidSize = errors.New("grid: invalid map size")

// Map is a rectangular grid of cells indexed Cells[y][x].
type Map struct {
	Width, Height int
	Cells         [][]MapCell
}

// New creates a map of the given size filled with walls.
func New(width, height int) *Map {
	m := &Map{
		Width:  width,
		Height: height,
		Cells:  make([][]MapCell, height),
	}
	for y := 0; y < height; y++ {
		m.Cells[y] = make([]MapCell, width)
		for x := 0; x < width; x++ {
			m.Cells[y][x] = MapCell{
				Image:       SymbolWall,
				AreaMarker:  -1,
				ZoneMarker:  -1,
				Coordinates: Position{X: x, Y: y},
			}
		}
	}
	return m
}

// FromRows builds a map from equal-length rows of symbols.
func FromRows(rows []string) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidSize
	}
	m := New(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != m.Width {
			return nil, ErrInvalidSize
		}
		for x := 0; x < len(row); x++ {
			m.Cells[y][x].Image = row[x]
		}
	}
	return m, nil
}

// Fill sets every cell to ch.
func (m *Map) Fill(ch byte) {
	for y := range m.Cells {
		for x := range m.Cells[y] {
			m.Cells[y][x].Image = ch
		}
	}
}

// Cell returns the cell at p. p must be inside the map.
func (m *Map) Cell(p Position) *MapCell {
	return &m.Cells[p.Y][p.X]
}

// Get returns the symbol at (x, y), or SymbolWall outside the map.
func (m *Map) Get(x, y int) byte {
	if !m.inBounds(x, y) {
		return SymbolWall
	}
	return m.Cells[y][x].Image
}

// Set writes ch at (x, y). Writes outside the map are ignored.
func (m *Map) Set(x, y int, ch byte) {
	if m.inBounds(x, y) {
		m.Cells[y][x].Image = ch
	}
}

// At returns the symbol at p, or SymbolWall outside the map.
func (m *Map) At(p Position) byte {
	return m.Get(p.X, p.Y)
}

// Put writes ch at p.
func (m *Map) Put(p Position, ch byte) {
	m.Set(p.X, p.Y, ch)
}

// IsWalkableAt reports whether p is inside the map and walkable.
func (m *Map) IsWalkableAt(p Position) bool {
	return m.inBounds(p.X, p.Y) && IsWalkable(m.Cells[p.Y][p.X].Image)
}

// IsWallAt reports whether p holds a wall. Outside the map counts as wall.
func (m *Map) IsWallAt(p Position) bool {
	return m.At(p) == SymbolWall
}

// ResetVisited clears every cell's Visited flag.
func (m *Map) ResetVisited() {
	for y := range m.Cells {
		for x := range m.Cells[y] {
			m.Cells[y][x].Visited = false
		}
	}
}

// Raw returns the finished character grid, one string per row.
func (m *Map) Raw() []string {
	rows := make([]string, m.Height)
	buf := make([]byte, m.Width)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			buf[x] = m.Cells[y][x].Image
		}
		rows[y] = string(buf)
	}
	return rows
}

// String renders the map with newline-separated rows.
func (m *Map) String() string {
	return strings.Join(m.Raw(), "\n")
}

// Count returns how many cells hold ch.
func (m *Map) Count(ch byte) int {
	n := 0
	for y := range m.Cells {
		for x := range m.Cells[y] {
			if m.Cells[y][x].Image == ch {
				n++
			}
		}
	}
	return n
}

// WalkableCells returns every walkable position in row-major order.
func (m *Map) WalkableCells() []Position {
	var cells []Position
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if IsWalkable(m.Cells[y][x].Image) {
				cells = append(cells, Position{X: x, Y: y})
			}
		}
	}
	return cells
}

func (m *Map) inBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}
