package grid

// IsInsideMap reports whether p lies on the map. With leaveBorders set the
// outermost ring is excluded so carving never touches it.
func (m *Map) IsInsideMap(p Position, leaveBorders bool) bool {
	if leaveBorders {
		return p.X >= 1 && p.X < m.Width-1 && p.Y >= 1 && p.Y < m.Height-1
	}
	return m.inBounds(p.X, p.Y)
}

// IsDeadEnd reports whether exactly one orthogonal neighbor of p is walkable.
// This is the frontier test for carving: a cell touching the carved area at a
// single point.
func (m *Map) IsDeadEnd(p Position) bool {
	return m.CountOrthogonalWalkable(p) == 1
}

// CountOrthogonalWalkable counts walkable cells among the 4 neighbors of p.
func (m *Map) CountOrthogonalWalkable(p Position) int {
	n := 0
	for _, dir := range AllDirections() {
		if m.IsWalkableAt(p.Step(dir)) {
			n++
		}
	}
	return n
}

// CountAround counts cells holding ch in the 8-neighborhood of (x, y).
// Cells outside the map are left out of the count entirely.
func (m *Map) CountAround(x, y int, ch byte) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !m.inBounds(nx, ny) {
				continue
			}
			if m.Cells[ny][nx].Image == ch {
				n++
			}
		}
	}
	return n
}

// CountWalkableAround counts walkable cells in the 8-neighborhood of (x, y).
func (m *Map) CountWalkableAround(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if m.IsWalkableAt(Position{X: x + dx, Y: y + dy}) {
				n++
			}
		}
	}
	return n
}

// CreateBorders walls off the outermost ring of the map.
func (m *Map) CreateBorders() {
	for x := 0; x < m.Width; x++ {
		m.Cells[0][x].Image = SymbolWall
		m.Cells[m.Height-1][x].Image = SymbolWall
	}
	for y := 0; y < m.Height; y++ {
		m.Cells[y][0].Image = SymbolWall
		m.Cells[y][m.Width-1].Image = SymbolWall
	}
}

// IsAreaWalls reports whether every cell of r is on the map and a wall.
func (m *Map) IsAreaWalls(r Rect) bool {
	if r.Empty() {
		return false
	}
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			if !m.inBounds(x, y) || m.Cells[y][x].Image != SymbolWall {
				return false
			}
		}
	}
	return true
}

// IsAreaFree reports whether no cell of r is walkable. Cells off the map are ignored.
func (m *Map) IsAreaFree(r Rect) bool {
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			if m.IsWalkableAt(Position{X: x, Y: y}) {
				return false
			}
		}
	}
	return true
}

// FillRect writes ch into every on-map cell of r.
func (m *Map) FillRect(r Rect, ch byte) {
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			m.Set(x, y, ch)
		}
	}
}

// SetZone tags every on-map cell of r with zone.
func (m *Map) SetZone(r Rect, zone int) {
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			if m.inBounds(x, y) {
				m.Cells[y][x].ZoneMarker = zone
			}
		}
	}
}

// CarveLCorridor digs floor from a to b, stepping along X first and then
// along Y. Only walls are overwritten. It returns the cells it turned to floor.
func (m *Map) CarveLCorridor(a, b Position) []Position {
	var carved []Position
	carve := func(x, y int) {
		if m.inBounds(x, y) && m.Cells[y][x].Image == SymbolWall {
			m.Cells[y][x].Image = SymbolFloor
			carved = append(carved, Position{X: x, Y: y})
		}
	}

	stepX := 1
	if b.X < a.X {
		stepX = -1
	}
	x := a.X
	for ; x != b.X; x += stepX {
		carve(x, a.Y)
	}
	carve(x, a.Y)

	stepY := 1
	if b.Y < a.Y {
		stepY = -1
	}
	for y := a.Y; y != b.Y; y += stepY {
		carve(b.X, y)
	}
	carve(b.X, b.Y)

	return carved
}
