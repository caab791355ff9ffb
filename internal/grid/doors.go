package grid

// IsSpotValidForDoor reports whether a door fits at p: p is floor inside the
// map, one opposite pair of neighbors is blocked and the other walkable, at
// least one walkable side opens into a room (both of its diagonals are
// walkable), and no door is already adjacent.
//
//	##.     .#.
//	.+.  or .+.    (corridor meeting a room, or a wall punched between rooms)
//	##.     .#.
func (m *Map) IsSpotValidForDoor(p Position) bool {
	if !m.IsInsideMap(p, true) || m.At(p) != SymbolFloor {
		return false
	}
	if m.CountAround(p.X, p.Y, SymbolDoor) > 0 {
		return false
	}

	walk := func(dx, dy int) bool {
		return m.IsWalkableAt(p.Add(dx, dy))
	}

	n, e, s, w := walk(0, -1), walk(1, 0), walk(0, 1), walk(-1, 0)

	switch {
	case e && w && !n && !s:
		eastRoom := walk(1, -1) && walk(1, 1)
		westRoom := walk(-1, -1) && walk(-1, 1)
		return eastRoom || westRoom
	case n && s && !e && !w:
		northRoom := walk(-1, -1) && walk(1, -1)
		southRoom := walk(-1, 1) && walk(1, 1)
		return northRoom || southRoom
	}
	return false
}

// PlaceDoors puts a door on every valid spot, scanning in row-major order.
// It returns the doors placed.
func (m *Map) PlaceDoors() []Position {
	var doors []Position
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			p := Position{X: x, Y: y}
			if m.IsSpotValidForDoor(p) {
				m.Put(p, SymbolDoor)
				m.Cell(p).ObjectHere = GameObject(GameObjectDoor)
				doors = append(doors, p)
			}
		}
	}
	return doors
}
