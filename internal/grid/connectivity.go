package grid

import (
	"github.com/zyedidia/generic/queue"

	"github.com/lawnchairsociety/dungeonforge/internal/logger"
	"github.com/lawnchairsociety/dungeonforge/internal/rng"
)

// nearEnough stops the closest-pair search early; any pair this close gives
// a corridor of at most two cells.
const nearEnough = 3

// MarkAreas flood-fills the walkable cells under 4-directional movement and
// stores each cell's component id in AreaMarker (-1 for non-walkable cells).
// Components are numbered in row-major order of their first cell.
func (m *Map) MarkAreas() [][]Position {
	for y := range m.Cells {
		for x := range m.Cells[y] {
			m.Cells[y][x].AreaMarker = -1
		}
	}

	var areas [][]Position
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			cell := &m.Cells[y][x]
			if cell.AreaMarker != -1 || !cell.Walkable() {
				continue
			}
			areas = append(areas, m.floodFill(Position{X: x, Y: y}, len(areas)))
		}
	}
	return areas
}

// floodFill marks every walkable cell reachable from start with id.
func (m *Map) floodFill(start Position, id int) []Position {
	var area []Position
	q := queue.New[Position]()
	m.Cell(start).AreaMarker = id
	q.Enqueue(start)

	for !q.Empty() {
		p := q.Dequeue()
		area = append(area, p)

		for _, dir := range AllDirections() {
			n := p.Step(dir)
			if !m.IsWalkableAt(n) {
				continue
			}
			cell := m.Cell(n)
			if cell.AreaMarker != -1 {
				continue
			}
			cell.AreaMarker = id
			q.Enqueue(n)
		}
	}
	return area
}

// ConnectIsolatedAreas joins every walkable component to the first one found
// by carving an L-shaped corridor between the closest pair of cells. Afterwards
// the walkable cells form a single component. It returns how many components
// were joined.
func (m *Map) ConnectIsolatedAreas() int {
	areas := m.MarkAreas()
	if len(areas) <= 1 {
		return 0
	}

	joined := append([]Position(nil), areas[0]...)
	for _, area := range areas[1:] {
		from, to := closestPair(area, joined)
		carved := m.CarveLCorridor(from, to)
		joined = append(joined, area...)
		joined = append(joined, carved...)
		logger.Debug("Joined isolated area", "from", from, "to", to, "corridor", len(carved))
	}

	m.MarkAreas()
	return len(areas) - 1
}

// closestPair finds the pair (a in from, b in to) with the smallest Manhattan
// distance, returning as soon as one is within nearEnough.
func closestPair(from, to []Position) (Position, Position) {
	bestA, bestB := from[0], to[0]
	best := bestA.Manhattan(bestB)
	if best <= nearEnough {
		return bestA, bestB
	}
	for _, a := range from {
		for _, b := range to {
			d := a.Manhattan(b)
			if d < best {
				best, bestA, bestB = d, a, b
				if best <= nearEnough {
					return bestA, bestB
				}
			}
		}
	}
	return bestA, bestB
}

// CutProblemCorners opens one of the two orthogonal cells between every pair
// of diagonally adjacent walkable cells whose connecting cells are both
// blocked. Passes repeat until no such pair remains. It returns the number of
// cells opened.
func (m *Map) CutProblemCorners(src *rng.Source) int {
	opened := 0
	for {
		changed := 0
		for y := 0; y < m.Height-1; y++ {
			for x := 0; x < m.Width; x++ {
				a := Position{X: x, Y: y}
				if !m.IsWalkableAt(a) {
					continue
				}
				for _, dx := range [2]int{1, -1} {
					b := a.Add(dx, 1)
					if !m.IsWalkableAt(b) {
						continue
					}
					side := a.Add(dx, 0)
					below := a.Add(0, 1)
					if m.IsWalkableAt(side) || m.IsWalkableAt(below) {
						continue
					}
					if src.Bool() {
						m.Put(side, SymbolFloor)
					} else {
						m.Put(below, SymbolFloor)
					}
					changed++
				}
			}
		}
		if changed == 0 {
			return opened
		}
		opened += changed
	}
}

// HasProblemCorners reports whether any diagonal walkable pair is cut off
// from both connecting cells.
func (m *Map) HasProblemCorners() bool {
	for y := 0; y < m.Height-1; y++ {
		for x := 0; x < m.Width; x++ {
			a := Position{X: x, Y: y}
			if !m.IsWalkableAt(a) {
				continue
			}
			for _, dx := range [2]int{1, -1} {
				if m.IsWalkableAt(a.Add(dx, 1)) &&
					!m.IsWalkableAt(a.Add(dx, 0)) && !m.IsWalkableAt(a.Add(0, 1)) {
					return true
				}
			}
		}
	}
	return false
}

// FillDeadEnds walls off floor cells that are dead ends and have between
// EmptyCellsAroundMin and EmptyCellsAroundMax walkable cells around them.
// Each pass decides on a snapshot, so one pass shortens a corridor by one
// cell. It returns the number of cells filled.
func (m *Map) FillDeadEnds(params RemovalParams) int {
	filled := 0
	for pass := 0; pass < params.Passes; pass++ {
		var ends []Position
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				if m.Cells[y][x].Image != SymbolFloor {
					continue
				}
				p := Position{X: x, Y: y}
				if !m.IsDeadEnd(p) {
					continue
				}
				around := m.CountWalkableAround(x, y)
				if around < params.EmptyCellsAroundMin || around > params.EmptyCellsAroundMax {
					continue
				}
				ends = append(ends, p)
			}
		}
		if len(ends) == 0 {
			break
		}
		for _, p := range ends {
			m.Put(p, SymbolWall)
		}
		filled += len(ends)
	}
	return filled
}

// IsConnected reports whether all walkable cells form at most one component.
// It overwrites AreaMarker.
func (m *Map) IsConnected() bool {
	return len(m.MarkAreas()) <= 1
}
