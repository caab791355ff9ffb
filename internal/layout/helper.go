package layout

import "github.com/lawnchairsociety/dungeonforge/internal/grid"

// RoomHelper is the derived attachment view of a RoomLayout.
// Edge vectors run left to right for North/South and top to bottom for
// East/West, so facing edges of two neighbors share an index axis.
type RoomHelper struct {
	Layout    RoomLayout
	RoomSize  int
	OccupyMap [][]bool

	North []bool
	East  []bool
	South []bool
	West  []bool
}

// NewRoomHelper derives the occupancy bitmap and edge vectors of l.
func NewRoomHelper(l RoomLayout) *RoomHelper {
	n := l.Size()
	h := &RoomHelper{
		Layout:    l,
		RoomSize:  n,
		OccupyMap: make([][]bool, n),
		North:     make([]bool, n),
		East:      make([]bool, n),
		South:     make([]bool, n),
		West:      make([]bool, n),
	}

	for y := 0; y < n; y++ {
		h.OccupyMap[y] = make([]bool, n)
		for x := 0; x < n; x++ {
			h.OccupyMap[y][x] = IsLayoutWalkable(l.At(x, y))
		}
	}
	for i := 0; i < n; i++ {
		h.North[i] = h.OccupyMap[0][i]
		h.South[i] = h.OccupyMap[n-1][i]
		h.West[i] = h.OccupyMap[i][0]
		h.East[i] = h.OccupyMap[i][n-1]
	}
	return h
}

// Edge returns the walkability vector of the given side.
func (h *RoomHelper) Edge(side grid.Direction) []bool {
	switch side {
	case grid.North:
		return h.North
	case grid.East:
		return h.East
	case grid.South:
		return h.South
	case grid.West:
		return h.West
	default:
		return nil
	}
}

// IsOpen reports whether the side has any walkable cell.
func (h *RoomHelper) IsOpen(side grid.Direction) bool {
	for _, open := range h.Edge(side) {
		if open {
			return true
		}
	}
	return false
}

// CanAttach reports whether other can sit on the given side of h: at least
// one index along the facing edges is walkable in both.
func (h *RoomHelper) CanAttach(other *RoomHelper, side grid.Direction) bool {
	return len(AlignedOpenings(h.Edge(side), other.Edge(side.Opposite()))) > 0
}

// AlignedOpenings returns every index where both edge vectors are walkable.
func AlignedOpenings(a, b []bool) []int {
	var idx []int
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] && b[i] {
			idx = append(idx, i)
		}
	}
	return idx
}
