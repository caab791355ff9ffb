package dungeon

import (
	"fmt"

	"github.com/lawnchairsociety/dungeonforge/internal/grid"
	"github.com/lawnchairsociety/dungeonforge/internal/logger"
	"github.com/lawnchairsociety/dungeonforge/internal/rng"
)

// FeatureRooms grows a tree of rectangular rooms outward from a central one.
// Each new room hangs off a single door cut into the wall of an existing
// room and never touches any other room.
type FeatureRooms struct {
	Width  int
	Height int

	RoomSizeMin   int
	RoomSizeMax   int
	MaxIterations int

	ShrineChance      int // percent
	ShrineMinRoomSize int
}

// Name returns the algorithm key.
func (g *FeatureRooms) Name() string { return "feature_rooms" }

// Validate checks that the largest room fits inside the border.
func (g *FeatureRooms) Validate() error {
	if err := validateSize(g.Width, g.Height); err != nil {
		return err
	}
	if g.RoomSizeMin < 1 {
		return fmt.Errorf("%w: room_size_min %d < 1", ErrInvalidRange, g.RoomSizeMin)
	}
	if err := validateRange("room_size", g.RoomSizeMin, g.RoomSizeMax); err != nil {
		return err
	}
	if g.RoomSizeMax > g.Width-2 || g.RoomSizeMax > g.Height-2 {
		return fmt.Errorf("%w: room_size_max %d does not fit %dx%d", ErrInvalidRange, g.RoomSizeMax, g.Width, g.Height)
	}
	if g.MaxIterations < 0 {
		return fmt.Errorf("%w: max_iterations %d < 0", ErrInvalidRange, g.MaxIterations)
	}
	return validatePercent("shrine_chance", g.ShrineChance)
}

// Generate digs a central room and attaches features to its frontier until
// MaxIterations is spent or no wall is left to dig from.
func (g *FeatureRooms) Generate(src *rng.Source) *Result {
	m := grid.New(g.Width, g.Height)
	res := &Result{Algorithm: g.Name(), Map: m}

	w := src.RandomRange(g.RoomSizeMin, g.RoomSizeMax+1)
	h := src.RandomRange(g.RoomSizeMin, g.RoomSizeMax+1)
	g.addRoom(m, grid.RectFromSize(g.Width/2-w/2, g.Height/2-h/2, w, h), res, src)

	frontier := make([]grid.Position, 0, 64)
	for i := 0; i < g.MaxIterations; i++ {
		frontier = g.frontier(m, frontier[:0])
		if len(frontier) == 0 {
			logger.Debug("No frontier left", "iteration", i)
			break
		}

		door := rng.Pick(src, frontier)
		dir, ok := carveDirection(m, door)
		if !ok {
			continue
		}
		quadrant := grid.Pos(rng.Pick(src, []int{-1, 1}), rng.Pick(src, []int{-1, 1}))
		w := src.RandomRange(g.RoomSizeMin, g.RoomSizeMax+1)
		h := src.RandomRange(g.RoomSizeMin, g.RoomSizeMax+1)

		room := roomBeyond(door, dir, quadrant, w, h)
		if !m.IsAreaWalls(room.Grow(1)) {
			continue
		}
		m.Put(door, grid.SymbolDoor)
		m.Cell(door).ObjectHere = grid.GameObject(grid.GameObjectDoor)
		res.Doors = append(res.Doors, door)
		g.addRoom(m, room, res, src)
	}

	m.CutProblemCorners(src)
	logger.Debug("Generated feature rooms", "rooms", len(res.Rooms), "shrines", len(res.Shrines))
	return res
}

// frontier appends every interior wall cell touching exactly one walkable cell.
func (g *FeatureRooms) frontier(m *grid.Map, out []grid.Position) []grid.Position {
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			p := grid.Pos(x, y)
			if m.IsWallAt(p) && m.IsDeadEnd(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

func (g *FeatureRooms) addRoom(m *grid.Map, r grid.Rect, res *Result, src *rng.Source) {
	zone := len(res.Rooms)
	m.FillRect(r, grid.SymbolFloor)
	m.SetZone(r, zone)
	res.Rooms = append(res.Rooms, r)

	if r.Width() < g.ShrineMinRoomSize || r.Height() < g.ShrineMinRoomSize {
		return
	}
	if !src.Rolld100(g.ShrineChance) {
		return
	}
	c := r.Center()
	m.Put(c, grid.SymbolShrine)
	m.Cell(c).ObjectHere = grid.GameObject(grid.GameObjectShrine)
	res.Shrines = append(res.Shrines, c)
}

// carveDirection points away from the single walkable neighbor of p.
func carveDirection(m *grid.Map, p grid.Position) (grid.Direction, bool) {
	for _, dir := range grid.AllDirections() {
		if m.IsWalkableAt(p.Step(dir)) {
			return dir.Opposite(), true
		}
	}
	return grid.North, false
}

// roomBeyond places a w x h room just past door in direction dir. The
// quadrant component along dir is ignored; the lateral one picks which way
// the room extends from the door's row or column.
func roomBeyond(door grid.Position, dir grid.Direction, quadrant grid.Position, w, h int) grid.Rect {
	var x1, y1 int
	switch dir {
	case grid.East:
		x1 = door.X + 1
	case grid.West:
		x1 = door.X - w
	case grid.South:
		y1 = door.Y + 1
	case grid.North:
		y1 = door.Y - h
	}

	if dir.IsHorizontal() {
		y1 = door.Y
		if quadrant.Y < 0 {
			y1 = door.Y - h + 1
		}
	} else {
		x1 = door.X
		if quadrant.X < 0 {
			x1 = door.X - w + 1
		}
	}
	return grid.RectFromSize(x1, y1, w, h)
}
