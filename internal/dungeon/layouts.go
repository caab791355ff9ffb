package dungeon

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"

	"github.com/lawnchairsociety/dungeonforge/internal/grid"
	"github.com/lawnchairsociety/dungeonforge/internal/layout"
	"github.com/lawnchairsociety/dungeonforge/internal/logger"
	"github.com/lawnchairsociety/dungeonforge/internal/rng"
)

// FromLayouts composes a level out of catalog templates. Rooms sit on a
// lattice anchored at Start with a one-cell wall gap between neighbors; the
// gap is opened wherever both facing edges are walkable. Every free lattice
// slot next to a room is filled, with the fallback template when nothing
// attaches on that side.
type FromLayouts struct {
	Width   int
	Height  int
	Start   grid.Position // top-left corner of the seed room
	Catalog *layout.Catalog
}

// Name returns the algorithm key.
func (g *FromLayouts) Name() string { return "from_layouts" }

// Validate checks the map size, the catalog and that the seed room fits.
func (g *FromLayouts) Validate() error {
	if err := validateSize(g.Width, g.Height); err != nil {
		return err
	}
	if err := g.Catalog.Validate(); err != nil {
		return err
	}
	if err := validateStart(g.Width, g.Height, g.Start); err != nil {
		return err
	}
	size := g.Catalog.RoomSize()
	if !g.fits(g.Start, size) {
		return fmt.Errorf("%w: %dx%d seed room at %v leaves the map", ErrStartOutOfBounds, size, size, g.Start)
	}
	return nil
}

// placedRoom is a stamped template together with its attachment view.
type placedRoom struct {
	Placement
	helper *layout.RoomHelper
}

// candidate is one template in one rotation.
type candidate struct {
	template int
	rotation layout.Rotation
	chance   int
	helper   *layout.RoomHelper
}

// Generate stamps the seed room at Start and grows the level outward one
// lattice slot at a time.
func (g *FromLayouts) Generate(src *rng.Source) *Result {
	size := g.Catalog.RoomSize()
	stride := size + 1
	candidates := g.candidates()

	var rooms []placedRoom
	var gaps []grid.Position
	occupied := mapset.New[grid.Position]()

	place := func(corner grid.Position, c candidate, fallback bool) int {
		rooms = append(rooms, placedRoom{
			Placement: Placement{
				Corner:   corner,
				Template: c.template,
				Rotation: c.rotation,
				Size:     size,
				Fallback: fallback,
			},
			helper: c.helper,
		})
		occupied.Put(corner)
		return len(rooms) - 1
	}

	seed, ok := g.pick(candidates, src.Percent(), nil, grid.North, src)
	if !ok {
		seed = candidates[0]
	}
	s := stack.New[int]()
	s.Push(place(g.Start, seed, !ok))

	for s.Size() > 0 {
		cur := rooms[s.Pop()]

		for _, dir := range grid.AllDirections() {
			dx, dy := dir.Delta()
			corner := cur.Corner.Add(dx*stride, dy*stride)
			if !g.fits(corner, size) || occupied.Has(corner) {
				continue
			}

			next, ok := g.pick(candidates, src.Percent(), cur.helper, dir, src)
			if !ok {
				next = candidates[0]
				logger.Debug("No compatible template, using fallback", "corner", corner, "side", dir)
			}
			idx := place(corner, next, !ok)

			for _, i := range layout.AlignedOpenings(cur.helper.Edge(dir), next.helper.Edge(dir.Opposite())) {
				gaps = append(gaps, gapCell(cur.Corner, size, dir, i))
			}
			s.Push(idx)
		}
	}

	m := grid.New(g.Width, g.Height)
	res := &Result{Algorithm: g.Name(), Map: m}
	for i, r := range rooms {
		g.blit(m, r, i)
		res.Placements = append(res.Placements, r.Placement)
		res.Rooms = append(res.Rooms, r.Rect())
	}
	for _, p := range gaps {
		m.Put(p, grid.SymbolFloor)
	}
	m.CutProblemCorners(src)

	logger.Debug("Generated layout level", "rooms", len(rooms), "gaps", len(gaps))
	return res
}

// candidates lists every template in every rotation. Index 0 is template 0
// unrotated, the fallback.
func (g *FromLayouts) candidates() []candidate {
	var out []candidate
	for i, room := range g.Catalog.Rooms {
		for _, r := range layout.AllRotations() {
			out = append(out, candidate{
				template: i,
				rotation: r,
				chance:   room.Chance,
				helper:   layout.NewRoomHelper(room.Layout.Rotate(r)),
			})
		}
	}
	return out
}

// pick chooses uniformly among candidates whose chance passes roll and which
// can sit on side dir of from. A nil from accepts any candidate that passes.
func (g *FromLayouts) pick(all []candidate, roll int, from *layout.RoomHelper, dir grid.Direction, src *rng.Source) (candidate, bool) {
	var ok []candidate
	for _, c := range all {
		if roll > c.chance {
			continue
		}
		if from != nil && !from.CanAttach(c.helper, dir) {
			continue
		}
		ok = append(ok, c)
	}
	if len(ok) == 0 {
		return candidate{}, false
	}
	return rng.Pick(src, ok), true
}

// fits reports whether a room at corner stays off the outer ring.
func (g *FromLayouts) fits(corner grid.Position, size int) bool {
	return corner.X >= 1 && corner.Y >= 1 &&
		corner.X+size-1 <= g.Width-2 && corner.Y+size-1 <= g.Height-2
}

func (g *FromLayouts) blit(m *grid.Map, r placedRoom, zone int) {
	l := r.helper.Layout
	for y := 0; y < r.Size; y++ {
		for x := 0; x < r.Size; x++ {
			p := r.Corner.Add(x, y)
			ch := l.At(x, y)
			m.Put(p, ch)
			m.Cell(p).ZoneMarker = zone
			if ch == grid.SymbolDoor {
				m.Cell(p).ObjectHere = grid.GameObject(grid.GameObjectDoor)
			}
		}
	}
}

// gapCell returns the wall cell between a room at corner and its neighbor on
// side dir, at index i along the shared edge.
func gapCell(corner grid.Position, size int, dir grid.Direction, i int) grid.Position {
	switch dir {
	case grid.North:
		return corner.Add(i, -1)
	case grid.South:
		return corner.Add(i, size)
	case grid.West:
		return corner.Add(-1, i)
	default:
		return corner.Add(size, i)
	}
}
