package dungeon

import (
	"fmt"

	"github.com/lawnchairsociety/dungeonforge/internal/grid"
	"github.com/lawnchairsociety/dungeonforge/internal/logger"
	"github.com/lawnchairsociety/dungeonforge/internal/rng"
)

// BSPRooms partitions the map by binary space partitioning and hollows one
// room out of every leaf.
type BSPRooms struct {
	Width  int
	Height int

	MinRoomSize   int
	SplitRatioMin int // percent
	SplitRatioMax int // percent
}

// Name returns the algorithm key.
func (g *BSPRooms) Name() string { return "bsp_rooms" }

// Validate rejects room sizes that do not fit and split ratios outside [1,99].
func (g *BSPRooms) Validate() error {
	if err := validateSize(g.Width, g.Height); err != nil {
		return err
	}
	if g.MinRoomSize < 3 {
		return fmt.Errorf("%w: min_room_size %d < 3", ErrInvalidRange, g.MinRoomSize)
	}
	if g.MinRoomSize > g.Width || g.MinRoomSize > g.Height {
		return fmt.Errorf("%w: min_room_size %d exceeds %dx%d", ErrInvalidRange, g.MinRoomSize, g.Width, g.Height)
	}
	if g.SplitRatioMin < 1 || g.SplitRatioMax > 99 {
		return fmt.Errorf("%w: split ratio [%d,%d] outside [1,99]", ErrInvalidRange, g.SplitRatioMin, g.SplitRatioMax)
	}
	return validateRange("split_ratio", g.SplitRatioMin, g.SplitRatioMax)
}

// bspNode lives in the tree arena; children are arena indexes, -1 for none.
type bspNode struct {
	rect        grid.Rect
	left, right int
}

func (n bspNode) leaf() bool {
	return n.left < 0
}

type bspTree struct {
	nodes []bspNode
}

func (t *bspTree) add(r grid.Rect) int {
	t.nodes = append(t.nodes, bspNode{rect: r, left: -1, right: -1})
	return len(t.nodes) - 1
}

// Generate splits the map, hollows one room per leaf and chains the leaves
// with L-shaped corridors.
func (g *BSPRooms) Generate(src *rng.Source) *Result {
	m := grid.New(g.Width, g.Height)
	tree := &bspTree{}
	root := tree.add(grid.RectFromSize(0, 0, g.Width, g.Height))
	g.split(tree, root, src)

	res := &Result{Algorithm: g.Name(), Map: m}
	g.hollow(m, tree, root, res)

	var points []grid.Position
	g.collectLeaves(tree, root, &points)
	for i := 1; i < len(points); i++ {
		m.CarveLCorridor(points[i-1], points[i])
	}

	m.CutProblemCorners(src)
	res.Doors = m.PlaceDoors()
	logger.Debug("Generated BSP rooms", "nodes", len(tree.nodes), "rooms", len(res.Rooms), "doors", len(res.Doors))
	return res
}

// split divides a node along its longer axis until a child would fall
// below MinRoomSize on either side.
func (g *BSPRooms) split(t *bspTree, idx int, src *rng.Source) {
	r := t.nodes[idx].rect
	ratio := src.RandomRange(g.SplitRatioMin, g.SplitRatioMax+1)

	var a, b grid.Rect
	if r.Width() >= r.Height() {
		w := r.Width() * ratio / 100
		a = grid.Rect{X1: r.X1, Y1: r.Y1, X2: r.X1 + w - 1, Y2: r.Y2}
		b = grid.Rect{X1: r.X1 + w, Y1: r.Y1, X2: r.X2, Y2: r.Y2}
	} else {
		h := r.Height() * ratio / 100
		a = grid.Rect{X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y1 + h - 1}
		b = grid.Rect{X1: r.X1, Y1: r.Y1 + h, X2: r.X2, Y2: r.Y2}
	}
	if !g.fits(a) || !g.fits(b) {
		return
	}

	left := t.add(a)
	right := t.add(b)
	t.nodes[idx].left, t.nodes[idx].right = left, right
	g.split(t, left, src)
	g.split(t, right, src)
}

func (g *BSPRooms) fits(r grid.Rect) bool {
	return r.Width() >= g.MinRoomSize && r.Height() >= g.MinRoomSize
}

// hollow carves node interiors bottom-up. A node whose interior already
// holds floor is left alone, so only leaves end up carved.
func (g *BSPRooms) hollow(m *grid.Map, t *bspTree, idx int, res *Result) {
	n := t.nodes[idx]
	if !n.leaf() {
		g.hollow(m, t, n.left, res)
		g.hollow(m, t, n.right, res)
	}

	interior := n.rect.Grow(-1)
	if interior.Empty() || !m.IsAreaFree(interior) {
		return
	}
	m.FillRect(interior, grid.SymbolFloor)
	m.SetZone(interior, len(res.Rooms))
	res.Rooms = append(res.Rooms, interior)
}

func (g *BSPRooms) collectLeaves(t *bspTree, idx int, out *[]grid.Position) {
	n := t.nodes[idx]
	if n.leaf() {
		*out = append(*out, n.rect.Center())
		return
	}
	g.collectLeaves(t, n.left, out)
	g.collectLeaves(t, n.right, out)
}
