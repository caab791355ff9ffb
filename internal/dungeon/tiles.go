package dungeon

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/lawnchairsociety/dungeonforge/internal/grid"
	"github.com/lawnchairsociety/dungeonforge/internal/layout"
	"github.com/lawnchairsociety/dungeonforge/internal/logger"
	"github.com/lawnchairsociety/dungeonforge/internal/rng"
)

// TileOptions are the post-processing switches shared by the tile
// synthesis generators.
type TileOptions struct {
	// RemoveIsolated walls off floor cells with no walkable neighbor.
	RemoveIsolated bool
	// PostProcess joins every region and makes the map fully connected.
	PostProcess bool
}

// FromTiles synthesizes a map out of a caller-supplied tileset, using every
// distinct rotation of each tile.
type FromTiles struct {
	Width   int
	Height  int
	Tileset []layout.RoomLayout
	TileOptions
}

// Name returns the algorithm key.
func (g *FromTiles) Name() string { return "from_tiles" }

// Validate requires a non-empty tileset of one size.
func (g *FromTiles) Validate() error {
	if len(g.Tileset) == 0 {
		return ErrEmptyCatalog
	}
	size := g.Tileset[0].Size()
	for i, t := range g.Tileset {
		if t.Size() == 0 || t.Size() != size {
			return fmt.Errorf("tile %d: %w", i, layout.ErrMixedSizes)
		}
	}
	return validateTileGrid(g.Width, g.Height, size)
}

// Generate synthesizes from every distinct rotation of the tileset.
func (g *FromTiles) Generate(src *rng.Source) *Result {
	var tiles []layout.RoomLayout
	for _, t := range g.Tileset {
		tiles = append(tiles, t.DistinctRotations()...)
	}
	return synthesize(g.Name(), g.Width, g.Height, tiles, g.TileOptions, src)
}

// FromPermutationTiles synthesizes a map out of every 3x3 tile with at most
// MaxWalls walls whose floor is 4-connected.
type FromPermutationTiles struct {
	Width    int
	Height   int
	MaxWalls int
	TileOptions
}

// Name returns the algorithm key.
func (g *FromPermutationTiles) Name() string { return "from_permutation_tiles" }

// Validate checks MaxWalls and that one tile slot fits.
func (g *FromPermutationTiles) Validate() error {
	if g.MaxWalls < 0 || g.MaxWalls > 8 {
		return fmt.Errorf("%w: max_walls %d outside [0,8]", ErrInvalidRange, g.MaxWalls)
	}
	return validateTileGrid(g.Width, g.Height, 3)
}

// Generate synthesizes from the permutation tileset.
func (g *FromPermutationTiles) Generate(src *rng.Source) *Result {
	return synthesize(g.Name(), g.Width, g.Height, PermutationTiles(g.MaxWalls), g.TileOptions, src)
}

// BlobTiles synthesizes a map out of the 47 blob tiles.
type BlobTiles struct {
	Width  int
	Height int
	TileOptions
}

// Name returns the algorithm key.
func (g *BlobTiles) Name() string { return "blob_tiles" }

// Validate checks that one tile slot fits.
func (g *BlobTiles) Validate() error {
	return validateTileGrid(g.Width, g.Height, 3)
}

// Generate synthesizes from the blob tileset.
func (g *BlobTiles) Generate(src *rng.Source) *Result {
	return synthesize(g.Name(), g.Width, g.Height, BlobTileset(), g.TileOptions, src)
}

func validateTileGrid(width, height, tileSize int) error {
	if err := validateSize(width, height); err != nil {
		return err
	}
	if (width-2)/tileSize < 1 || (height-2)/tileSize < 1 {
		return fmt.Errorf("%w: %dx%d holds no %dx%d tile slot", ErrInvalidSize, width, height, tileSize, tileSize)
	}
	return nil
}

// synthesize fills tile slots breadth-first from the center slot. A slot is
// tried once, from the first placed neighbor whose facing edge is open, and
// takes a tile compatible with every neighbor already placed; otherwise it
// stays wall.
func synthesize(name string, width, height int, tiles []layout.RoomLayout, opts TileOptions, src *rng.Source) *Result {
	size := tiles[0].Size()
	helpers := make([]*layout.RoomHelper, len(tiles))
	for i, t := range tiles {
		helpers[i] = layout.NewRoomHelper(t)
	}

	cols, rows := (width-2)/size, (height-2)/size
	placed := make([][]int, rows)
	for y := range placed {
		placed[y] = make([]int, cols)
		for x := range placed[y] {
			placed[y][x] = -1
		}
	}
	inSlots := func(p grid.Position) bool {
		return p.X >= 0 && p.X < cols && p.Y >= 0 && p.Y < rows
	}

	visited := mapset.New[grid.Position]()
	q := queue.New[grid.Position]()

	center := grid.Pos(cols/2, rows/2)
	placed[center.Y][center.X] = src.Intn(len(tiles))
	visited.Put(center)
	q.Enqueue(center)
	count := 1

	compatible := make([]int, 0, len(tiles))
	for !q.Empty() {
		s := q.Dequeue()
		h := helpers[placed[s.Y][s.X]]

		for _, dir := range grid.AllDirections() {
			n := s.Step(dir)
			if !inSlots(n) || visited.Has(n) || !h.IsOpen(dir) {
				continue
			}
			visited.Put(n)

			compatible = compatible[:0]
			for i, c := range helpers {
				if fitsNeighbors(c, n, placed, helpers, inSlots) {
					compatible = append(compatible, i)
				}
			}
			if len(compatible) == 0 {
				continue
			}
			placed[n.Y][n.X] = rng.Pick(src, compatible)
			q.Enqueue(n)
			count++
		}
	}

	m := grid.New(width, height)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if placed[y][x] < 0 {
				continue
			}
			t := tiles[placed[y][x]]
			for ty := 0; ty < size; ty++ {
				for tx := 0; tx < size; tx++ {
					m.Set(1+x*size+tx, 1+y*size+ty, t.At(tx, ty))
				}
			}
		}
	}

	if opts.RemoveIsolated {
		removeIsolated(m)
	}
	if opts.PostProcess {
		m.ConnectIsolatedAreas()
	}
	m.CutProblemCorners(src)

	logger.Debug("Synthesized tile map", "algorithm", name, "catalog", len(tiles), "placed", count, "slots", cols*rows)
	return &Result{Algorithm: name, Map: m, Tiles: count}
}

// fitsNeighbors reports whether c can attach to every placed tile around slot n.
func fitsNeighbors(c *layout.RoomHelper, n grid.Position, placed [][]int, helpers []*layout.RoomHelper, inSlots func(grid.Position) bool) bool {
	for _, d := range grid.AllDirections() {
		nb := n.Step(d)
		if !inSlots(nb) || placed[nb.Y][nb.X] < 0 {
			continue
		}
		if !c.CanAttach(helpers[placed[nb.Y][nb.X]], d) {
			return false
		}
	}
	return true
}

// removeIsolated walls off floor cells whose whole neighborhood is blocked.
func removeIsolated(m *grid.Map) {
	for y := 1; y < m.Height-1; y++ {
		for x := 1; x < m.Width-1; x++ {
			if m.Get(x, y) == grid.SymbolFloor && m.CountWalkableAround(x, y) == 0 {
				m.Set(x, y, grid.SymbolWall)
			}
		}
	}
}
