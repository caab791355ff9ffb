package dungeon

import (
	"github.com/zyedidia/generic/stack"

	"github.com/lawnchairsociety/dungeonforge/internal/grid"
	"github.com/lawnchairsociety/dungeonforge/internal/logger"
	"github.com/lawnchairsociety/dungeonforge/internal/rng"
)

// RecursiveBacktracker carves a perfect maze by randomized depth-first search.
type RecursiveBacktracker struct {
	Width  int
	Height int
	Start  grid.Position
}

// Name returns the algorithm key.
func (g *RecursiveBacktracker) Name() string { return "recursive_backtracker" }

// Validate checks the map size and start position.
func (g *RecursiveBacktracker) Validate() error {
	if err := validateSize(g.Width, g.Height); err != nil {
		return err
	}
	return validateStart(g.Width, g.Height, g.Start)
}

// Generate carves a perfect maze from Start.
func (g *RecursiveBacktracker) Generate(src *rng.Source) *Result {
	m := g.carve(src)
	m.CutProblemCorners(src)
	logger.Debug("Generated maze", "algorithm", g.Name(), "floor", m.Count(grid.SymbolFloor))
	return &Result{Algorithm: g.Name(), Map: m}
}

// carve builds the spanning tree. Every cell it opens touches exactly one
// floor cell at that moment, so the result has no loops.
func (g *RecursiveBacktracker) carve(src *rng.Source) *grid.Map {
	m := grid.New(g.Width, g.Height)
	m.Put(g.Start, grid.SymbolFloor)
	m.Cell(g.Start).Visited = true

	s := stack.New[grid.Position]()
	s.Push(g.Start)

	options := make([]grid.Position, 0, 4)
	for s.Size() > 0 {
		cur := s.Peek()

		options = options[:0]
		for _, dir := range grid.AllDirections() {
			n := cur.Step(dir)
			if m.IsInsideMap(n, true) && m.IsDeadEnd(n) && !m.Cell(n).Visited {
				options = append(options, n)
			}
		}
		if len(options) == 0 {
			s.Pop()
			continue
		}

		next := rng.Pick(src, options)
		m.Put(next, grid.SymbolFloor)
		m.Cell(next).Visited = true
		s.Push(next)
	}

	m.ResetVisited()
	return m
}
