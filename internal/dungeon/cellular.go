package dungeon

import (
	"fmt"

	"github.com/lawnchairsociety/dungeonforge/internal/grid"
	"github.com/lawnchairsociety/dungeonforge/internal/logger"
	"github.com/lawnchairsociety/dungeonforge/internal/rng"
)

// CellularAutomata grows caves from random noise. A floor cell dies when
// fewer than DeathThreshold of its neighbors are floor; a wall cell is born
// as floor when more than BirthThreshold are.
type CellularAutomata struct {
	Width  int
	Height int

	InitialWallChance int
	BirthThreshold    int
	DeathThreshold    int
	MaxIterations     int
}

// Name returns the algorithm key.
func (g *CellularAutomata) Name() string { return "cellular_automata" }

// Validate checks the wall chance and the neighbor thresholds.
func (g *CellularAutomata) Validate() error {
	if err := validateSize(g.Width, g.Height); err != nil {
		return err
	}
	if err := validatePercent("initial_wall_chance", g.InitialWallChance); err != nil {
		return err
	}
	if g.BirthThreshold < 0 || g.BirthThreshold > 8 {
		return fmt.Errorf("%w: birth_threshold %d outside [0,8]", ErrInvalidRange, g.BirthThreshold)
	}
	if g.DeathThreshold < 0 || g.DeathThreshold > 8 {
		return fmt.Errorf("%w: death_threshold %d outside [0,8]", ErrInvalidRange, g.DeathThreshold)
	}
	if g.MaxIterations < 0 {
		return fmt.Errorf("%w: max_iterations %d < 0", ErrInvalidRange, g.MaxIterations)
	}
	return nil
}

// Generate seeds random noise, smooths it and joins the isolated caves.
func (g *CellularAutomata) Generate(src *rng.Source) *Result {
	cur := grid.New(g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !src.Rolld100(g.InitialWallChance) {
				cur.Set(x, y, grid.SymbolFloor)
			}
		}
	}

	next := grid.New(g.Width, g.Height)
	for i := 0; i < g.MaxIterations; i++ {
		g.step(cur, next)
		cur, next = next, cur
	}

	cur.CreateBorders()
	joined := cur.ConnectIsolatedAreas()
	cur.CutProblemCorners(src)
	logger.Debug("Generated caves", "iterations", g.MaxIterations, "joined", joined)

	return &Result{Algorithm: g.Name(), Map: cur}
}

// step computes one generation of src into dst. src is never written.
func (g *CellularAutomata) step(src, dst *grid.Map) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			floors := src.CountAround(x, y, grid.SymbolFloor)
			out := src.Get(x, y)
			if out == grid.SymbolFloor {
				if floors < g.DeathThreshold {
					out = grid.SymbolWall
				}
			} else if floors > g.BirthThreshold {
				out = grid.SymbolFloor
			}
			dst.Set(x, y, out)
		}
	}
}
