package dungeon

import (
	"fmt"

	"github.com/zyedidia/generic/stack"

	"github.com/lawnchairsociety/dungeonforge/internal/grid"
	"github.com/lawnchairsociety/dungeonforge/internal/logger"
	"github.com/lawnchairsociety/dungeonforge/internal/rng"
)

// Tunneler digs straight corridors. In Normal mode it turns after every
// corridor and keeps going from a random cell of the one just dug; when a
// corridor cannot advance at all it restarts at a random interior cell, so
// the map may end up disconnected. In Backtracking mode it grows a tree of
// tunnels and backtracks when a tunnel can neither go on nor branch.
type Tunneler struct {
	Width  int
	Height int
	Start  grid.Position

	Iterations      int
	TunnelLengthMin int
	TunnelLengthMax int

	Backtracking     bool
	AdditionalTweaks bool
	Removal          grid.RemovalParams
}

// Name returns the algorithm key of the selected strategy.
func (g *Tunneler) Name() string {
	if g.Backtracking {
		return "tunneler_backtracking"
	}
	return "tunneler"
}

// Validate checks the map size, the start and the tunnel length range.
func (g *Tunneler) Validate() error {
	if err := validateSize(g.Width, g.Height); err != nil {
		return err
	}
	if err := validateStart(g.Width, g.Height, g.Start); err != nil {
		return err
	}
	if g.TunnelLengthMin < 1 {
		return fmt.Errorf("%w: tunnel_length_min %d < 1", ErrInvalidRange, g.TunnelLengthMin)
	}
	if err := validateRange("tunnel_length", g.TunnelLengthMin, g.TunnelLengthMax); err != nil {
		return err
	}
	if g.Iterations < 0 {
		return fmt.Errorf("%w: iterations %d < 0", ErrInvalidRange, g.Iterations)
	}
	if g.AdditionalTweaks {
		if err := validateRange("empty_cells_around", g.Removal.EmptyCellsAroundMin, g.Removal.EmptyCellsAroundMax); err != nil {
			return err
		}
	}
	return nil
}

// Generate digs with the selected strategy. Normal output may be
// disconnected and is left that way.
func (g *Tunneler) Generate(src *rng.Source) *Result {
	var m *grid.Map
	if g.Backtracking {
		m = g.backtrack(src)
		if g.AdditionalTweaks {
			filled := m.FillDeadEnds(g.Removal)
			logger.Debug("Filled dead ends", "cells", filled)
		}
	} else {
		m = g.dig(src)
	}
	m.CutProblemCorners(src)
	return &Result{Algorithm: g.Name(), Map: m}
}

// dig runs the Normal strategy.
func (g *Tunneler) dig(src *rng.Source) *grid.Map {
	m := grid.New(g.Width, g.Height)
	pos := g.Start
	m.Put(pos, grid.SymbolFloor)
	dir := rng.Pick(src, grid.AllDirections())

	for i := 0; i < g.Iterations; i++ {
		dir = dir.Perpendicular()[src.Intn(2)]
		length := src.RandomRange(g.TunnelLengthMin, g.TunnelLengthMax+1)

		corridor := []grid.Position{pos}
		for step := 0; step < length; step++ {
			n := pos.Step(dir)
			if !m.IsInsideMap(n, true) {
				break
			}
			pos = n
			m.Put(pos, grid.SymbolFloor)
			corridor = append(corridor, pos)
		}

		if len(corridor) == 1 {
			// Stuck against the border: start over somewhere else.
			pos = grid.Pos(src.RandomRange(1, g.Width-1), src.RandomRange(1, g.Height-1))
			m.Put(pos, grid.SymbolFloor)
			logger.Debug("Tunneler restarted", "iteration", i, "at", pos)
			continue
		}
		pos = rng.Pick(src, corridor)
	}
	return m
}

// segment is one frame of the backtracking stack: a dug cell, the direction
// the tunnel is heading and how far it has run against its length limit.
type segment struct {
	pos   grid.Position
	dir   grid.Direction
	run   int
	limit int
}

// backtrack runs the Backtracking strategy.
func (g *Tunneler) backtrack(src *rng.Source) *grid.Map {
	m := grid.New(g.Width, g.Height)
	m.Put(g.Start, grid.SymbolFloor)
	m.Cell(g.Start).Visited = true

	s := stack.New[segment]()
	s.Push(segment{
		pos:   g.Start,
		dir:   rng.Pick(src, grid.AllDirections()),
		limit: src.RandomRange(g.TunnelLengthMin, g.TunnelLengthMax+1),
	})

	branches := make([]grid.Direction, 0, 2)
	for s.Size() > 0 {
		top := s.Peek()

		next := top.pos.Step(top.dir)
		if top.run < top.limit && g.canDig(m, next) {
			m.Put(next, grid.SymbolFloor)
			m.Cell(next).Visited = true
			s.Push(segment{pos: next, dir: top.dir, run: top.run + 1, limit: top.limit})
			continue
		}

		branches = branches[:0]
		for _, d := range top.dir.Perpendicular() {
			if g.canDig(m, top.pos.Step(d)) {
				branches = append(branches, d)
			}
		}
		if len(branches) == 0 {
			s.Pop()
			continue
		}
		s.Push(segment{
			pos:   top.pos,
			dir:   rng.Pick(src, branches),
			limit: src.RandomRange(g.TunnelLengthMin, g.TunnelLengthMax+1),
		})
	}

	m.ResetVisited()
	return m
}

func (g *Tunneler) canDig(m *grid.Map, p grid.Position) bool {
	return m.IsInsideMap(p, true) && m.IsDeadEnd(p) && !m.Cell(p).Visited
}
