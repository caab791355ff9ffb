// Package dungeon contains the map generators. Each generator is a plain
// parameter struct; Generate builds one grid from scratch using the random
// source it is handed and never fails for parameters that pass Validate.
package dungeon

import (
	"errors"
	"fmt"

	"github.com/lawnchairsociety/dungeonforge/internal/grid"
	"github.com/lawnchairsociety/dungeonforge/internal/layout"
	"github.com/lawnchairsociety/dungeonforge/internal/rng"
)

// MinMapSize is the smallest width or height any generator accepts.
const MinMapSize = 5

var (
	ErrInvalidSize      = grid.ErrInvalidSize
	ErrInvalidRange     = errors.New("dungeon: invalid parameter range")
	ErrStartOutOfBounds = errors.New("dungeon: start position outside the map interior")
	ErrEmptyCatalog     = layout.ErrEmptyCatalog
)

// Generator is implemented by every map algorithm.
type Generator interface {
	// Name returns the algorithm name used in configuration.
	Name() string
	// Validate rejects parameters that Generate cannot honor.
	Validate() error
	// Generate builds a new map. Output is fully determined by the
	// parameters and the state of src.
	Generate(src *rng.Source) *Result
}

// Placement records where a template room was stamped.
type Placement struct {
	Corner   grid.Position
	Template int
	Rotation layout.Rotation
	Size     int
	Fallback bool // no compatible candidate; template 0 used unrotated
}

// Rect returns the cells covered by the placed room.
func (p Placement) Rect() grid.Rect {
	return grid.RectFromSize(p.Corner.X, p.Corner.Y, p.Size, p.Size)
}

// Result is a finished map plus whatever metadata its generator reports.
type Result struct {
	Algorithm  string
	Map        *grid.Map
	Rooms      []grid.Rect
	Doors      []grid.Position
	Shrines    []grid.Position
	Placements []Placement
	Tiles      int
}

// Raw returns the finished character grid.
func (r *Result) Raw() []string {
	return r.Map.Raw()
}

func validateSize(width, height int) error {
	if width < MinMapSize || height < MinMapSize {
		return fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrInvalidSize, width, height, MinMapSize, MinMapSize)
	}
	return nil
}

func validateRange(name string, min, max int) error {
	if min > max {
		return fmt.Errorf("%w: %s min %d > max %d", ErrInvalidRange, name, min, max)
	}
	return nil
}

func validatePercent(name string, v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%w: %s %d outside [0,100]", ErrInvalidRange, name, v)
	}
	return nil
}

func validateStart(width, height int, start grid.Position) error {
	if start.X < 1 || start.X > width-2 || start.Y < 1 || start.Y > height-2 {
		return fmt.Errorf("%w: %v in %dx%d", ErrStartOutOfBounds, start, width, height)
	}
	return nil
}
