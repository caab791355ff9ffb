// Package levelbuilder selects a generator from a level configuration, runs
// it once and hands the finished grid to the level-construction layer.
package levelbuilder

import (
	"errors"
	"fmt"

	"github.com/lawnchairsociety/dungeonforge/internal/config"
	"github.com/lawnchairsociety/dungeonforge/internal/dungeon"
	"github.com/lawnchairsociety/dungeonforge/internal/grid"
	"github.com/lawnchairsociety/dungeonforge/internal/layout"
	"github.com/lawnchairsociety/dungeonforge/internal/logger"
	"github.com/lawnchairsociety/dungeonforge/internal/rng"
)

var (
	ErrUnknownAlgorithm = errors.New("levelbuilder: unknown algorithm")
	ErrResultPending    = errors.New("levelbuilder: previous result has not been read")
	ErrNoResult         = errors.New("levelbuilder: nothing has been built")
)

// Algorithms lists every accepted algorithm name.
func Algorithms() []string {
	return []string{
		"recursive_backtracker",
		"tunneler",
		"tunneler_backtracking",
		"cellular_automata",
		"rooms",
		"bsp_rooms",
		"feature_rooms",
		"from_layouts",
		"from_tiles",
		"from_permutation_tiles",
		"blob_tiles",
	}
}

// Builder runs one generation at a time. It is not safe for concurrent use:
// a second Build fails until the previous result has been read.
type Builder struct {
	result  *dungeon.Result
	pending bool
}

// New returns an idle builder.
func New() *Builder {
	return &Builder{}
}

// Build validates cfg, generates a level from cfg.Seed and keeps the result
// until it is read.
func (b *Builder) Build(cfg *config.LevelConfig) error {
	if b.pending {
		return ErrResultPending
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	gen, err := NewGenerator(cfg)
	if err != nil {
		return err
	}
	if err := gen.Validate(); err != nil {
		return fmt.Errorf("invalid %s parameters: %w", gen.Name(), err)
	}

	src := rng.New(cfg.Seed)
	b.result = gen.Generate(src)
	b.pending = true

	logger.Info("Built level",
		"algorithm", b.result.Algorithm,
		"seed", cfg.Seed,
		"width", cfg.Map.Width,
		"height", cfg.Map.Height,
		"floor", b.result.Map.Count(grid.SymbolFloor))
	return nil
}

// Result returns the last generated level and marks it as read.
func (b *Builder) Result() (*dungeon.Result, error) {
	if b.result == nil {
		return nil, ErrNoResult
	}
	b.pending = false
	return b.result, nil
}

// MapRaw returns the last generated grid as rows and marks it as read.
func (b *Builder) MapRaw() ([]string, error) {
	res, err := b.Result()
	if err != nil {
		return nil, err
	}
	return res.Raw(), nil
}

// Shrines returns the shrine positions of the last level. Only FeatureRooms
// designates shrines; other algorithms return none.
func (b *Builder) Shrines() []grid.Position {
	if b.result == nil {
		return nil
	}
	return b.result.Shrines
}

// NewGenerator maps a configuration onto its generator.
func NewGenerator(cfg *config.LevelConfig) (dungeon.Generator, error) {
	w, h := cfg.Map.Width, cfg.Map.Height
	start := cfg.Start.Position()
	tiles := dungeon.TileOptions{
		RemoveIsolated: cfg.Tiles.RemoveIsolated,
		PostProcess:    cfg.Tiles.PostProcess,
	}

	switch cfg.Algorithm {
	case "recursive_backtracker":
		return &dungeon.RecursiveBacktracker{Width: w, Height: h, Start: start}, nil

	case "tunneler", "tunneler_backtracking":
		t := cfg.Tunneler
		return &dungeon.Tunneler{
			Width:            w,
			Height:           h,
			Start:            start,
			Iterations:       t.Iterations,
			TunnelLengthMin:  t.TunnelLengthMin,
			TunnelLengthMax:  t.TunnelLengthMax,
			Backtracking:     t.Backtracking || cfg.Algorithm == "tunneler_backtracking",
			AdditionalTweaks: t.AdditionalTweaks,
			Removal:          cfg.Removal,
		}, nil

	case "cellular_automata":
		c := cfg.CellularAutomata
		return &dungeon.CellularAutomata{
			Width:             w,
			Height:            h,
			InitialWallChance: c.InitialWallChance,
			BirthThreshold:    c.BirthThreshold,
			DeathThreshold:    c.DeathThreshold,
			MaxIterations:     c.MaxIterations,
		}, nil

	case "rooms", "bsp_rooms":
		return &dungeon.BSPRooms{
			Width:         w,
			Height:        h,
			MinRoomSize:   cfg.BSP.MinRoomSize,
			SplitRatioMin: cfg.BSP.SplitRatioMin,
			SplitRatioMax: cfg.BSP.SplitRatioMax,
		}, nil

	case "feature_rooms":
		f := cfg.FeatureRooms
		return &dungeon.FeatureRooms{
			Width:             w,
			Height:            h,
			RoomSizeMin:       f.RoomSizeMin,
			RoomSizeMax:       f.RoomSizeMax,
			MaxIterations:     f.MaxIterations,
			ShrineChance:      f.ShrineChance,
			ShrineMinRoomSize: f.ShrineMinRoomSize,
		}, nil

	case "from_layouts":
		catalog, err := loadCatalog(cfg.Layouts.Catalog, layout.DefaultCatalog)
		if err != nil {
			return nil, err
		}
		return &dungeon.FromLayouts{Width: w, Height: h, Start: start, Catalog: catalog}, nil

	case "from_tiles":
		tileset := layout.DefaultTileset()
		if cfg.Tiles.Tileset != "" {
			catalog, err := layout.LoadCatalog(cfg.Tiles.Tileset)
			if err != nil {
				return nil, fmt.Errorf("failed to load tileset: %w", err)
			}
			tileset = catalog.Layouts()
		}
		return &dungeon.FromTiles{Width: w, Height: h, Tileset: tileset, TileOptions: tiles}, nil

	case "from_permutation_tiles":
		return &dungeon.FromPermutationTiles{Width: w, Height: h, MaxWalls: cfg.Tiles.MaxWalls, TileOptions: tiles}, nil

	case "blob_tiles":
		return &dungeon.BlobTiles{Width: w, Height: h, TileOptions: tiles}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, cfg.Algorithm)
}

func loadCatalog(path string, fallback func() *layout.Catalog) (*layout.Catalog, error) {
	if path == "" {
		return fallback(), nil
	}
	catalog, err := layout.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load room catalog: %w", err)
	}
	return catalog, nil
}
