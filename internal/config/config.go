// Package config holds the YAML level configuration: which algorithm to run,
// the map size, and every algorithm's tuning knobs.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/dungeonforge/internal/dungeon"
	"github.com/lawnchairsociety/dungeonforge/internal/grid"
	"github.com/lawnchairsociety/dungeonforge/internal/logger"
)

// Validation errors are the generators' own, so errors.Is matches whichever
// layer rejected the input.
var (
	ErrInvalidSize      = dungeon.ErrInvalidSize
	ErrInvalidRange     = dungeon.ErrInvalidRange
	ErrStartOutOfBounds = dungeon.ErrStartOutOfBounds
)

// MinMapSize is the smallest accepted map width or height.
const MinMapSize = 5

// LevelConfig describes one generated level.
type LevelConfig struct {
	Seed      int64              `yaml:"seed"`
	Algorithm string             `yaml:"algorithm"`
	Map       MapConfig          `yaml:"map"`
	Start     PositionConfig     `yaml:"start"`
	Removal   grid.RemovalParams `yaml:"removal"`

	Tunneler         TunnelerConfig     `yaml:"tunneler"`
	CellularAutomata CellularConfig     `yaml:"cellular_automata"`
	BSP              BSPConfig          `yaml:"bsp"`
	FeatureRooms     FeatureRoomsConfig `yaml:"feature_rooms"`
	Layouts          LayoutsConfig      `yaml:"layouts"`
	Tiles            TilesConfig        `yaml:"tiles"`

	Archive ArchiveConfig `yaml:"archive"`
	Logging logger.Config `yaml:"logging"`
}

// MapConfig is the grid size in cells.
type MapConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PositionConfig is a map coordinate; X is the column.
type PositionConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Position converts to a grid position.
func (p PositionConfig) Position() grid.Position {
	return grid.Pos(p.X, p.Y)
}

// TunnelerConfig tunes both tunneler strategies.
type TunnelerConfig struct {
	Iterations       int  `yaml:"iterations"`
	TunnelLengthMin  int  `yaml:"tunnel_length_min"`
	TunnelLengthMax  int  `yaml:"tunnel_length_max"`
	Backtracking     bool `yaml:"backtracking"`
	AdditionalTweaks bool `yaml:"additional_tweaks"`
}

// CellularConfig tunes cave generation. Thresholds count floor neighbors.
type CellularConfig struct {
	InitialWallChance int `yaml:"initial_wall_chance"`
	BirthThreshold    int `yaml:"birth_threshold"`
	DeathThreshold    int `yaml:"death_threshold"`
	MaxIterations     int `yaml:"max_iterations"`
}

// BSPConfig tunes binary space partitioning. Ratios are percentages.
type BSPConfig struct {
	MinRoomSize   int `yaml:"min_room_size"`
	SplitRatioMin int `yaml:"split_ratio_min"`
	SplitRatioMax int `yaml:"split_ratio_max"`
}

// FeatureRoomsConfig tunes the room digger.
type FeatureRoomsConfig struct {
	RoomSizeMin       int `yaml:"room_size_min"`
	RoomSizeMax       int `yaml:"room_size_max"`
	MaxIterations     int `yaml:"max_iterations"`
	ShrineChance      int `yaml:"shrine_chance"`
	ShrineMinRoomSize int `yaml:"shrine_min_room_size"`
}

// LayoutsConfig points at a room catalog. Empty uses the built-in catalog.
type LayoutsConfig struct {
	Catalog string `yaml:"catalog"`
}

// TilesConfig tunes the tile synthesis generators. Tileset is a catalog
// file whose templates are used as tiles; empty uses the built-in tileset.
type TilesConfig struct {
	Tileset        string `yaml:"tileset"`
	MaxWalls       int    `yaml:"max_walls"`
	RemoveIsolated bool   `yaml:"remove_isolated"`
	PostProcess    bool   `yaml:"post_process"`
}

// ArchiveConfig selects where finished maps are stored.
type ArchiveConfig struct {
	Driver     string         `yaml:"driver"` // "sqlite" or "postgres"
	SQLitePath string         `yaml:"sqlite_path"`
	Postgres   PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// DefaultConfig returns a configuration that produces a cave level.
func DefaultConfig() *LevelConfig {
	return &LevelConfig{
		Seed:      1,
		Algorithm: "cellular_automata",
		Map:       MapConfig{Width: 80, Height: 40},
		Start:     PositionConfig{X: 1, Y: 1},
		Removal:   grid.DefaultRemovalParams(),
		Tunneler: TunnelerConfig{
			Iterations:      100,
			TunnelLengthMin: 3,
			TunnelLengthMax: 10,
		},
		CellularAutomata: CellularConfig{
			InitialWallChance: 40,
			BirthThreshold:    5,
			DeathThreshold:    4,
			MaxIterations:     12,
		},
		BSP: BSPConfig{
			MinRoomSize:   5,
			SplitRatioMin: 10,
			SplitRatioMax: 90,
		},
		FeatureRooms: FeatureRoomsConfig{
			RoomSizeMin:       3,
			RoomSizeMax:       8,
			MaxIterations:     500,
			ShrineChance:      25,
			ShrineMinRoomSize: 5,
		},
		Tiles: TilesConfig{
			MaxWalls:       4,
			RemoveIsolated: true,
			PostProcess:    true,
		},
		Archive: ArchiveConfig{
			Driver:     "sqlite",
			SQLitePath: "data/maps.db",
			Postgres: PostgresConfig{
				Host:    "localhost",
				Port:    5432,
				SSLMode: "disable",
			},
		},
		Logging: logger.DefaultConfig(),
	}
}

// LoadConfig loads a level configuration from a YAML file over the
// defaults. A missing file yields the defaults.
func LoadConfig(path string) (*LevelConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			config.Logging = logger.ApplyEnv(config.Logging)
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse %s: %w", path, err)
	}
	config.Logging = logger.ApplyEnv(config.Logging)

	return config, nil
}

// Marshal encodes the configuration as YAML.
func (c *LevelConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate rejects configurations no generator could honor. Only the
// section of the selected algorithm is checked in depth.
func (c *LevelConfig) Validate() error {
	if c.Map.Width < MinMapSize || c.Map.Height < MinMapSize {
		return fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrInvalidSize, c.Map.Width, c.Map.Height, MinMapSize, MinMapSize)
	}
	if c.Start.X < 1 || c.Start.X > c.Map.Width-2 || c.Start.Y < 1 || c.Start.Y > c.Map.Height-2 {
		return fmt.Errorf("%w: (%d,%d)", ErrStartOutOfBounds, c.Start.X, c.Start.Y)
	}
	if err := checkRange("removal.empty_cells_around", c.Removal.EmptyCellsAroundMin, c.Removal.EmptyCellsAroundMax); err != nil {
		return err
	}

	switch c.Algorithm {
	case "tunneler", "tunneler_backtracking":
		return checkRange("tunneler.tunnel_length", c.Tunneler.TunnelLengthMin, c.Tunneler.TunnelLengthMax)
	case "cellular_automata":
		return checkPercent("cellular_automata.initial_wall_chance", c.CellularAutomata.InitialWallChance)
	case "rooms", "bsp_rooms":
		if c.BSP.SplitRatioMin < 1 || c.BSP.SplitRatioMax > 99 {
			return fmt.Errorf("%w: bsp split ratio [%d,%d] outside [1,99]", ErrInvalidRange, c.BSP.SplitRatioMin, c.BSP.SplitRatioMax)
		}
		return checkRange("bsp.split_ratio", c.BSP.SplitRatioMin, c.BSP.SplitRatioMax)
	case "feature_rooms":
		if err := checkRange("feature_rooms.room_size", c.FeatureRooms.RoomSizeMin, c.FeatureRooms.RoomSizeMax); err != nil {
			return err
		}
		return checkPercent("feature_rooms.shrine_chance", c.FeatureRooms.ShrineChance)
	}
	return nil
}

func checkRange(name string, min, max int) error {
	if min > max {
		return fmt.Errorf("%w: %s min %d > max %d", ErrInvalidRange, name, min, max)
	}
	return nil
}

func checkPercent(name string, v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("%w: %s %d outside [0,100]", ErrInvalidRange, name, v)
	}
	return nil
}
