package levelbuilder

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lawnchairsociety/dungeonforge/internal/config"
	"github.com/lawnchairsociety/dungeonforge/internal/grid"
)

func testConfig(algorithm string) *config.LevelConfig {
	cfg := config.DefaultConfig()
	cfg.Algorithm = algorithm
	cfg.Seed = 7
	cfg.Map.Width = 40
	cfg.Map.Height = 30
	return cfg
}

func TestBuildEveryAlgorithm(t *testing.T) {
	for _, name := range Algorithms() {
		t.Run(name, func(t *testing.T) {
			b := New()
			if err := b.Build(testConfig(name)); err != nil {
				t.Fatalf("Build(%s) failed: %v", name, err)
			}
			rows, err := b.MapRaw()
			if err != nil {
				t.Fatalf("MapRaw() failed: %v", err)
			}
			if len(rows) != 30 {
				t.Fatalf("got %d rows, want 30", len(rows))
			}
			for y, row := range rows {
				if len(row) != 40 {
					t.Fatalf("row %d has %d columns, want 40", y, len(row))
				}
				for _, ch := range row {
					if !strings.ContainsRune("#.+*", ch) {
						t.Fatalf("row %d has unexpected symbol %q", y, ch)
					}
				}
			}
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	for _, name := range []string{"tunneler", "cellular_automata", "feature_rooms", "from_layouts", "blob_tiles"} {
		t.Run(name, func(t *testing.T) {
			first, second := New(), New()
			if err := first.Build(testConfig(name)); err != nil {
				t.Fatal(err)
			}
			if err := second.Build(testConfig(name)); err != nil {
				t.Fatal(err)
			}
			a, _ := first.MapRaw()
			b, _ := second.MapRaw()
			if strings.Join(a, "\n") != strings.Join(b, "\n") {
				t.Error("same seed produced different maps")
			}
		})
	}
}

func TestBuildRejectsPendingResult(t *testing.T) {
	b := New()
	cfg := testConfig("recursive_backtracker")
	if err := b.Build(cfg); err != nil {
		t.Fatal(err)
	}
	if err := b.Build(cfg); !errors.Is(err, ErrResultPending) {
		t.Fatalf("second Build() = %v, want ErrResultPending", err)
	}
	if _, err := b.Result(); err != nil {
		t.Fatal(err)
	}
	if err := b.Build(cfg); err != nil {
		t.Errorf("Build() after reading the result failed: %v", err)
	}
}

func TestResultBeforeBuild(t *testing.T) {
	b := New()
	if _, err := b.Result(); !errors.Is(err, ErrNoResult) {
		t.Errorf("Result() = %v, want ErrNoResult", err)
	}
	if _, err := b.MapRaw(); !errors.Is(err, ErrNoResult) {
		t.Errorf("MapRaw() = %v, want ErrNoResult", err)
	}
	if b.Shrines() != nil {
		t.Error("Shrines() should be nil before a build")
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.LevelConfig)
		want   error
	}{
		{"unknown algorithm", func(c *config.LevelConfig) { c.Algorithm = "voronoi" }, ErrUnknownAlgorithm},
		{"map too small", func(c *config.LevelConfig) { c.Map.Height = 3 }, config.ErrInvalidSize},
		{"start on the border", func(c *config.LevelConfig) { c.Start.X = 39 }, config.ErrStartOutOfBounds},
		{"missing catalog", func(c *config.LevelConfig) {
			c.Algorithm = "from_layouts"
			c.Layouts.Catalog = filepath.Join(t.TempDir(), "missing.yaml")
		}, os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("cellular_automata")
			tt.modify(cfg)
			b := New()
			if err := b.Build(cfg); !errors.Is(err, tt.want) {
				t.Errorf("Build() = %v, want %v", err, tt.want)
			}
			if _, err := b.Result(); !errors.Is(err, ErrNoResult) {
				t.Error("a failed build must not leave a result behind")
			}
		})
	}
}

func TestShrinesFromFeatureRooms(t *testing.T) {
	cfg := testConfig("feature_rooms")
	cfg.FeatureRooms.RoomSizeMin = 5
	cfg.FeatureRooms.RoomSizeMax = 7
	cfg.FeatureRooms.ShrineMinRoomSize = 5
	cfg.FeatureRooms.ShrineChance = 100

	b := New()
	if err := b.Build(cfg); err != nil {
		t.Fatal(err)
	}
	shrines := b.Shrines()
	if len(shrines) == 0 {
		t.Fatal("expected at least one shrine")
	}
	res, _ := b.Result()
	for _, p := range shrines {
		if res.Map.At(p) != grid.SymbolShrine {
			t.Errorf("shrine at %v is %q on the map", p, res.Map.At(p))
		}
	}
}

func TestTunnelerBacktrackingName(t *testing.T) {
	gen, err := NewGenerator(testConfig("tunneler_backtracking"))
	if err != nil {
		t.Fatal(err)
	}
	if gen.Name() != "tunneler_backtracking" {
		t.Errorf("Name() = %q, want tunneler_backtracking", gen.Name())
	}
}

func TestBuildFromTilesetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles.yaml")
	data := []byte(`rooms:
  - chance: 100
    layout:
      - "..."
      - "..."
      - "..."
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig("from_tiles")
	cfg.Map.Width = 11
	cfg.Map.Height = 11
	cfg.Start = config.PositionConfig{X: 5, Y: 5}
	cfg.Tiles.Tileset = path

	b := New()
	if err := b.Build(cfg); err != nil {
		t.Fatal(err)
	}
	res, _ := b.Result()
	// A single open tile repeated over the 3x3 slot grid floors the interior.
	if res.Tiles != 9 {
		t.Errorf("placed %d tiles, want 9", res.Tiles)
	}
	if got := res.Map.Count(grid.SymbolFloor); got != 81 {
		t.Errorf("floor cells = %d, want 81", got)
	}
}
