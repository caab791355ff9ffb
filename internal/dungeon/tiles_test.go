package dungeon

import (
	"testing"

	"github.com/lawnchairsociety/dungeonforge/internal/grid"
	"github.com/lawnchairsociety/dungeonforge/internal/layout"
	"github.com/lawnchairsociety/dungeonforge/internal/rng"
)

func TestPermutationTilesCount(t *testing.T) {
	tests := []struct {
		maxWalls int
		want     int
	}{
		{0, 1},
		{1, 10},
		{2, 42},
		{3, 90},
	}
	for _, tt := range tests {
		if got := len(PermutationTiles(tt.maxWalls)); got != tt.want {
			t.Errorf("PermutationTiles(%d) = %d tiles, want %d", tt.maxWalls, got, tt.want)
		}
	}
}

func TestPermutationTilesAreConnected(t *testing.T) {
	for i, tile := range PermutationTiles(6) {
		m, err := grid.FromRows(tile.Rows())
		if err != nil {
			t.Fatal(err)
		}
		if !m.IsConnected() || len(m.WalkableCells()) == 0 {
			t.Errorf("tile %d is not a connected floor:\n%s", i, tile)
		}
	}
}

func TestBlobTileset(t *testing.T) {
	tiles := BlobTileset()
	if len(tiles) != 47 {
		t.Fatalf("BlobTileset() = %d tiles, want 47", len(tiles))
	}
	for i := range tiles {
		for j := i + 1; j < len(tiles); j++ {
			if tiles[i].Equal(tiles[j]) {
				t.Errorf("tiles %d and %d are identical:\n%s", i, j, tiles[i])
			}
		}
	}
	for i, b := range blobBases {
		if got := len(b.layout.DistinctRotations()); got != b.rotations {
			t.Errorf("base %d lists %d rotations, has %d", i, b.rotations, got)
		}
	}
}

func TestTileSynthesisPostProcessIsConnected(t *testing.T) {
	opts := TileOptions{RemoveIsolated: true, PostProcess: true}
	gens := []Generator{
		&FromTiles{Width: 41, Height: 29, Tileset: layout.DefaultTileset(), TileOptions: opts},
		&FromPermutationTiles{Width: 41, Height: 29, MaxWalls: 5, TileOptions: opts},
		// The lone-cell blob tile may be drawn for the center slot.
		&BlobTiles{Width: 41, Height: 29, TileOptions: TileOptions{PostProcess: true}},
	}
	for _, g := range gens {
		t.Run(g.Name(), func(t *testing.T) {
			for seed := int64(1); seed <= 5; seed++ {
				res := g.Generate(rng.New(seed))
				if res.Tiles < 1 {
					t.Fatalf("seed %d: no tiles placed", seed)
				}
				assertConnected(t, res.Map)
				assertBorderWalls(t, res.Map)
			}
		})
	}
}

func TestTileSynthesisFillsOpenGrid(t *testing.T) {
	// A single all-floor tile is compatible everywhere, so every slot fills.
	g := &FromTiles{Width: 12, Height: 8, Tileset: []layout.RoomLayout{layout.MustLayout("...", "...", "...")}}
	res := g.Generate(rng.New(1))

	if res.Tiles != 6 {
		t.Errorf("Tiles = %d, want 6 (3x2 slots)", res.Tiles)
	}
	for y := 1; y <= 6; y++ {
		for x := 1; x <= 9; x++ {
			if res.Map.Get(x, y) != grid.SymbolFloor {
				t.Fatalf("slot cell (%d,%d) not floor:\n%s", x, y, res.Map)
			}
		}
	}
	// The column left over past the last slot stays wall.
	if res.Map.Get(10, 3) != grid.SymbolWall {
		t.Error("cell outside every slot should be wall")
	}
}

func TestTileSynthesisClosedCenter(t *testing.T) {
	// A closed center tile opens no side, so nothing else is placed.
	g := &FromTiles{Width: 20, Height: 20, Tileset: []layout.RoomLayout{layout.MustLayout("###", "#.#", "###")}}
	res := g.Generate(rng.New(1))
	if res.Tiles != 1 {
		t.Errorf("Tiles = %d, want 1", res.Tiles)
	}
}

func TestRemoveIsolated(t *testing.T) {
	m, err := grid.FromRows([]string{
		"#######",
		"#.#..##",
		"#######",
	})
	if err != nil {
		t.Fatal(err)
	}
	removeIsolated(m)
	if m.Get(1, 1) != grid.SymbolWall {
		t.Error("isolated floor cell kept")
	}
	if m.Get(3, 1) != grid.SymbolFloor || m.Get(4, 1) != grid.SymbolFloor {
		t.Error("floor pair removed")
	}
}
