package dungeon

import (
	"math/bits"

	"github.com/lawnchairsociety/dungeonforge/internal/grid"
	"github.com/lawnchairsociety/dungeonforge/internal/layout"
)

// blobBase is one blob shape and how many distinct rotations it has.
type blobBase struct {
	layout    layout.RoomLayout
	rotations int
}

// Center always floor; an edge cell is floor when that side is open; a
// corner is floor only when both sides next to it are open.
var blobBases = []blobBase{
	{layout.MustLayout("###", "#.#", "###"), 1},
	{layout.MustLayout("#.#", "#.#", "###"), 4},
	{layout.MustLayout("#.#", "#..", "###"), 4},
	{layout.MustLayout("#..", "#..", "###"), 4},
	{layout.MustLayout("#.#", "#.#", "#.#"), 2},
	{layout.MustLayout("#.#", "#..", "#.#"), 4},
	{layout.MustLayout("#..", "#..", "#.#"), 4},
	{layout.MustLayout("#.#", "#..", "#.."), 4},
	{layout.MustLayout("#..", "#..", "#.."), 4},
	{layout.MustLayout("#.#", "...", "#.#"), 1},
	{layout.MustLayout("#..", "...", "#.#"), 4},
	{layout.MustLayout("#..", "...", "#.."), 4},
	{layout.MustLayout("#..", "...", "..#"), 2},
	{layout.MustLayout("#..", "...", "..."), 4},
	{layout.MustLayout("...", "...", "..."), 1},
}

// BlobTileset returns the 47 blob tiles: every base in each of its
// distinct rotations.
func BlobTileset() []layout.RoomLayout {
	var tiles []layout.RoomLayout
	for _, b := range blobBases {
		for _, r := range layout.AllRotations()[:b.rotations] {
			tiles = append(tiles, b.layout.Rotate(r))
		}
	}
	return tiles
}

// PermutationTiles enumerates every 3x3 tile with 0..maxWalls walls, in
// order of wall count and then bit pattern, keeping those whose floor is
// non-empty and 4-connected.
func PermutationTiles(maxWalls int) []layout.RoomLayout {
	var tiles []layout.RoomLayout
	for walls := 0; walls <= maxWalls; walls++ {
		for mask := 0; mask < 1<<9; mask++ {
			if bits.OnesCount(uint(mask)) != walls {
				continue
			}
			rows := make([]string, 3)
			for y := 0; y < 3; y++ {
				row := []byte("...")
				for x := 0; x < 3; x++ {
					if mask&(1<<(y*3+x)) != 0 {
						row[x] = grid.SymbolWall
					}
				}
				rows[y] = string(row)
			}
			if floorConnected(rows) {
				tiles = append(tiles, layout.MustLayout(rows...))
			}
		}
	}
	return tiles
}

func floorConnected(rows []string) bool {
	m, err := grid.FromRows(rows)
	if err != nil {
		return false
	}
	return len(m.WalkableCells()) > 0 && m.IsConnected()
}
