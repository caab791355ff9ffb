// catalog inspects room catalogs and dumps the built-in ones as YAML.
//
// Usage:
//
//	go run ./cmd/catalog -load data/rooms.yaml
//	go run ./cmd/catalog -dump rooms > data/rooms.yaml
//	go run ./cmd/catalog -dump permutation -max-walls 3
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lawnchairsociety/dungeonforge/internal/dungeon"
	"github.com/lawnchairsociety/dungeonforge/internal/grid"
	"github.com/lawnchairsociety/dungeonforge/internal/layout"
)

func main() {
	loadFile := flag.String("load", "", "Catalog YAML file to validate and describe")
	dump := flag.String("dump", "", "Built-in catalog to print: rooms, tiles, blob or permutation")
	maxWalls := flag.Int("max-walls", 4, "Wall count limit for -dump permutation")
	flag.Parse()

	switch {
	case *loadFile != "":
		c, err := layout.LoadCatalog(*loadFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		describe(c)
	case *dump != "":
		c, err := builtin(*dump, *maxWalls)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		data, err := c.Marshal()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func builtin(name string, maxWalls int) (*layout.Catalog, error) {
	switch name {
	case "rooms":
		return layout.DefaultCatalog(), nil
	case "tiles":
		return tileCatalog(name, layout.DefaultTileset()), nil
	case "blob":
		return tileCatalog(name, dungeon.BlobTileset()), nil
	case "permutation":
		if maxWalls < 0 || maxWalls > 8 {
			return nil, fmt.Errorf("max-walls %d outside [0,8]", maxWalls)
		}
		return tileCatalog(name, dungeon.PermutationTiles(maxWalls)), nil
	}
	return nil, fmt.Errorf("unknown catalog %q", name)
}

func tileCatalog(name string, tiles []layout.RoomLayout) *layout.Catalog {
	c := &layout.Catalog{Name: name}
	for _, t := range tiles {
		c.Rooms = append(c.Rooms, layout.RoomForLevel{Chance: 100, Layout: t})
	}
	return c
}

func describe(c *layout.Catalog) {
	fmt.Printf("Loaded %d templates of size %d", len(c.Rooms), c.RoomSize())
	if c.Name != "" {
		fmt.Printf(" (%s)", c.Name)
	}
	fmt.Println()

	for i, r := range c.Rooms {
		h := layout.NewRoomHelper(r.Layout)
		fmt.Printf("\n#%d chance %d%%, %d distinct rotations, open:", i, r.Chance, len(r.Layout.DistinctRotations()))
		for _, side := range grid.AllDirections() {
			if h.IsOpen(side) {
				fmt.Printf(" %s", side)
			}
		}
		fmt.Println()
		fmt.Println(r.Layout)
	}
}
