package layout

// DefaultCatalog returns the built-in 7x7 room catalog used when no catalog
// file is configured.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Name: "default",
		Rooms: []RoomForLevel{
			{Chance: 100, Layout: MustLayout(
				"###.###",
				"#.....#",
				"#.....#",
				".......",
				"#.....#",
				"#.....#",
				"###.###",
			)},
			{Chance: 60, Layout: MustLayout(
				"##...##",
				"##...##",
				".......",
				".......",
				".......",
				"##...##",
				"##...##",
			)},
			{Chance: 40, Layout: MustLayout(
				"###.###",
				"#.....#",
				"#.#.#.#",
				".......",
				"#.#.#.#",
				"#.....#",
				"###.###",
			)},
			{Chance: 30, Layout: MustLayout(
				"#######",
				"#######",
				"###....",
				"###.###",
				"###.###",
				"###.###",
				"###.###",
			)},
			{Chance: 20, Layout: MustLayout(
				"/--+--\\",
				"|.....|",
				"|.....|",
				"+.....+",
				"|.....|",
				"|.....|",
				"\\--+--/",
			)},
		},
	}
}

// DefaultTileset returns the built-in 3x3 tiles for the FromTiles generator.
func DefaultTileset() []RoomLayout {
	return []RoomLayout{
		MustLayout(
			"#.#",
			"...",
			"#.#",
		),
		MustLayout(
			"...",
			"...",
			"...",
		),
		MustLayout(
			"#.#",
			"#.#",
			"#.#",
		),
		MustLayout(
			"#.#",
			"#..",
			"###",
		),
		MustLayout(
			"#.#",
			"...",
			"###",
		),
		MustLayout(
			"...",
			"..#",
			".##",
		),
	}
}
