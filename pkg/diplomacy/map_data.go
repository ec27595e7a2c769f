package diplomacy

import "sync"

var (
	stdCatalogOnce sync.Once
	stdCatalogInst *Catalog
)

// StandardCatalog returns the built-in western-Europe board. The catalog is
// built once and cached; subsequent calls return the same pointer.
func StandardCatalog() *Catalog {
	stdCatalogOnce.Do(func() {
		c, err := NewCatalog(standardTerritories())
		if err != nil {
			panic("diplomacy: standard catalog is malformed: " + err.Error())
		}
		stdCatalogInst = c
	})
	return stdCatalogInst
}

func standardTerritories() []Territory {
	var defs []Territory
	index := make(map[string]int)

	terr := func(name string, kind TerritoryKind, coastal, sc bool) {
		index[name] = len(defs)
		defs = append(defs, Territory{Name: name, Kind: kind, Coastal: coastal, SupplyCenter: sc})
	}
	inland := func(name string, sc bool) { terr(name, Land, false, sc) }
	coast := func(name string, sc bool) { terr(name, Land, true, sc) }
	sea := func(name string) { terr(name, Sea, false, false) }

	// addEdge adds a single directed neighbor entry.
	addEdge := func(from, to string) {
		i := index[from]
		defs[i].Neighbors = append(defs[i].Neighbors, to)
	}
	// border adds bidirectional edges between from and each of tos.
	border := func(from string, tos ...string) {
		for _, to := range tos {
			addEdge(from, to)
			addEdge(to, from)
		}
	}

	// --- Inland (8) ---
	inland("Paris", true)
	inland("Burgundy", false)
	inland("Ruhr", false)
	inland("Munich", true)
	inland("Bohemia", false)
	inland("Tyrolia", false)
	inland("Vienna", true)
	inland("Silesia", false)

	// --- Coastal (25) ---
	coast("Brest", true)
	coast("Picardy", false)
	coast("Gascony", false)
	coast("Marseilles", true)
	coast("Spain", true)
	coast("Portugal", true)
	coast("Belgium", true)
	coast("Holland", true)
	coast("Kiel", true)
	coast("Berlin", true)
	coast("Prussia", false)
	coast("Denmark", true)
	coast("Sweden", true)
	coast("Norway", true)
	coast("Piedmont", false)
	coast("Venice", true)
	coast("Trieste", true)
	coast("Tuscany", false)
	coast("Rome", true)
	coast("London", true)
	coast("Wales", false)
	coast("Yorkshire", false)
	coast("Edinburgh", true)
	coast("Liverpool", true)
	coast("Clyde", false)

	// --- Sea (13) ---
	sea("EnglishChannel")
	sea("IrishSea")
	sea("NorthSea")
	sea("MidAtlanticOcean")
	sea("NorthAtlanticOcean")
	sea("NorwegianSea")
	sea("HeligolandBight")
	sea("Skagerrak")
	sea("BalticSea")
	sea("GulfOfLyon")
	sea("WesternMediterranean")
	sea("TyrrhenianSea")
	sea("AdriaticSea")

	// --- Impassable ---
	terr("Switzerland", Unmovable, false, false)

	// France and the Low Countries
	border("Paris", "Brest", "Picardy", "Burgundy", "Gascony")
	border("Burgundy", "Picardy", "Belgium", "Ruhr", "Munich", "Marseilles", "Gascony")
	border("Brest", "Picardy", "Gascony", "EnglishChannel", "MidAtlanticOcean")
	border("Picardy", "Belgium", "EnglishChannel")
	border("Gascony", "Marseilles", "Spain", "MidAtlanticOcean")
	border("Marseilles", "Spain", "Piedmont", "GulfOfLyon")
	border("Belgium", "Holland", "Ruhr", "NorthSea", "EnglishChannel")
	border("Holland", "Ruhr", "Kiel", "HeligolandBight", "NorthSea")

	// Iberia
	border("Spain", "Portugal", "GulfOfLyon", "WesternMediterranean", "MidAtlanticOcean")
	border("Portugal", "MidAtlanticOcean")

	// Germany and central Europe
	border("Ruhr", "Kiel", "Munich")
	border("Munich", "Kiel", "Berlin", "Silesia", "Bohemia", "Tyrolia")
	border("Kiel", "Berlin", "Denmark", "BalticSea", "HeligolandBight")
	border("Berlin", "Silesia", "Prussia", "BalticSea")
	border("Prussia", "Silesia", "BalticSea")
	border("Bohemia", "Silesia", "Vienna", "Tyrolia")
	border("Tyrolia", "Vienna", "Trieste", "Venice", "Piedmont")
	border("Vienna", "Trieste")

	// Scandinavia
	border("Denmark", "HeligolandBight", "NorthSea", "Skagerrak", "Sweden", "BalticSea")
	border("Sweden", "Norway", "Skagerrak", "BalticSea")
	border("Norway", "NorwegianSea", "NorthSea", "Skagerrak")

	// Italy and the Adriatic
	border("Piedmont", "Venice", "Tuscany", "GulfOfLyon")
	border("Venice", "Trieste", "Tuscany", "Rome", "AdriaticSea")
	border("Trieste", "AdriaticSea")
	border("Tuscany", "Rome", "TyrrhenianSea", "GulfOfLyon")
	border("Rome", "TyrrhenianSea")

	// Britain
	border("London", "Wales", "Yorkshire", "NorthSea", "EnglishChannel")
	border("Wales", "Yorkshire", "Liverpool", "IrishSea", "EnglishChannel")
	border("Yorkshire", "Liverpool", "Edinburgh", "NorthSea")
	border("Edinburgh", "Liverpool", "Clyde", "NorwegianSea", "NorthSea")
	border("Liverpool", "Clyde", "IrishSea", "NorthAtlanticOcean")
	border("Clyde", "NorthAtlanticOcean", "NorwegianSea")

	// Seas
	border("EnglishChannel", "IrishSea", "NorthSea", "MidAtlanticOcean")
	border("IrishSea", "NorthAtlanticOcean", "MidAtlanticOcean")
	border("NorthSea", "NorwegianSea", "HeligolandBight", "Skagerrak")
	border("MidAtlanticOcean", "NorthAtlanticOcean", "WesternMediterranean")
	border("NorthAtlanticOcean", "NorwegianSea")
	border("GulfOfLyon", "TyrrhenianSea", "WesternMediterranean")
	border("WesternMediterranean", "TyrrhenianSea")

	// Switzerland lists its surroundings but nothing borders it back.
	for _, n := range []string{"Burgundy", "Marseilles", "Piedmont", "Tyrolia", "Munich"} {
		addEdge("Switzerland", n)
	}

	return defs
}
