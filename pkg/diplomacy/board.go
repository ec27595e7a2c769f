package diplomacy

import (
	"errors"
	"fmt"
)

// ErrTerritoryNotFound is returned when a board lookup names an unknown territory.
var ErrTerritoryNotFound = errors.New("territory not found")

// Cell is the runtime record for one territory. Kind, Coastal, SupplyCenter
// and Neighbors are copied from the catalog when the board is built and never
// change afterwards. Units only grow.
type Cell struct {
	Name         string
	Kind         TerritoryKind
	Coastal      bool
	SupplyCenter bool
	Neighbors    []string

	Units     []Unit
	Owner     string   // "" while unowned
	Buildings []string // carried, never acted on
}

// Board maps territory names to their cells, iterated in catalog order.
type Board struct {
	cells map[string]*Cell
	order []string
}

// NewBoard materializes one empty cell per catalog territory.
func NewBoard(c *Catalog) *Board {
	b := &Board{
		cells: make(map[string]*Cell, c.Len()),
		order: c.Names(),
	}
	for _, name := range b.order {
		t, _ := c.Territory(name)
		b.cells[name] = &Cell{
			Name:         t.Name,
			Kind:         t.Kind,
			Coastal:      t.Coastal,
			SupplyCenter: t.SupplyCenter,
			Neighbors:    append([]string(nil), t.Neighbors...),
			Units:        []Unit{},
			Buildings:    []string{},
		}
	}
	return b
}

// Has reports whether name is a territory on the board.
func (b *Board) Has(name string) bool {
	_, ok := b.cells[name]
	return ok
}

// Cell returns the cell for name, or ErrTerritoryNotFound.
func (b *Board) Cell(name string) (*Cell, error) {
	c, ok := b.cells[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTerritoryNotFound, name)
	}
	return c, nil
}

// AppendUnit records a unit of kind owned by owner on the named cell.
// Terrain legality is the caller's concern.
func (b *Board) AppendUnit(name, owner string, kind UnitKind) error {
	c, err := b.Cell(name)
	if err != nil {
		return err
	}
	c.Units = append(c.Units, Unit{Owner: owner, Kind: kind})
	return nil
}

// Len returns the number of cells.
func (b *Board) Len() int {
	return len(b.order)
}

// Names returns territory names in catalog order.
func (b *Board) Names() []string {
	return append([]string(nil), b.order...)
}

// Each calls fn for every cell in catalog order. fn must not retain or
// mutate the cell.
func (b *Board) Each(fn func(name string, c *Cell)) {
	for _, name := range b.order {
		fn(name, b.cells[name])
	}
}

// UnitCount returns the total number of units placed on the board.
func (b *Board) UnitCount() int {
	n := 0
	for _, c := range b.cells {
		n += len(c.Units)
	}
	return n
}

// UnitsOf returns every unit owned by player along with its territory,
// in catalog order.
func (b *Board) UnitsOf(player string) []PlacedUnit {
	var out []PlacedUnit
	for _, name := range b.order {
		for _, u := range b.cells[name].Units {
			if u.Owner == player {
				out = append(out, PlacedUnit{Territory: name, Unit: u})
			}
		}
	}
	return out
}

// PlacedUnit is a unit together with the territory it sits on.
type PlacedUnit struct {
	Territory string
	Unit      Unit
}
