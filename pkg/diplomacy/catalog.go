package diplomacy

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrMalformedCatalog is wrapped by every catalog construction failure.
var ErrMalformedCatalog = errors.New("malformed territory catalog")

// Catalog is the read-only set of territory definitions a board is built from.
// Iteration order is the order territories were declared in.
type Catalog struct {
	territories map[string]*Territory
	order       []string
}

// NewCatalog validates the given definitions and freezes them into a Catalog.
// Names must be non-empty and unique, and every neighbor must name a declared
// territory. Neighbors form a set: repeats are dropped, first mention wins.
func NewCatalog(defs []Territory) (*Catalog, error) {
	c := &Catalog{
		territories: make(map[string]*Territory, len(defs)),
		order:       make([]string, 0, len(defs)),
	}
	for _, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: territory with empty name", ErrMalformedCatalog)
		}
		if _, dup := c.territories[d.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate territory %q", ErrMalformedCatalog, d.Name)
		}
		if d.Kind < Land || d.Kind > Unmovable {
			return nil, fmt.Errorf("%w: territory %q has unknown kind %d", ErrMalformedCatalog, d.Name, int(d.Kind))
		}
		t := d
		t.Neighbors = uniqueNames(d.Neighbors)
		c.territories[t.Name] = &t
		c.order = append(c.order, t.Name)
	}
	for _, name := range c.order {
		for _, n := range c.territories[name].Neighbors {
			if _, ok := c.territories[n]; !ok {
				return nil, fmt.Errorf("%w: %q lists unknown neighbor %q", ErrMalformedCatalog, name, n)
			}
		}
	}
	return c, nil
}

func uniqueNames(names []string) []string {
	if names == nil {
		return nil
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// Territory returns the definition for name. Callers must not mutate it.
func (c *Catalog) Territory(name string) (*Territory, bool) {
	t, ok := c.territories[name]
	return t, ok
}

// Len returns the number of territories.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Names returns territory names in declaration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Territories returns copies of every definition in declaration order.
func (c *Catalog) Territories() []Territory {
	out := make([]Territory, 0, len(c.order))
	for _, name := range c.order {
		t := *c.territories[name]
		t.Neighbors = append([]string(nil), t.Neighbors...)
		out = append(out, t)
	}
	return out
}

// territoryRecord is one entry of the name -> details mapping in a catalog
// document. Extra keys (units, owner) are accepted and ignored.
type territoryRecord struct {
	Type         string   `yaml:"type"`
	SupplyCenter bool     `yaml:"supply_center"`
	Coastal      bool     `yaml:"coastal"`
	Neighbors    []string `yaml:"neighbors"`
}

// DecodeCatalog reads a catalog document: a YAML (or JSON) mapping of
// territory name to {type, supply_center, coastal, neighbors}. Declaration
// order in the document becomes catalog order.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrMalformedCatalog)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping of territory names", ErrMalformedCatalog)
	}

	defs := make([]Territory, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		var rec territoryRecord
		if err := val.Decode(&rec); err != nil {
			return nil, fmt.Errorf("%w: territory %q: %v", ErrMalformedCatalog, key.Value, err)
		}
		if rec.Type == "" {
			return nil, fmt.Errorf("%w: territory %q has no type", ErrMalformedCatalog, key.Value)
		}
		kind, err := ParseTerritoryKind(rec.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: territory %q: %v", ErrMalformedCatalog, key.Value, err)
		}
		defs = append(defs, Territory{
			Name:         key.Value,
			Kind:         kind,
			Coastal:      rec.Coastal,
			SupplyCenter: rec.SupplyCenter,
			Neighbors:    rec.Neighbors,
		})
	}
	return NewCatalog(defs)
}

// EncodeCatalog writes c as a YAML document that DecodeCatalog accepts,
// preserving declaration order.
func EncodeCatalog(w io.Writer, c *Catalog) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, t := range c.Territories() {
		rec := territoryRecord{
			Type:         t.Kind.String(),
			SupplyCenter: t.SupplyCenter,
			Coastal:      t.Coastal,
			Neighbors:    t.Neighbors,
		}
		var val yaml.Node
		if err := val.Encode(rec); err != nil {
			return fmt.Errorf("encode territory %q: %w", t.Name, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.Name},
			&val,
		)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}
