package diplomacy

import (
	"fmt"
	"strings"
)

// TerritoryKind classifies a territory as land, sea, or unmovable.
type TerritoryKind int

const (
	Land      TerritoryKind = iota // Armies; fleets only when coastal
	Sea                            // Fleets only
	Unmovable                      // Impassable to every unit
)

func (k TerritoryKind) String() string {
	switch k {
	case Land:
		return "land"
	case Sea:
		return "sea"
	case Unmovable:
		return "unmovable"
	default:
		return "unknown"
	}
}

// ParseTerritoryKind converts a catalog type label into a TerritoryKind.
// Unknown labels are rejected rather than carried through as open strings.
func ParseTerritoryKind(s string) (TerritoryKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "land":
		return Land, nil
	case "sea":
		return Sea, nil
	case "unmovable":
		return Unmovable, nil
	default:
		return 0, fmt.Errorf("unknown territory type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k TerritoryKind) MarshalText() ([]byte, error) {
	if k < Land || k > Unmovable {
		return nil, fmt.Errorf("unknown territory kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *TerritoryKind) UnmarshalText(text []byte) error {
	parsed, err := ParseTerritoryKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Territory is a single named location in the catalog. It is immutable once
// the catalog has been built.
type Territory struct {
	Name         string        `json:"name" yaml:"name"`
	Kind         TerritoryKind `json:"type" yaml:"type"`
	Coastal      bool          `json:"coastal,omitempty" yaml:"coastal,omitempty"`
	SupplyCenter bool          `json:"supply_center,omitempty" yaml:"supply_center,omitempty"`
	Neighbors    []string      `json:"neighbors,omitempty" yaml:"neighbors,omitempty"`
}
