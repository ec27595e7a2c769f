package diplomacy

import (
	"fmt"
	"strings"
)

// UnitKind represents the type of a military unit.
type UnitKind int

const (
	Army UnitKind = iota
	Fleet
)

func (u UnitKind) String() string {
	if u == Army {
		return "army"
	}
	return "fleet"
}

// ParseUnitKind normalizes s case-insensitively to a UnitKind.
func ParseUnitKind(s string) (UnitKind, error) {
	switch strings.ToLower(s) {
	case "army":
		return Army, nil
	case "fleet":
		return Fleet, nil
	default:
		return 0, fmt.Errorf("unknown unit type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (u UnitKind) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UnitKind) UnmarshalText(text []byte) error {
	parsed, err := ParseUnitKind(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Unit is a single placed unit, recorded as (owner, kind) on its cell.
type Unit struct {
	Owner string   `json:"owner"`
	Kind  UnitKind `json:"kind"`
}
