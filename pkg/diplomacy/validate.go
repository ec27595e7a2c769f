package diplomacy

import (
	"errors"
	"fmt"
)

var (
	ErrUsage           = errors.New("usage: move <position> <unit>")
	ErrInvalidPosition = errors.New("invalid position")
	ErrInvalidUnitType = errors.New("invalid unit type")
	ErrIllegalMove     = errors.New("illegal move")
	ErrNotYourTurn     = errors.New("not your turn")
)

// IllegalReason explains which terrain rule an illegal move broke.
type IllegalReason int

const (
	Legal              IllegalReason = iota
	ArmyRequiresLand                 // army onto sea or unmovable
	FleetRequiresWater               // fleet onto inland or unmovable
)

func (r IllegalReason) String() string {
	switch r {
	case Legal:
		return "legal"
	case ArmyRequiresLand:
		return "armies may only occupy land"
	case FleetRequiresWater:
		return "fleets may only occupy sea or coastal land"
	default:
		return "unknown"
	}
}

// MoveError is a rejected move. Kind is one of the package sentinels, so
// callers branch with errors.Is.
type MoveError struct {
	Kind     error
	Reason   IllegalReason // set only when Kind is ErrIllegalMove
	Position string
	Unit     string
	Args     int // token count, set only when Kind is ErrUsage
}

func (e *MoveError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrUsage):
		return fmt.Sprintf("%s (got %d arguments)", e.Kind, e.Args)
	case errors.Is(e.Kind, ErrIllegalMove):
		return fmt.Sprintf("%s: %s (%s to %s)", e.Kind, e.Reason, e.Unit, e.Position)
	case errors.Is(e.Kind, ErrInvalidUnitType):
		return fmt.Sprintf("%s: %q", e.Kind, e.Unit)
	default:
		return fmt.Sprintf("%s: %q", e.Kind, e.Position)
	}
}

func (e *MoveError) Unwrap() error {
	return e.Kind
}

// CheckPlacement applies the terrain rule for putting a unit of kind on c.
// Armies need land. Fleets need sea, or land that is coastal. Unmovable
// cells take neither.
func CheckPlacement(c *Cell, kind UnitKind) IllegalReason {
	switch kind {
	case Army:
		if c.Kind != Land {
			return ArmyRequiresLand
		}
	case Fleet:
		if c.Kind == Sea || (c.Kind == Land && c.Coastal) {
			return Legal
		}
		return FleetRequiresWater
	}
	return Legal
}
