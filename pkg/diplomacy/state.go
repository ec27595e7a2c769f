package diplomacy

import "errors"

// ErrNoPlayers is returned when a game is set up with an empty roster.
var ErrNoPlayers = errors.New("at least one player is required")

// Season represents a game season.
type Season string

const (
	Spring Season = "spring"
	Fall   Season = "fall"
)

// GameState is the root of one session: the board, the roster, whose turn
// it is, and the turn/season labels. Turn and Season are set at start and
// not advanced by any operation.
type GameState struct {
	Board         *Board
	Roster        *Roster
	CurrentPlayer string
	Turn          int
	Season        Season
}

// NewGameState builds a fresh board from c and seats names in turn order.
// The first seated player moves first.
func NewGameState(c *Catalog, names []string) (*GameState, error) {
	roster := NewRoster(names)
	if roster.Len() == 0 {
		return nil, ErrNoPlayers
	}
	return &GameState{
		Board:         NewBoard(c),
		Roster:        roster,
		CurrentPlayer: roster.First(),
		Turn:          1,
		Season:        Spring,
	}, nil
}

// Current returns the player whose turn it is.
func (gs *GameState) Current() *Player {
	return gs.Roster.Player(gs.CurrentPlayer)
}

// advance hands the turn to the next seat.
func (gs *GameState) advance() {
	gs.CurrentPlayer = gs.Roster.Next(gs.CurrentPlayer)
}
