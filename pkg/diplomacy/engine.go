package diplomacy

import "context"

// Authorizer decides whether the caller carried by ctx may act for the
// current player. It runs before any move validation.
type Authorizer interface {
	Authorize(ctx context.Context, currentPlayer string) error
}

// TrustCurrentPlayer accepts every caller as the current player. It suits a
// single shared terminal where seats take turns at the keyboard.
type TrustCurrentPlayer struct{}

func (TrustCurrentPlayer) Authorize(context.Context, string) error { return nil }

// Placement is the record of an accepted move.
type Placement struct {
	Player   string   `json:"player"`
	Unit     UnitKind `json:"unit"`
	Position string   `json:"position"`
	Next     string   `json:"next_player"`
}

// Engine validates and applies moves against a GameState and rotates turns.
// It is not safe for concurrent use.
type Engine struct {
	state *GameState
	auth  Authorizer
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithAuthorizer replaces the default TrustCurrentPlayer authorizer.
func WithAuthorizer(a Authorizer) EngineOption {
	return func(e *Engine) { e.auth = a }
}

// NewEngine wraps gs.
func NewEngine(gs *GameState, opts ...EngineOption) *Engine {
	e := &Engine{state: gs, auth: TrustCurrentPlayer{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State exposes the underlying game state for read access.
func (e *Engine) State() *GameState {
	return e.state
}

// CurrentPlayer returns the name of the player to move.
func (e *Engine) CurrentPlayer() string {
	return e.state.CurrentPlayer
}

// CurrentResources returns the resource counters of the player to move.
func (e *Engine) CurrentResources() Resources {
	return e.state.Current().Resources
}

// Move is the token-level entry point: args must be exactly
// [position, unit]. Any other count is a usage error.
func (e *Engine) Move(ctx context.Context, args []string) (*Placement, error) {
	if err := e.auth.Authorize(ctx, e.state.CurrentPlayer); err != nil {
		return nil, err
	}
	if len(args) != 2 {
		return nil, &MoveError{Kind: ErrUsage, Args: len(args)}
	}
	return e.place(args[0], args[1])
}

// RequestMove places a unit of the named kind on position for the current
// player and passes the turn. Checks run in order: position, unit type,
// terrain. The first failure is returned as a *MoveError and leaves the
// state untouched, including whose turn it is.
func (e *Engine) RequestMove(ctx context.Context, position, unit string) (*Placement, error) {
	if err := e.auth.Authorize(ctx, e.state.CurrentPlayer); err != nil {
		return nil, err
	}
	return e.place(position, unit)
}

func (e *Engine) place(position, unit string) (*Placement, error) {
	board := e.state.Board
	if !board.Has(position) {
		return nil, &MoveError{Kind: ErrInvalidPosition, Position: position, Unit: unit}
	}
	kind, err := ParseUnitKind(unit)
	if err != nil {
		return nil, &MoveError{Kind: ErrInvalidUnitType, Position: position, Unit: unit}
	}
	cell, err := board.Cell(position)
	if err != nil {
		return nil, err
	}
	if reason := CheckPlacement(cell, kind); reason != Legal {
		return nil, &MoveError{Kind: ErrIllegalMove, Reason: reason, Position: position, Unit: kind.String()}
	}

	player := e.state.CurrentPlayer
	if err := board.AppendUnit(position, player, kind); err != nil {
		return nil, err
	}
	e.state.advance()

	return &Placement{
		Player:   player,
		Unit:     kind,
		Position: position,
		Next:     e.state.CurrentPlayer,
	}, nil
}
