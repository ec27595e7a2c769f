package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/diplomacy-plus/internal/model"
	"github.com/freeeve/diplomacy-plus/internal/repository"
	"github.com/freeeve/diplomacy-plus/pkg/diplomacy"
)

var ErrPlayerNotFound = errors.New("player not found")

// SessionService owns the one game a server process hosts. The engine is
// single-threaded, so every access goes through mu.
type SessionService struct {
	mu          sync.Mutex
	id          string
	engine      *diplomacy.Engine
	moves       repository.MoveLog
	broadcaster Broadcaster
	fallback    Broadcaster
	startedAt   time.Time
	seq         int64
}

// NewSessionService seats players on a fresh board built from cat. auth
// decides who may move; nil keeps the engine's trusting default.
func NewSessionService(cat *diplomacy.Catalog, players []string, auth diplomacy.Authorizer, moves repository.MoveLog, broadcaster Broadcaster) (*SessionService, error) {
	gs, err := diplomacy.NewGameState(cat, players)
	if err != nil {
		return nil, err
	}
	var opts []diplomacy.EngineOption
	if auth != nil {
		opts = append(opts, diplomacy.WithAuthorizer(auth))
	}
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	s := &SessionService{
		id:          uuid.NewString(),
		engine:      diplomacy.NewEngine(gs, opts...),
		moves:       moves,
		broadcaster: broadcaster,
		startedAt:   time.Now().UTC(),
	}
	log.Info().Str("sessionId", s.id).Strs("players", gs.Roster.Names()).
		Int("territories", gs.Board.Len()).Msg("Session started")
	return s, nil
}

// SetFallbackBroadcaster sets where a move goes when the move log rejects
// it. When the log also publishes moves, that publish failed with it.
func (s *SessionService) SetFallbackBroadcaster(b Broadcaster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = b
}

// ID returns the session identifier.
func (s *SessionService) ID() string {
	return s.id
}

// HasPlayer reports whether name holds a seat.
func (s *SessionService) HasPlayer(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State().Roster.Player(name) != nil
}

// Move applies a tokenized "move <position> <unit>" command.
func (s *SessionService) Move(ctx context.Context, args []string) (*diplomacy.Placement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.engine.Move(ctx, args)
	return s.record(ctx, p, err)
}

// RequestMove places unit on position for the current player.
func (s *SessionService) RequestMove(ctx context.Context, position, unit string) (*diplomacy.Placement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.engine.RequestMove(ctx, position, unit)
	return s.record(ctx, p, err)
}

// record logs and publishes an accepted move. The board has already changed,
// so a failing move log is reported but does not undo the move. Caller holds mu.
func (s *SessionService) record(ctx context.Context, p *diplomacy.Placement, err error) (*diplomacy.Placement, error) {
	if err != nil {
		log.Debug().Err(err).Str("sessionId", s.id).Str("currentPlayer", s.engine.CurrentPlayer()).Msg("Move rejected")
		return nil, err
	}

	s.seq++
	ev := model.MoveEvent{
		SessionID:  s.id,
		Seq:        s.seq,
		Player:     p.Player,
		Unit:       p.Unit.String(),
		Position:   p.Position,
		NextPlayer: p.Next,
		At:         time.Now().UTC(),
	}
	log.Info().Str("sessionId", s.id).Int64("seq", ev.Seq).Str("player", ev.Player).
		Str("unit", ev.Unit).Str("position", ev.Position).Str("next", ev.NextPlayer).Msg("Unit placed")

	if s.moves != nil {
		if err := s.moves.AppendMove(ctx, ev); err != nil {
			log.Error().Err(err).Str("sessionId", s.id).Int64("seq", ev.Seq).Msg("Failed to append move log")
			if s.fallback != nil {
				s.fallback.BroadcastSessionEvent(s.id, EventUnitPlaced, ev)
			}
		}
	}
	s.broadcaster.BroadcastSessionEvent(s.id, EventUnitPlaced, ev)
	return p, nil
}

// Board returns every cell in catalog order.
func (s *SessionService) Board() []model.Territory {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := s.engine.State().Board
	out := make([]model.Territory, 0, board.Len())
	board.Each(func(_ string, c *diplomacy.Cell) {
		out = append(out, toTerritory(c))
	})
	return out
}

// Territory returns a single cell.
func (s *SessionService) Territory(name string) (model.Territory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.engine.State().Board.Cell(name)
	if err != nil {
		return model.Territory{}, err
	}
	return toTerritory(c), nil
}

// Resources returns a player's counters; an empty name means the player
// whose turn it is.
func (s *SessionService) Resources(name string) (model.Resources, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		name = s.engine.CurrentPlayer()
	}
	p := s.engine.State().Roster.Player(name)
	if p == nil {
		return model.Resources{}, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
	}
	return model.Resources{
		Player:   p.Name,
		Food:     p.Resources.Food,
		Energy:   p.Resources.Energy,
		Material: p.Resources.Material,
		Hearts:   p.Resources.Hearts,
	}, nil
}

// Units lists every unit a player owns, in catalog order; an empty name
// means the player whose turn it is.
func (s *SessionService) Units(name string) (model.PlayerUnits, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gs := s.engine.State()
	if name == "" {
		name = gs.CurrentPlayer
	}
	if gs.Roster.Player(name) == nil {
		return model.PlayerUnits{}, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
	}
	placed := gs.Board.UnitsOf(name)
	units := make([]model.PlacedUnit, len(placed))
	for i, pu := range placed {
		units[i] = model.PlacedUnit{Territory: pu.Territory, Kind: pu.Unit.Kind.String()}
	}
	return model.PlayerUnits{Player: name, Units: units}, nil
}

// Session summarizes the running game.
func (s *SessionService) Session() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	gs := s.engine.State()
	return model.Session{
		ID:            s.id,
		Players:       gs.Roster.Names(),
		CurrentPlayer: gs.CurrentPlayer,
		Turn:          gs.Turn,
		Season:        string(gs.Season),
		Territories:   gs.Board.Len(),
		Units:         gs.Board.UnitCount(),
		StartedAt:     s.startedAt,
	}
}

// RecentMoves returns up to n accepted moves, oldest first.
func (s *SessionService) RecentMoves(ctx context.Context, n int) ([]model.MoveEvent, error) {
	if s.moves == nil {
		return []model.MoveEvent{}, nil
	}
	return s.moves.RecentMoves(ctx, s.id, n)
}

// Close discards the session's move log. Nothing outlives the session.
func (s *SessionService) Close(ctx context.Context) error {
	if s.moves == nil {
		return nil
	}
	if err := s.moves.DeleteSession(ctx, s.id); err != nil {
		return fmt.Errorf("delete session log: %w", err)
	}
	log.Info().Str("sessionId", s.id).Msg("Session closed")
	return nil
}

func toTerritory(c *diplomacy.Cell) model.Territory {
	units := make([]model.Unit, len(c.Units))
	for i, u := range c.Units {
		units[i] = model.Unit{Owner: u.Owner, Kind: u.Kind.String()}
	}
	return model.Territory{
		Name:         c.Name,
		Type:         c.Kind.String(),
		Coastal:      c.Coastal,
		SupplyCenter: c.SupplyCenter,
		Neighbors:    append([]string{}, c.Neighbors...),
		Units:        units,
		Owner:        c.Owner,
		Buildings:    append([]string{}, c.Buildings...),
	}
}
