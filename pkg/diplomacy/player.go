package diplomacy

// Resources are a player's four counters. Nothing in the engine spends or
// grants them.
type Resources struct {
	Food     int `json:"food"`
	Energy   int `json:"energy"`
	Material int `json:"material"`
	Hearts   int `json:"hearts"`
}

// StartingResources returns the allotment every player begins with.
func StartingResources() Resources {
	return Resources{Food: 10, Energy: 1, Material: 1, Hearts: 1}
}

// Player is one seat at the table. Capital and LandOfImportance are
// territory names that no operation sets yet.
type Player struct {
	Name             string
	Capital          string
	LandOfImportance string
	Resources        Resources
}

// Roster keeps turn order separately from the name lookup. Order is the
// rotation authority; players is only an index.
type Roster struct {
	order   []string
	players map[string]*Player
}

// NewRoster seats players in the given order. A repeated name replaces the
// earlier player's record but keeps its first seat, so the roster can end
// up shorter than names.
func NewRoster(names []string) *Roster {
	r := &Roster{players: make(map[string]*Player, len(names))}
	for _, name := range names {
		r.add(name)
	}
	return r
}

func (r *Roster) add(name string) {
	if _, exists := r.players[name]; !exists {
		r.order = append(r.order, name)
	}
	r.players[name] = &Player{Name: name, Resources: StartingResources()}
}

// Len returns the number of distinct players.
func (r *Roster) Len() int {
	return len(r.order)
}

// Names returns player names in turn order.
func (r *Roster) Names() []string {
	return append([]string(nil), r.order...)
}

// Player returns the named player, or nil.
func (r *Roster) Player(name string) *Player {
	return r.players[name]
}

// First returns the player who opens the game.
func (r *Roster) First() string {
	if len(r.order) == 0 {
		return ""
	}
	return r.order[0]
}

// Next returns the player seated after name, wrapping to the first seat.
func (r *Roster) Next(name string) string {
	for i, n := range r.order {
		if n == name {
			return r.order[(i+1)%len(r.order)]
		}
	}
	return r.First()
}
