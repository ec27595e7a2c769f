package model

import "time"

// Territory is the read-only view of one board cell.
type Territory struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Coastal      bool     `json:"coastal"`
	SupplyCenter bool     `json:"supply_center"`
	Neighbors    []string `json:"neighbors"`
	Units        []Unit   `json:"units"`
	Owner        string   `json:"owner,omitempty"`
	Buildings    []string `json:"buildings"`
}

// Unit is a placed unit.
type Unit struct {
	Owner string `json:"owner"`
	Kind  string `json:"kind"`
}

// PlacedUnit is one of a player's units and where it stands.
type PlacedUnit struct {
	Territory string `json:"territory"`
	Kind      string `json:"kind"`
}

// PlayerUnits lists a player's units in catalog order.
type PlayerUnits struct {
	Player string       `json:"player"`
	Units  []PlacedUnit `json:"units"`
}

// Resources is a player's counters as shown to clients.
type Resources struct {
	Player   string `json:"player"`
	Food     int    `json:"food"`
	Energy   int    `json:"energy"`
	Material int    `json:"material"`
	Hearts   int    `json:"hearts"`
}

// Session summarizes a running game.
type Session struct {
	ID            string    `json:"id"`
	Players       []string  `json:"players"`
	CurrentPlayer string    `json:"current_player"`
	Turn          int       `json:"turn"`
	Season        string    `json:"season"`
	Territories   int       `json:"territories"`
	Units         int       `json:"units"`
	StartedAt     time.Time `json:"started_at"`
}

// MoveEvent records one accepted move.
type MoveEvent struct {
	SessionID  string    `json:"session_id"`
	Seq        int64     `json:"seq"`
	Player     string    `json:"player"`
	Unit       string    `json:"unit"`
	Position   string    `json:"position"`
	NextPlayer string    `json:"next_player"`
	At         time.Time `json:"at"`
}
