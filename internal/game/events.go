package game

// Event is anything the session publishes on its bus. The UI adapter
// subscribes; the session never touches presentation directly.
type Event interface{}

// MessageChanged carries the current narrative line.
type MessageChanged struct {
	Text string
}

// AffordancesChanged carries the exact set of actions valid for the
// new state. An empty set means everything is hidden.
type AffordancesChanged struct {
	Visible []Affordance
}

// PlayerChanged is broadcast after any mutation so inventory and stat
// views refresh without the session knowing about them.
type PlayerChanged struct {
	Player Snapshot
}

// SessionEnded marks session teardown after a terminal win or loss.
type SessionEnded struct {
	Victory bool
}

// Snapshot is a copy of everything about the player worth persisting
// or displaying. It is also the unit the persistence gateway moves.
type Snapshot struct {
	Name      string
	Life      int
	XP        int
	Strength  int
	Stamina   int
	Gold      int
	Weapon    Weapon
	Inventory []InventoryItem
}
