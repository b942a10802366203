package game

// Weapon is a value: copying one across inventories is safe, there is
// no shared ownership to track.
type Weapon struct {
	Name     string `yaml:"name"`
	Strength int    `yaml:"str"`
	Stamina  int    `yaml:"sta"`
	Price    int    `yaml:"price"`
}

// IsZero reports whether w denotes "no weapon".
func (w Weapon) IsZero() bool { return w.Name == "" }

// InventoryItem is one slot of the player's bag. Slice position is the
// display order and the selection index.
type InventoryItem struct {
	Weapon   Weapon
	Equipped bool
}
