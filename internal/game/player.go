package game

import "fmt"

const (
	startLife     = 3
	startStrength = 8
	startStamina  = 8
	startGold     = 20

	// winXP ends the session in victory once reached.
	winXP = 50
)

// Player is the single hero of a session. All mutation goes through
// methods so the life/xp/gold floors hold.
type Player struct {
	name      string
	life      int
	xp        int
	strength  int
	stamina   int
	gold      int
	weapon    Weapon
	inventory []InventoryItem
}

func NewPlayer(name string) *Player {
	return &Player{
		name:     name,
		life:     startLife,
		strength: startStrength,
		stamina:  startStamina,
		gold:     startGold,
	}
}

// RestorePlayer rebuilds a player from a persisted snapshot.
func RestorePlayer(s Snapshot) *Player {
	return &Player{
		name:      s.Name,
		life:      s.Life,
		xp:        s.XP,
		strength:  s.Strength,
		stamina:   s.Stamina,
		gold:      s.Gold,
		weapon:    s.Weapon,
		inventory: append([]InventoryItem(nil), s.Inventory...),
	}
}

func (p *Player) Name() string   { return p.name }
func (p *Player) Life() int      { return p.life }
func (p *Player) XP() int        { return p.xp }
func (p *Player) Strength() int  { return p.strength }
func (p *Player) Stamina() int   { return p.stamina }
func (p *Player) Gold() int      { return p.gold }
func (p *Player) Weapon() Weapon { return p.weapon }

// Inventory returns a copy; callers cannot reorder the bag.
func (p *Player) Inventory() []InventoryItem {
	return append([]InventoryItem(nil), p.inventory...)
}

// AddToInventory appends w unequipped. Acquiring a weapon never
// touches equip flags; equipping is a separate, explicit act.
func (p *Player) AddToInventory(w Weapon) {
	p.inventory = append(p.inventory, InventoryItem{Weapon: w})
}

// Equip makes the weapon at index i the held weapon and marks the
// slot. It does not clear other equipped flags: the game has always
// allowed zero or several marked slots, and we keep that behavior
// rather than silently enforce exclusivity.
func (p *Player) Equip(i int) error {
	if i < 0 || i >= len(p.inventory) {
		return fmt.Errorf("equip: no item at index %d", i)
	}
	p.inventory[i].Equipped = true
	p.weapon = p.inventory[i].Weapon
	return nil
}

// SellWeapon removes the item at index i and credits its listed price.
// The equipped item is never for sale.
func (p *Player) SellWeapon(i int) (Weapon, error) {
	if i < 0 || i >= len(p.inventory) {
		return Weapon{}, fmt.Errorf("sell: no item at index %d", i)
	}
	item := p.inventory[i]
	if item.Equipped {
		return Weapon{}, fmt.Errorf("sell: item at index %d is equipped", i)
	}
	p.inventory = append(p.inventory[:i], p.inventory[i+1:]...)
	p.gold += item.Weapon.Price
	return item.Weapon, nil
}

func (p *Player) AddGold(n int) { p.gold += n }

// SpendGold deducts n, refusing to go negative.
func (p *Player) SpendGold(n int) error {
	if n > p.gold {
		return fmt.Errorf("spend: %d gold needed, %d held", n, p.gold)
	}
	p.gold -= n
	return nil
}

// GainXP awards the single point a victory is worth.
func (p *Player) GainXP() int {
	p.xp++
	return p.xp
}

// LoseXP is the price of fleeing. Experience never goes below zero.
func (p *Player) LoseXP() {
	if p.xp > 0 {
		p.xp--
	}
}

// LoseLife removes one life point. Zero is terminal; the orchestrator
// checks before calling.
func (p *Player) LoseLife() {
	if p.life > 0 {
		p.life--
	}
}

func (p *Player) Attack(opp Combatant) bool { return strike(p, opp) }

// Snapshot captures everything the persistence gateway stores.
func (p *Player) Snapshot() Snapshot {
	return Snapshot{
		Name:      p.name,
		Life:      p.life,
		XP:        p.xp,
		Strength:  p.strength,
		Stamina:   p.stamina,
		Gold:      p.gold,
		Weapon:    p.weapon,
		Inventory: append([]InventoryItem(nil), p.inventory...),
	}
}
