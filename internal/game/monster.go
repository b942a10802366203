package game

// Monster is a throwaway opponent: created for one encounter, scaled
// to the player's experience, never persisted.
type Monster struct {
	name     string
	level    int
	strength int
	stamina  int
	gold     int
	weapon   Weapon
}

// newMonster rolls an opponent whose level sits a die above the
// player's experience. Roughly half of all monsters carry a weapon.
func newMonster(c *Catalog, playerXP int) *Monster {
	level := playerXP + d6()
	m := &Monster{
		name:     c.monsterName(),
		level:    level,
		strength: scaleStrength(level),
		stamina:  scaleStamina(level),
		gold:     d6() * (1 + level/10),
	}
	if coinFlip() {
		m.weapon = c.randomWeapon()
	}
	return m
}

// scaleStrength and scaleStamina are monotonic non-decreasing in
// level so tougher monsters never come out weaker.
func scaleStrength(level int) int { return 5 + level/2 }
func scaleStamina(level int) int  { return 5 + level/3 }

func (m *Monster) Name() string   { return m.name }
func (m *Monster) XP() int        { return m.level }
func (m *Monster) Gold() int      { return m.gold }
func (m *Monster) Strength() int  { return m.strength }
func (m *Monster) Stamina() int   { return m.stamina }
func (m *Monster) Weapon() Weapon { return m.weapon }

func (m *Monster) Attack(opp Combatant) bool { return strike(m, opp) }
