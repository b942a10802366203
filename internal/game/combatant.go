package game

// Combatant is the capability contract shared by both sides of an
// encounter: anything with experience, gold, stats, and a
// single-strike attack.
type Combatant interface {
	Name() string
	XP() int
	Gold() int
	Strength() int
	Stamina() int
	Weapon() Weapon

	// Attack resolves one strike against opp and reports whether the
	// attacker defeated it.
	Attack(opp Combatant) bool
}

// strike is the attack formula shared by player and monster: an
// opposed roll of 2d6 plus the attacker's strength and weapon bonus
// against 2d6 plus the defender's stamina and weapon bonus. The
// attacker must beat the defense outright.
func strike(att, def Combatant) bool {
	offense := roll2d6() + att.Strength() + att.Weapon().Strength
	defense := roll2d6() + def.Stamina() + def.Weapon().Stamina
	return offense > defense
}
