package game

// EncounterKind says what the player ran into on the road.
type EncounterKind int

const (
	EncounterCombat EncounterKind = iota
	EncounterTrade
)

// Encounter is the transient result of one roll of the road: exactly
// one of Monster or Trader is set, matching Kind.
type Encounter struct {
	Kind    EncounterKind
	Monster *Monster
	Trader  *Trader
}

// NewEncounter rolls the next encounter: a monster or a trader, even
// odds, both scaled to the player's experience. flip overrides the
// coin for callers that need a scripted roll; nil means fair.
func NewEncounter(c *Catalog, playerXP int, flip func() bool) Encounter {
	if flip == nil {
		flip = coinFlip
	}
	if flip() {
		return Encounter{Kind: EncounterCombat, Monster: newMonster(c, playerXP)}
	}
	return Encounter{Kind: EncounterTrade, Trader: newTrader(c, playerXP)}
}
