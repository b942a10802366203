package game

// Outcome is the combat protocol's verdict for one encounter.
type Outcome int

const (
	OutcomeDraw Outcome = iota
	OutcomeMonsterWin
	OutcomePlayerWin
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMonsterWin:
		return "monster wins"
	case OutcomePlayerWin:
		return "player wins"
	default:
		return "draw"
	}
}

// resolveCombat runs one full exchange. The first striker attacks; the
// other side counter-attacks only if the first strike did not already
// win. Neither strike landing is a draw. announce receives the
// narrative line before each strike; the attack math itself belongs to
// the combatants.
func resolveCombat(player, monster Combatant, monsterFirst bool, announce func(string)) Outcome {
	if announce == nil {
		announce = func(string) {}
	}
	if monsterFirst {
		announce("The monster attacks you.")
		if monster.Attack(player) {
			return OutcomeMonsterWin
		}
		announce("You attack the monster.")
		if player.Attack(monster) {
			return OutcomePlayerWin
		}
		return OutcomeDraw
	}
	announce("You attack the monster.")
	if player.Attack(monster) {
		return OutcomePlayerWin
	}
	announce("The monster attacks you.")
	if monster.Attack(player) {
		return OutcomeMonsterWin
	}
	return OutcomeDraw
}
