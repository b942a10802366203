package game

// Trader is a non-hostile encounter: a merchant who only negotiates
// with adventurers of sufficient experience. Created fresh per
// encounter, discarded when the player walks away.
type Trader struct {
	name      string
	threshold int
	stock     []StockItem
}

// StockItem is one entry of a trader's wares.
type StockItem struct {
	Weapon Weapon
	Price  int
}

const traderName = "Guybrush"

// newTrader rolls a merchant whose experience threshold hovers around
// the player's own, so the gate sometimes refuses. Stock prices carry
// a markup that grows with the threshold.
func newTrader(c *Catalog, playerXP int) *Trader {
	threshold := playerXP - 2 + d6()
	if threshold < 0 {
		threshold = 0
	}
	t := &Trader{name: traderName, threshold: threshold}
	for _, w := range c.stockWeapons() {
		t.stock = append(t.stock, StockItem{Weapon: w, Price: w.Price + threshold})
	}
	return t
}

func (t *Trader) Name() string   { return t.name }
func (t *Trader) Threshold() int { return t.threshold }

// Stock returns a copy; index positions are the selection order.
func (t *Trader) Stock() []StockItem {
	return append([]StockItem(nil), t.stock...)
}
