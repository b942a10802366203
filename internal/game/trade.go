package game

import "fmt"

// BuyOutcome is the trader's answer to a purchase attempt.
type BuyOutcome int

const (
	BuyAccepted BuyOutcome = iota
	BuyRefused
)

// SellOffer is one sellable inventory entry. Index is the position in
// the player's full inventory, so selection survives the filtering of
// equipped items.
type SellOffer struct {
	Index int
	Item  InventoryItem
}

// Trade is one negotiation between the player and a trader. It lives
// for a single encounter and holds no state of its own beyond the two
// parties.
type Trade struct {
	player *Player
	trader *Trader
}

func newTrade(p *Player, t *Trader) *Trade {
	return &Trade{player: p, trader: t}
}

// Allowed reports whether the trader will negotiate at all: the
// player needs at least the trader's experience.
func (t *Trade) Allowed() bool {
	return t.player.XP() >= t.trader.Threshold()
}

// Stock lists the trader's wares, index-addressable for SelectBuy.
func (t *Trade) Stock() []StockItem {
	return t.trader.Stock()
}

// Sellable lists the player's unequipped items. The equipped weapon is
// never offered, whatever its position.
func (t *Trade) Sellable() []SellOffer {
	var offers []SellOffer
	for i, item := range t.player.Inventory() {
		if item.Equipped {
			continue
		}
		offers = append(offers, SellOffer{Index: i, Item: item})
	}
	return offers
}

// Buy attempts to purchase stock entry i. The trader only sells when
// the player's gold strictly exceeds the price; exact change is
// refused. On acceptance the weapon joins the inventory and the price
// is deducted.
func (t *Trade) Buy(i int) (BuyOutcome, error) {
	stock := t.trader.Stock()
	if i < 0 || i >= len(stock) {
		return BuyRefused, fmt.Errorf("buy: no stock entry %d", i)
	}
	item := stock[i]
	if t.player.Gold() <= item.Price {
		return BuyRefused, nil
	}
	if err := t.player.SpendGold(item.Price); err != nil {
		return BuyRefused, err
	}
	t.player.AddToInventory(item.Weapon)
	return BuyAccepted, nil
}

// Sell hands inventory entry i to the trader. Pricing and credit are
// the player's own policy; the protocol only dispatches the index.
func (t *Trade) Sell(i int) (Weapon, error) {
	return t.player.SellWeapon(i)
}
