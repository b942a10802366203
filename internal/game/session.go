package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"questwalk/internal/event"
)

// State is the orchestrator's position in the encounter loop.
type State int

const (
	StateIdle State = iota
	StateCombat
	StateTradeMeet
	StateTradeBuy
	StateTradeSell
	StateEnded
)

// Affordance names a user-actionable control. The session publishes
// the visible set on every transition; the UI enables exactly that
// set, which is what keeps mid-flight protocols re-entrancy free.
type Affordance string

const (
	ActionNext   Affordance = "next"
	ActionAttack Affordance = "attack"
	ActionFlee   Affordance = "flee"
	ActionBuy    Affordance = "buy"
	ActionSell   Affordance = "sell"
	ActionLeave  Affordance = "leave"
)

// ErrNotAllowed is returned when an action is invoked outside the
// state that enables it. A correctly synchronized UI never triggers
// it; the guard keeps the HTTP surface honest.
var ErrNotAllowed = errors.New("action not available in this state")

// Gateway persists sessions across a request boundary. Failures are
// logged and the triggering operation aborts without touching state.
type Gateway interface {
	Save(ctx context.Context, name string, snap Snapshot) (string, error)
	Load(ctx context.Context, name string) (Snapshot, error)
}

// Session drives the encounter loop: advance, encounter, resolve,
// back to idle. It owns the single player and the single active
// encounter slot and is the only writer of either.
type Session struct {
	mu      sync.Mutex
	player  *Player
	state   State
	monster *Monster
	trade   *Trade
	message string
	visible []Affordance
	journey []string
	victory bool

	catalog *Catalog
	bus     *event.Bus[Event]
	gateway Gateway

	// Suspension points. Tests zero these to run instantly.
	TravelDelay time.Duration
	EndDelay    time.Duration

	// flip decides encounter kind and combat turn order; resolve runs
	// the combat protocol. Tests script both.
	flip    func() bool
	resolve func(player, monster Combatant, monsterFirst bool, announce func(string)) Outcome
}

func NewSession(c *Catalog, gw Gateway) *Session {
	if c == nil {
		c = DefaultCatalog()
	}
	return &Session{
		catalog:     c,
		bus:         event.NewBus[Event](),
		gateway:     gw,
		TravelDelay: 600 * time.Millisecond,
		EndDelay:    2 * time.Second,
		flip:        coinFlip,
		resolve:     resolveCombat,
	}
}

// Bus exposes the session's event stream for UI adapters.
func (s *Session) Bus() *event.Bus[Event] { return s.bus }

// Start creates a fresh hero and opens the loop at idle.
func (s *Session) Start(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player = NewPlayer(name)
	s.monster, s.trade = nil, nil
	s.victory = false
	s.journey = nil
	s.state = StateIdle
	s.setMessage("Welcome, hero!")
	s.publish(PlayerChanged{Player: s.player.Snapshot()})
	s.showAffordances(ActionNext)
}

// Next walks the road to the next encounter. The travel delay is the
// one suspension point between idle and the encounter roll.
func (s *Session) Next(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle || s.player == nil {
		return ErrNotAllowed
	}
	s.hideAffordances()
	if err := s.wait(ctx, s.TravelDelay); err != nil {
		return err
	}

	enc := NewEncounter(s.catalog, s.player.XP(), s.flip)
	switch enc.Kind {
	case EncounterCombat:
		s.monster = enc.Monster
		s.state = StateCombat
		s.setMessage(fmt.Sprintf("You face a level %d %s. What do you do?", enc.Monster.XP(), enc.Monster.Name()))
		s.showAffordances(ActionAttack, ActionFlee)
	case EncounterTrade:
		s.trade = newTrade(s.player, enc.Trader)
		s.state = StateTradeMeet
		s.setMessage(fmt.Sprintf("It's %s, the pirate trader. What do you do?", enc.Trader.Name()))
		s.showAffordances(ActionBuy, ActionSell, ActionLeave)
	}
	return nil
}

// Attack runs the combat protocol against the active monster and
// applies the outcome: life loss or teardown on a monster win, loot
// and experience (possibly terminal victory) on a player win, nothing
// on a draw.
func (s *Session) Attack(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCombat || s.monster == nil {
		return ErrNotAllowed
	}
	s.hideAffordances()

	outcome := s.resolve(s.player, s.monster, s.flip(), s.setMessage)
	switch outcome {
	case OutcomeMonsterWin:
		if s.player.Life() <= 1 {
			return s.endGame(ctx, false)
		}
		s.player.LoseLife()
		s.setMessage("The monster beat you. You lose one life point.")
	case OutcomePlayerWin:
		loot := s.monster.Weapon()
		gold := s.monster.Gold()
		var claim string
		if loot.IsZero() {
			claim = fmt.Sprintf("no weapon and %d gold pieces", gold)
		} else {
			s.player.AddToInventory(loot)
			claim = fmt.Sprintf("1 %s and %d gold pieces", loot.Name, gold)
		}
		s.player.AddGold(gold)
		s.player.GainXP()
		s.setMessage("You beat the monster and claim " + claim + ".")
		if s.player.XP() >= winXP {
			return s.endGame(ctx, true)
		}
	case OutcomeDraw:
		s.setMessage("A draw. The monster runs off and your journey continues.")
	}
	return s.returnToIdle(ctx)
}

// Flee abandons the fight at the cost of one experience point.
func (s *Session) Flee(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCombat {
		return ErrNotAllowed
	}
	s.hideAffordances()
	s.player.LoseXP()
	s.setMessage("You fled and lost 1 experience point.")
	return s.returnToIdle(ctx)
}

// Buy applies the experience gate and, if it passes, lays out the
// trader's stock for SelectBuy. A gate refusal ends the encounter on
// the spot.
func (s *Session) Buy(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateTradeMeet || s.trade == nil {
		return ErrNotAllowed
	}
	s.hideAffordances()
	if !s.trade.Allowed() {
		s.setMessage("Sorry, I can't sell anything to a novice like you. Come back later.")
		return s.returnToIdle(ctx)
	}
	s.state = StateTradeBuy
	s.setMessage("Here is everything I can offer you.")
	s.showAffordances(ActionLeave)
	return nil
}

// Sell applies the same gate and lays out the player's unequipped
// items for SelectSell.
func (s *Session) Sell(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateTradeMeet || s.trade == nil {
		return ErrNotAllowed
	}
	s.hideAffordances()
	if !s.trade.Allowed() {
		s.setMessage("Your trinkets don't interest me. Come back when you have more experience.")
		return s.returnToIdle(ctx)
	}
	s.state = StateTradeSell
	s.setMessage("What would you like to sell me, friend?")
	s.showAffordances(ActionLeave)
	return nil
}

// SelectBuy attempts to purchase stock entry i. Either outcome ends
// the encounter.
func (s *Session) SelectBuy(ctx context.Context, i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateTradeBuy || s.trade == nil {
		return ErrNotAllowed
	}
	outcome, err := s.trade.Buy(i)
	if err != nil {
		return err
	}
	s.hideAffordances()
	if outcome == BuyAccepted {
		s.setMessage("Here's your weapon, friend. Come back whenever you like!")
	} else {
		s.setMessage("Sorry, too expensive for you! See you around.")
	}
	return s.returnToIdle(ctx)
}

// SelectSell sells inventory entry i and ends the encounter.
func (s *Session) SelectSell(ctx context.Context, i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateTradeSell || s.trade == nil {
		return ErrNotAllowed
	}
	sold, err := s.trade.Sell(i)
	if err != nil {
		return err
	}
	s.hideAffordances()
	s.setMessage(fmt.Sprintf("A fine %s. Pleasure doing business!", sold.Name))
	return s.returnToIdle(ctx)
}

// Leave walks away from the trader without transacting. Teardown is
// identical to a completed transaction.
func (s *Session) Leave(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateTradeMeet, StateTradeBuy, StateTradeSell:
	default:
		return ErrNotAllowed
	}
	s.hideAffordances()
	s.setMessage("Farewell, " + traderName + ".")
	return s.returnToIdle(ctx)
}

// Save pushes the current player through the gateway. A transport
// failure is logged and aborts the save; player state is never rolled
// back or touched.
func (s *Session) Save(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil || s.gateway == nil {
		return "", ErrNotAllowed
	}
	id, err := s.gateway.Save(ctx, name, s.player.Snapshot())
	if err != nil {
		log.Printf("save %q: %v", name, err)
		return "", err
	}
	s.setMessage("The game has been saved.")
	return id, nil
}

// Load replaces the session's player with a persisted one. A failed
// load leaves whatever was there before untouched.
func (s *Session) Load(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gateway == nil {
		return ErrNotAllowed
	}
	snap, err := s.gateway.Load(ctx, name)
	if err != nil {
		log.Printf("load %q: %v", name, err)
		return err
	}
	s.player = RestorePlayer(snap)
	s.monster, s.trade = nil, nil
	s.victory = false
	s.state = StateIdle
	s.setMessage("Good to see you again, " + snap.Name + "!")
	s.publish(PlayerChanged{Player: s.player.Snapshot()})
	s.showAffordances(ActionNext)
	return nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *Session) Victory() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.victory
}

// PlayerSnapshot returns a copy of the player, or false before Start.
func (s *Session) PlayerSnapshot() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil {
		return Snapshot{}, false
	}
	return s.player.Snapshot(), true
}

// Affordances returns the currently visible action set.
func (s *Session) Affordances() []Affordance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Affordance(nil), s.visible...)
}

// Stock lists the trader's wares while a buy list is up.
func (s *Session) Stock() []StockItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateTradeBuy || s.trade == nil {
		return nil
	}
	return s.trade.Stock()
}

// Sellable lists the player's sellable items while a sell list is up.
func (s *Session) Sellable() []SellOffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateTradeSell || s.trade == nil {
		return nil
	}
	return s.trade.Sellable()
}

// Journey returns every narrative line so far, in order.
func (s *Session) Journey() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.journey...)
}

// returnToIdle tears down the active encounter, waits out the travel
// delay, and re-opens the loop. Runs after reward/penalty application,
// never inside it.
func (s *Session) returnToIdle(ctx context.Context) error {
	s.monster, s.trade = nil, nil
	if err := s.wait(ctx, s.TravelDelay); err != nil {
		return err
	}
	s.state = StateIdle
	s.publish(PlayerChanged{Player: s.player.Snapshot()})
	s.showAffordances(ActionNext)
	return nil
}

// endGame runs session teardown: terminal message, fixed display
// delay, then the Ended state.
func (s *Session) endGame(ctx context.Context, victory bool) error {
	s.monster, s.trade = nil, nil
	s.victory = victory
	if victory {
		s.setMessage("You have reached 50 experience points. Your legend is made!")
	} else {
		s.setMessage("You have been defeated!")
	}
	if err := s.wait(ctx, s.EndDelay); err != nil {
		return err
	}
	s.state = StateEnded
	s.publish(SessionEnded{Victory: victory})
	return nil
}

func (s *Session) setMessage(m string) {
	s.message = m
	s.journey = append(s.journey, m)
	s.publish(MessageChanged{Text: m})
}

func (s *Session) hideAffordances() {
	s.visible = nil
	s.publish(AffordancesChanged{})
}

func (s *Session) showAffordances(a ...Affordance) {
	s.visible = a
	s.publish(AffordancesChanged{Visible: append([]Affordance(nil), a...)})
}

func (s *Session) publish(e Event) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

func (s *Session) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
