package web

import (
	"fmt"
	"strconv"

	"questwalk/internal/game"
)

// ViewModel is everything the page template needs for one render.
type ViewModel struct {
	HasPlayer bool
	Player    game.Snapshot
	Message   string
	Ended     bool
	Victory   bool

	// Actions maps affordance names to visibility; the template shows
	// exactly the buttons the session enabled.
	Actions map[string]bool

	Stock    []game.StockItem
	Sellable []game.SellOffer
}

func (s *Server) makeViewModel(sess *game.Session) ViewModel {
	if sess == nil {
		return ViewModel{Actions: map[string]bool{}}
	}
	snap, hasPlayer := sess.PlayerSnapshot()
	actions := map[string]bool{}
	for _, a := range sess.Affordances() {
		actions[string(a)] = true
	}
	return ViewModel{
		HasPlayer: hasPlayer,
		Player:    snap,
		Message:   sess.Message(),
		Ended:     sess.State() == game.StateEnded,
		Victory:   sess.Victory(),
		Actions:   actions,
		Stock:     sess.Stock(),
		Sellable:  sess.Sellable(),
	}
}

func parseIndex(v string) (int, error) {
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("bad index %q: %w", v, err)
	}
	if i < 0 {
		return 0, fmt.Errorf("bad index %d", i)
	}
	return i, nil
}
