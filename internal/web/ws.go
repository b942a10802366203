package web

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"questwalk/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// wsFrame is one event pushed to the browser.
type wsFrame struct {
	Type    string      `json:"type"`
	Text    string      `json:"text,omitempty"`
	Visible []string    `json:"visible,omitempty"`
	Player  *playerView `json:"player,omitempty"`
	Victory bool        `json:"victory,omitempty"`
}

type playerView struct {
	Name      string     `json:"name"`
	Life      int        `json:"life"`
	XP        int        `json:"xp"`
	Strength  int        `json:"str"`
	Stamina   int        `json:"sta"`
	Gold      int        `json:"gold"`
	Weapon    string     `json:"weapon"`
	Inventory []itemView `json:"inventory"`
}

type itemView struct {
	Weapon   string `json:"weapon"`
	Equipped bool   `json:"equipped"`
}

// wsClient serializes writes; bus events arrive from whichever request
// goroutine triggered them.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) send(f wsFrame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(f)
}

// handleWS streams the session's bus to the browser so multi-step
// sequences (first strike, counter strike) render in publish order.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(r)
	if !ok {
		http.Error(w, "no session", http.StatusNotFound)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade: %v", err)
		return
	}
	client := &wsClient{conn: conn}

	cancel := sess.Bus().Subscribe(func(ev game.Event) {
		if err := client.send(frameFor(ev)); err != nil {
			log.Printf("ws send: %v", err)
		}
	})
	defer cancel()
	defer conn.Close()

	// Drain reads until the peer goes away; the client never sends
	// anything meaningful.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func frameFor(ev game.Event) wsFrame {
	switch e := ev.(type) {
	case game.MessageChanged:
		return wsFrame{Type: "message", Text: e.Text}
	case game.AffordancesChanged:
		visible := make([]string, 0, len(e.Visible))
		for _, a := range e.Visible {
			visible = append(visible, string(a))
		}
		return wsFrame{Type: "affordances", Visible: visible}
	case game.PlayerChanged:
		return wsFrame{Type: "player", Player: viewOf(e.Player)}
	case game.SessionEnded:
		return wsFrame{Type: "ended", Victory: e.Victory}
	default:
		return wsFrame{Type: "unknown"}
	}
}

func viewOf(snap game.Snapshot) *playerView {
	v := &playerView{
		Name:     snap.Name,
		Life:     snap.Life,
		XP:       snap.XP,
		Strength: snap.Strength,
		Stamina:  snap.Stamina,
		Gold:     snap.Gold,
		Weapon:   snap.Weapon.Name,
	}
	for _, item := range snap.Inventory {
		v.Inventory = append(v.Inventory, itemView{Weapon: item.Weapon.Name, Equipped: item.Equipped})
	}
	return v
}
