package web

import (
	"context"
	"html/template"
	"net/http"

	"questwalk/internal/game"
	"questwalk/internal/save"
	"questwalk/internal/session"
)

const cookieName = "questwalk_sid"

// Server adapts HTTP requests to session operations. It holds no game
// logic: every button maps to exactly one orchestrator call, and the
// rendered affordance set is whatever the session last published.
type Server struct {
	Sessions session.Store[*game.Session]
	Gateway  *save.Client
	Tmpl     *template.Template

	// NewSession builds a configured session; wiring (catalog, gateway,
	// delays) is the caller's business.
	NewSession func() *game.Session
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/start", s.handleStart)

	mux.HandleFunc("/next", s.action((*game.Session).Next))
	mux.HandleFunc("/attack", s.action((*game.Session).Attack))
	mux.HandleFunc("/flee", s.action((*game.Session).Flee))
	mux.HandleFunc("/buy", s.action((*game.Session).Buy))
	mux.HandleFunc("/sell", s.action((*game.Session).Sell))
	mux.HandleFunc("/leave", s.action((*game.Session).Leave))
	mux.HandleFunc("/buy/select", s.selectAction((*game.Session).SelectBuy))
	mux.HandleFunc("/sell/select", s.selectAction((*game.Session).SelectSell))

	mux.HandleFunc("/save", s.handleSave)
	mux.HandleFunc("/load", s.handleLoad)
	mux.HandleFunc("/saves", s.handleSaves)
	mux.HandleFunc("/chronicle", s.handleChronicle)
	mux.HandleFunc("/ws", s.handleWS)

	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.currentSession(r)
	vm := s.makeViewModel(sess)
	if err := s.Tmpl.ExecuteTemplate(w, "layout.html", vm); err != nil {
		http.Error(w, "failed to render template", http.StatusInternalServerError)
	}
}

// handleStart creates a fresh hero, replacing any finished session
// under the same cookie.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	name := r.FormValue("name")
	if name == "" {
		name = "hero"
	}

	id := s.sessionID(r)
	if id != "" {
		_ = s.Sessions.Delete(ctx, id)
	}
	id = s.Sessions.NewID()
	s.setCookie(w, id)

	sess := s.NewSession()
	sess.Start(name)
	if err := s.Sessions.Put(ctx, id, sess); err != nil {
		http.Error(w, "failed to save state", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// action wraps a parameterless session operation as a POST handler.
func (s *Server) action(op func(*game.Session, context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		sess, ok := s.currentSession(r)
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		if err := op(sess, r.Context()); err != nil {
			s.actionError(w, r, err)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// selectAction wraps an indexed session operation; the index comes
// from the "item" form field.
func (s *Server) selectAction(op func(*game.Session, context.Context, int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		sess, ok := s.currentSession(r)
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		i, err := parseIndex(r.FormValue("item"))
		if err != nil {
			http.Error(w, "bad item index", http.StatusBadRequest)
			return
		}
		if err := op(sess, r.Context(), i); err != nil {
			s.actionError(w, r, err)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *Server) actionError(w http.ResponseWriter, r *http.Request, err error) {
	// A wrong-state action means the UI raced a transition; bounce back
	// to the page, which renders the valid affordance set.
	if err == game.ErrNotAllowed {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func (s *Server) currentSession(r *http.Request) (*game.Session, bool) {
	id := s.sessionID(r)
	if id == "" {
		return nil, false
	}
	sess, ok, err := s.Sessions.Get(r.Context(), id)
	if err != nil || !ok {
		return nil, false
	}
	return sess, true
}

func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *Server) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
