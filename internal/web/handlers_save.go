package web

import (
	"encoding/json"
	"log"
	"net/http"

	"questwalk/internal/game"
)

// handleSave persists the current session under the submitted name.
// A gateway failure leaves the session untouched and reports the
// error; nothing is retried.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
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
	name := r.FormValue("name")
	if name == "" {
		http.Error(w, "save name required", http.StatusBadRequest)
		return
	}
	if _, err := sess.Save(r.Context(), name); err != nil {
		http.Error(w, "save failed", http.StatusBadGateway)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLoad restores a saved session, creating the browser session on
// the fly if the player loads before starting a fresh game. A failed
// load leaves whatever session existed before untouched.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
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
		http.Error(w, "save name required", http.StatusBadRequest)
		return
	}

	id := s.sessionID(r)
	var sess *game.Session
	if id != "" {
		if got, ok, err := s.Sessions.Get(ctx, id); err == nil && ok {
			sess = got
		}
	}
	fresh := sess == nil
	if fresh {
		id = s.Sessions.NewID()
		sess = s.NewSession()
	}

	if err := sess.Load(ctx, name); err != nil {
		http.Error(w, "load failed", http.StatusBadGateway)
		return
	}
	if fresh {
		s.setCookie(w, id)
		if err := s.Sessions.Put(ctx, id, sess); err != nil {
			http.Error(w, "failed to save state", http.StatusInternalServerError)
			return
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleSaves lists saved sessions as JSON for the load picker.
func (s *Server) handleSaves(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	saves, err := s.Gateway.List(r.Context())
	if err != nil {
		log.Printf("list saves: %v", err)
		http.Error(w, "listing failed", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(saves); err != nil {
		log.Printf("write saves: %v", err)
	}
}
