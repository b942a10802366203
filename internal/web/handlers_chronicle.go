package web

import (
	"net/http"

	"questwalk/internal/chronicle"
)

// handleChronicle serves a printable PDF summary of the session so
// far: hero sheet, inventory, and the journey log.
func (s *Server) handleChronicle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, ok := s.currentSession(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	snap, hasPlayer := sess.PlayerSnapshot()
	if !hasPlayer {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	pdf, err := chronicle.Generate(snap, sess.Journey(), sess.Victory())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="chronicle.pdf"`)
	if _, err := w.Write(pdf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
