// Package api serves the save-store wire protocol:
//
//	GET  <endpoint>?list=0     -> JSON array of save summaries
//	GET  <endpoint>?load=<name> -> flat record, numerics string-encoded
//	POST <endpoint>            -> {"id": <assigned id>}
//
// The load response keeps the historical transport shape (string
// numerics, "equiped" flags) so existing clients keep working.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"questwalk/internal/save"
	"questwalk/internal/store"
)

// Handler exposes a save store over HTTP at a single endpoint.
type Handler struct {
	Store *store.Store
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		if q.Has("list") {
			h.handleList(w, r)
			return
		}
		if name := q.Get("load"); name != "" {
			h.handleLoad(w, r, name)
			return
		}
		http.Error(w, "missing list or load parameter", http.StatusBadRequest)
	case http.MethodPost:
		h.handleSave(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	saves, err := h.Store.List(r.Context())
	if err != nil {
		log.Printf("list saves: %v", err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}
	out := make([]save.Summary, 0, len(saves))
	for _, s := range saves {
		out = append(out, save.Summary{ID: s.ID, Name: s.Name})
	}
	writeJSON(w, out)
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request, name string) {
	raw, err := h.Store.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "no such save", http.StatusNotFound)
			return
		}
		log.Printf("load %q: %v", name, err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}
	var rec save.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		log.Printf("load %q: corrupt record: %v", name, err)
		http.Error(w, "corrupt save record", http.StatusInternalServerError)
		return
	}
	writeJSON(w, rec.Wire())
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var rec save.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "bad save payload", http.StatusBadRequest)
		return
	}
	if rec.Name == "" {
		http.Error(w, "save name required", http.StatusBadRequest)
		return
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		http.Error(w, "bad save payload", http.StatusBadRequest)
		return
	}
	id, err := h.Store.Put(r.Context(), rec.Name, raw)
	if err != nil {
		log.Printf("save %q: %v", rec.Name, err)
		http.Error(w, "storage failure", http.StatusInternalServerError)
		return
	}
	// The id travels as a JSON number, matching the legacy backend.
	writeJSON(w, map[string]json.Number{"id": json.Number(id)})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}
