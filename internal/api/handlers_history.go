package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	v := sessionFrom(r).Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"entries":  v.History,
		"capacity": v.Capacity,
	})
}

// handleView puts a history entry back on display along with its inputs.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	entry, err := s.ctrl.View(sessionFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.Remove(sessionFrom(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	s.ctrl.Clear(sessionFrom(r))
	w.WriteHeader(http.StatusNoContent)
}
