package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dgallion1/batnadoc/internal/form"
	"github.com/go-chi/chi/v5"
)

const maxRequestBody = 1 << 20

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"fields": form.Fields})
}

type generateRequest struct {
	Fields map[string]string `json:"fields"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := s.ctrl.Submit(r.Context(), sessionFrom(r), req.Fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	v := sessionFrom(r).Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"current":    v.Current,
		"form":       v.Form,
		"generating": v.Busy,
	})
}

func (s *Server) handleNewDocument(w http.ResponseWriter, r *http.Request) {
	s.ctrl.NewDocument(sessionFrom(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	d, err := s.ctrl.Export(sessionFrom(r), format, r.URL.Query().Get("entry"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(d.Data)))
	w.Write(d.Data)
}
