package api

import (
	"encoding/json"
	"net/http"

	"answerforge/internal/history"
	"github.com/go-chi/chi/v5"
)

// handleListHistory lists completed runs, newest first.
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.hist.List()
	if err != nil {
		jsonError(w, "failed to list history: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"entries": entries})
}

// handleDeleteHistory tombstones one entry and removes its output document.
func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")
	ok, err := s.hist.Delete(entryID)
	if err != nil {
		jsonError(w, "failed to delete entry: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		jsonError(w, "entry not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": entryID})
}

// handleClearHistory removes all entries and their output documents.
func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	n, err := s.hist.Clear()
	if err != nil {
		jsonError(w, "failed to clear history: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"cleared": n})
}
