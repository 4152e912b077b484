package api

import (
	"net/http"
	"strconv"
)

// HandleSearch finds recipes by free-text query. Semantic when an embedding
// client is configured, name matching otherwise.
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "q is required", ErrorCode: "MISSING_QUERY"})
		return
	}

	limit := 10
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > 50 {
		limit = 50
	}

	results, err := s.search.Search(r.Context(), userID, query, limit)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, results)
}
