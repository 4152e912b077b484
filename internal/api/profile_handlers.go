package api

import (
	"net/http"

	"github.com/mohamadjaafar/recipe-management/internal/models"
)

func (s *Server) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	profile, err := s.store.Profiles.Get(r.Context(), userID)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

func (s *Server) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var profile models.Profile
	if !decodeJSON(w, r, &profile) {
		return
	}
	if profile.Username == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Username is required", ErrorCode: "MISSING_USERNAME"})
		return
	}
	profile.ID = userID

	updated, err := s.store.Profiles.Upsert(r.Context(), profile)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}
