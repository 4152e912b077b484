package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mohamadjaafar/recipe-management/internal/models"
)

func (s *Server) HandleCreateMealPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var plan models.MealPlan
	if !decodeJSON(w, r, &plan) {
		return
	}
	if plan.Name == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Name is required", ErrorCode: "MISSING_NAME"})
		return
	}
	if len(plan.Meals) == 0 {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Meals are required", ErrorCode: "MISSING_MEALS"})
		return
	}
	plan.UserID = userID

	created, err := s.store.MealPlans.Create(r.Context(), plan)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) HandleListMealPlans(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	plans, err := s.store.MealPlans.List(r.Context(), userID)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, plans)
}

func (s *Server) HandleDeleteMealPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	planID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid meal plan ID"})
		return
	}

	if err := s.store.MealPlans.Delete(r.Context(), planID, userID); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
