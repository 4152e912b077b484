package api

import (
	"net/http"
	"time"

	"github.com/mohamadjaafar/recipe-management/internal/middleware"
	"github.com/mohamadjaafar/recipe-management/internal/models"
	"github.com/mohamadjaafar/recipe-management/internal/validation"
)

const substitutionCacheTTL = 24 * time.Hour

// HandleGenerateRecipe builds a recipe draft from the user's ingredients.
func (s *Server) HandleGenerateRecipe(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.GenerationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateGenerationRequest(req); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	draft, err := s.generator.GenerateRecipe(r.Context(), req)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, draft)
}

// HandleMealPlan builds a weekly meal plan from the user's saved recipes.
func (s *Server) HandleMealPlan(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.MealPlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateMealPlanRequest(req); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	plan, err := s.generator.PlanMeals(r.Context(), req)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, plan)
}

// HandleNutrition estimates per-serving nutrition for a list of ingredients.
func (s *Server) HandleNutrition(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.NutritionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateNutritionRequest(req); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	estimate, err := s.generator.EstimateNutrition(r.Context(), req)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, estimate)
}

type substitutionResponse struct {
	Suggestion string `json:"suggestion"`
	Cached     bool   `json:"cached"`
}

// HandleSubstitution suggests substitutes for an ingredient. The provider's
// prose answer is returned as-is; identical requests are served from cache.
func (s *Server) HandleSubstitution(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserID(r.Context()); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.SubstitutionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validation.ValidateSubstitutionRequest(req); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	if s.subCache != nil {
		if cached := s.subCache.Get(r.Context(), req.Ingredient, req.Recipe); cached != "" {
			respondJSON(w, http.StatusOK, substitutionResponse{Suggestion: cached, Cached: true})
			return
		}
	}

	suggestion, err := s.generator.SuggestSubstitution(r.Context(), req)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	if s.subCache != nil {
		s.subCache.Set(r.Context(), req.Ingredient, req.Recipe, suggestion, substitutionCacheTTL)
	}

	respondJSON(w, http.StatusOK, substitutionResponse{Suggestion: suggestion})
}
