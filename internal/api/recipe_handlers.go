package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apperrors "github.com/mohamadjaafar/recipe-management/internal/errors"
	"github.com/mohamadjaafar/recipe-management/internal/middleware"
	"github.com/mohamadjaafar/recipe-management/internal/models"
	"github.com/mohamadjaafar/recipe-management/internal/worker"
)

func (s *Server) userID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) recipeID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid recipe ID"})
		return uuid.Nil, false
	}
	return id, true
}

func listParams(r *http.Request) (limit, offset int) {
	limit = 20
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// HandleCreateRecipe saves a recipe. When it arrives without nutrition info,
// estimation is queued in the background; the embedding task always runs.
func (s *Server) HandleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var recipe models.Recipe
	if !decodeJSON(w, r, &recipe) {
		return
	}
	if recipe.Title == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Title is required", ErrorCode: "MISSING_TITLE"})
		return
	}
	recipe.UserID = userID

	created, err := s.store.Recipes.Create(r.Context(), recipe)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	s.enqueueRecipeTasks(created)

	respondJSON(w, http.StatusCreated, created)
}

// enqueueRecipeTasks schedules background work after a save. Failures only
// log; the save itself already succeeded.
func (s *Server) enqueueRecipeTasks(recipe *models.Recipe) {
	if s.asynqClient == nil {
		return
	}

	if recipe.Nutrition == nil && len(recipe.Ingredients) > 0 {
		task, err := worker.NewEstimateNutritionTask(worker.EstimateNutritionPayload{RecipeID: recipe.ID.String()})
		if err == nil {
			_, err = s.asynqClient.Enqueue(task)
		}
		if err != nil {
			slog.Warn("Failed to enqueue nutrition task", "recipe_id", recipe.ID, "error", err)
		}
	}

	task, err := worker.NewGenerateEmbeddingTask(worker.GenerateEmbeddingPayload{RecipeID: recipe.ID.String()})
	if err == nil {
		_, err = s.asynqClient.Enqueue(task)
	}
	if err != nil {
		slog.Warn("Failed to enqueue embedding task", "recipe_id", recipe.ID, "error", err)
	}
}

func (s *Server) HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	limit, offset := listParams(r)
	recipes, err := s.store.Recipes.List(r.Context(), userID, limit, offset)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, recipes)
}

func (s *Server) HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	recipeID, ok := s.recipeID(w, r)
	if !ok {
		return
	}

	recipe, err := s.store.Recipes.Get(r.Context(), recipeID, userID)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, recipe)
}

func (s *Server) HandleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	recipeID, ok := s.recipeID(w, r)
	if !ok {
		return
	}

	var recipe models.Recipe
	if !decodeJSON(w, r, &recipe) {
		return
	}
	recipe.ID = recipeID
	recipe.UserID = userID

	updated, err := s.store.Recipes.Update(r.Context(), recipe)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) HandleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	recipeID, ok := s.recipeID(w, r)
	if !ok {
		return
	}

	if err := s.store.Recipes.Delete(r.Context(), recipeID, userID); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type shareRequest struct {
	Recipient string `json:"recipient"`
}

type shareResponse struct {
	Shared     bool   `json:"shared"`
	MadePublic bool   `json:"made_public"`
	Message    string `json:"message"`
}

// HandleShareRecipe shares a recipe with another user by username or email.
// When the recipient has no account the recipe is made public instead, so
// the link still works for them.
func (s *Server) HandleShareRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	recipeID, ok := s.recipeID(w, r)
	if !ok {
		return
	}

	var req shareRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Recipient == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Recipient is required", ErrorCode: "MISSING_RECIPIENT"})
		return
	}

	// Only the owner may share; Get with the owner's ID also confirms the
	// recipe exists.
	recipe, err := s.store.Recipes.Get(r.Context(), recipeID, userID)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}
	if recipe.UserID != userID {
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "Only the owner can share a recipe"})
		return
	}

	recipientID, err := s.store.Profiles.FindRecipient(r.Context(), req.Recipient)
	if err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Type != apperrors.ErrorTypeNotFound {
			respondError(r.Context(), w, err)
			return
		}
		// No account for that recipient: fall back to making the recipe
		// public.
		if err := s.store.Recipes.SetPublic(r.Context(), recipeID, userID, true); err != nil {
			respondError(r.Context(), w, err)
			return
		}
		respondJSON(w, http.StatusOK, shareResponse{
			MadePublic: true,
			Message:    "Recipient has no account yet; the recipe was made public instead",
		})
		return
	}

	if _, err := s.store.Shares.Create(r.Context(), recipeID, userID, recipientID); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, shareResponse{
		Shared:  true,
		Message: "Recipe shared",
	})
}

// HandleListShared returns recipes shared with the user plus public recipes
// from others.
func (s *Server) HandleListShared(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	limit, offset := listParams(r)
	recipes, err := s.store.Recipes.ListVisible(r.Context(), userID, limit, offset)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(w, http.StatusOK, recipes)
}
