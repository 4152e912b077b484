package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/mohamadjaafar/recipe-management/internal/cache"
	"github.com/mohamadjaafar/recipe-management/internal/config"
	apperrors "github.com/mohamadjaafar/recipe-management/internal/errors"
	"github.com/mohamadjaafar/recipe-management/internal/logger"
	"github.com/mohamadjaafar/recipe-management/internal/models"
	"github.com/mohamadjaafar/recipe-management/internal/services/extract"
	"github.com/mohamadjaafar/recipe-management/internal/store"
)

// Generator produces AI content for the four generation endpoints.
type Generator interface {
	GenerateRecipe(ctx context.Context, req models.GenerationRequest) (*models.RecipeDraft, error)
	PlanMeals(ctx context.Context, req models.MealPlanRequest) (*models.MealPlanDraft, error)
	EstimateNutrition(ctx context.Context, req models.NutritionRequest) (*models.NutritionEstimate, error)
	SuggestSubstitution(ctx context.Context, req models.SubstitutionRequest) (string, error)
}

// Searcher finds recipes by free-text query.
type Searcher interface {
	Search(ctx context.Context, userID uuid.UUID, query string, limit int) ([]store.SearchResult, error)
}

type Server struct {
	cfg         *config.Config
	store       *store.Store
	generator   Generator
	search      Searcher
	subCache    *cache.SubstitutionCache
	asynqClient *asynq.Client
}

func NewServer(cfg *config.Config, st *store.Store, generator Generator, searcher Searcher, subCache *cache.SubstitutionCache, asynqClient *asynq.Client) *Server {
	return &Server{
		cfg:         cfg,
		store:       st,
		generator:   generator,
		search:      searcher,
		subCache:    subCache,
		asynqClient: asynqClient,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code,omitempty"`
}

// respondError maps an error to an HTTP response. Generation and extraction
// failures are collapsed into one generic message so callers never see raw
// provider output; the specific kind is logged instead.
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		slog.Error("Request failed", "error", err, logger.WithTraceContext(ctx))
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeGeneration, apperrors.ErrorTypeExtraction:
		logGenerationFailure(ctx, appErr)
		respondJSON(w, http.StatusBadGateway, errorResponse{
			Error: "Recipe generation failed, please try again",
		})
	default:
		respondJSON(w, appErr.StatusCode, errorResponse{
			Error:     appErr.Message,
			ErrorCode: appErr.ErrorCode,
		})
	}
}

const maxDiagnosticLen = 200

// truncateDiagnostic bounds a diagnostic without splitting a multi-byte rune;
// model output is arbitrary UTF-8.
func truncateDiagnostic(s string) string {
	if len(s) <= maxDiagnosticLen {
		return s
	}
	cut := maxDiagnosticLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// logGenerationFailure records the failure kind plus a bounded diagnostic.
func logGenerationFailure(ctx context.Context, appErr *apperrors.AppError) {
	kind := "provider_error"
	diagnostic := appErr.Message
	if extErr, ok := extract.AsError(appErr); ok {
		kind = string(extErr.Kind)
		diagnostic = extErr.Error()
	}
	diagnostic = truncateDiagnostic(diagnostic)
	slog.Error("Generation failed",
		"kind", kind,
		"code", appErr.ErrorCode,
		"diagnostic", diagnostic,
		logger.WithTraceContext(ctx))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return false
	}
	return true
}
