package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/mohamadjaafar/recipe-management/internal/models"
	"github.com/mohamadjaafar/recipe-management/internal/utils"
)

// NutritionEstimator produces a nutrition estimate for a set of ingredients.
type NutritionEstimator interface {
	EstimateNutrition(ctx context.Context, req models.NutritionRequest) (*models.NutritionEstimate, error)
}

// EmbeddingClient generates embeddings for search.
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// RecipeStore is the slice of recipe persistence the processor needs.
type RecipeStore interface {
	GetAny(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	UpdateNutrition(ctx context.Context, id uuid.UUID, nutrition *models.NutritionEstimate) error
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error
}

// ShareStore is the slice of share persistence the processor needs.
type ShareStore interface {
	DeleteOrphans(ctx context.Context) (int64, error)
}

type RecipeProcessor struct {
	recipes     RecipeStore
	shares      ShareStore
	estimator   NutritionEstimator
	embeddings  EmbeddingClient
	broadcaster *ProgressBroadcaster
	metrics     *WorkerMetrics
}

func NewRecipeProcessor(
	recipes RecipeStore,
	shares ShareStore,
	estimator NutritionEstimator,
	embeddings EmbeddingClient,
	broadcaster *ProgressBroadcaster,
	workerMetrics *WorkerMetrics,
) *RecipeProcessor {
	return &RecipeProcessor{
		recipes:     recipes,
		shares:      shares,
		estimator:   estimator,
		embeddings:  embeddings,
		broadcaster: broadcaster,
		metrics:     workerMetrics,
	}
}

// HandleEstimateNutrition fills in nutrition info for a recipe saved without
// it. Provider hiccups are retried with backoff before asynq's own retry
// kicks in.
func (p *RecipeProcessor) HandleEstimateNutrition(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload EstimateNutritionPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	recipeID, err := uuid.Parse(payload.RecipeID)
	if err != nil {
		return fmt.Errorf("invalid recipe ID: %w", err)
	}

	recipe, err := p.recipes.GetAny(ctx, recipeID)
	if err != nil {
		return fmt.Errorf("recipe not found: %w", err)
	}
	if recipe.Nutrition != nil {
		slog.Info("Recipe already has nutrition info", "recipe_id", payload.RecipeID)
		return nil
	}

	req := models.NutritionRequest{
		Servings:    recipe.Servings,
		Ingredients: recipe.Ingredients,
	}

	estimate, err := utils.WithRetry(ctx, func(ctx context.Context) (*models.NutritionEstimate, error) {
		return p.estimator.EstimateNutrition(ctx, req)
	}, utils.ProviderRetryConfig())
	if err != nil {
		p.metrics.RecordJob(ctx, TypeEstimateNutrition, "failed", time.Since(start).Seconds())
		return fmt.Errorf("nutrition estimation failed: %w", err)
	}

	if err := p.recipes.UpdateNutrition(ctx, recipeID, estimate); err != nil {
		p.metrics.RecordJob(ctx, TypeEstimateNutrition, "failed", time.Since(start).Seconds())
		return fmt.Errorf("failed to save nutrition: %w", err)
	}

	if p.broadcaster != nil {
		p.broadcaster.Broadcast(recipe.UserID.String(), RecipeUpdate{
			RecipeID: payload.RecipeID,
			Event:    "nutrition",
			Message:  "Nutrition info is ready",
		})
	}

	p.metrics.RecordJob(ctx, TypeEstimateNutrition, "completed", time.Since(start).Seconds())
	slog.Info("Nutrition estimated", "recipe_id", payload.RecipeID)
	return nil
}

// HandleGenerateEmbedding computes and stores the search embedding for a
// recipe.
func (p *RecipeProcessor) HandleGenerateEmbedding(ctx context.Context, t *asynq.Task) error {
	if p.embeddings == nil {
		slog.Info("Embedding client not configured, skipping task")
		return nil
	}

	start := time.Now()

	var payload GenerateEmbeddingPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	recipeID, err := uuid.Parse(payload.RecipeID)
	if err != nil {
		return fmt.Errorf("invalid recipe ID: %w", err)
	}

	recipe, err := p.recipes.GetAny(ctx, recipeID)
	if err != nil {
		return fmt.Errorf("recipe not found: %w", err)
	}

	var text strings.Builder
	text.WriteString(recipe.Title)
	if recipe.Description != "" {
		text.WriteString(" ")
		text.WriteString(recipe.Description)
	}
	for _, ing := range recipe.Ingredients {
		text.WriteString(" ")
		text.WriteString(ing.Name)
	}

	embedding, err := p.embeddings.GenerateEmbedding(ctx, text.String())
	if err != nil {
		p.metrics.RecordJob(ctx, TypeGenerateEmbedding, "failed", time.Since(start).Seconds())
		return fmt.Errorf("failed to generate embedding: %w", err)
	}

	if err := p.recipes.UpdateEmbedding(ctx, recipeID, embedding); err != nil {
		p.metrics.RecordJob(ctx, TypeGenerateEmbedding, "failed", time.Since(start).Seconds())
		return fmt.Errorf("failed to update embedding: %w", err)
	}

	p.metrics.RecordJob(ctx, TypeGenerateEmbedding, "completed", time.Since(start).Seconds())
	slog.Info("Embedding generated", "recipe_id", payload.RecipeID)
	return nil
}

// HandleCleanupShares removes shares pointing at deleted recipes.
func (p *RecipeProcessor) HandleCleanupShares(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	removed, err := p.shares.DeleteOrphans(ctx)
	if err != nil {
		p.metrics.RecordJob(ctx, TypeCleanupShares, "failed", time.Since(start).Seconds())
		return fmt.Errorf("share cleanup failed: %w", err)
	}

	p.metrics.RecordJob(ctx, TypeCleanupShares, "completed", time.Since(start).Seconds())
	slog.Info("Share cleanup finished", "removed", removed)
	return nil
}
