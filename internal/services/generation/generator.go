package generation

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/mohamadjaafar/recipe-management/internal/errors"
	"github.com/mohamadjaafar/recipe-management/internal/metrics"
	"github.com/mohamadjaafar/recipe-management/internal/models"
	"github.com/mohamadjaafar/recipe-management/internal/services/ai"
	"github.com/mohamadjaafar/recipe-management/internal/services/extract"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Generator ties the prompt builders, a text-generation provider and the
// response extractor into the four user-facing tasks. It holds no state
// between calls: each task is one prompt, one provider round trip and at
// most one extraction. Retrying means calling the method again.
type Generator struct {
	provider Provider
}

// NewGenerator creates a Generator using the given provider
func NewGenerator(provider Provider) *Generator {
	return &Generator{provider: provider}
}

// GenerateRecipe produces a recipe draft from available ingredients and
// optional constraints.
func (g *Generator) GenerateRecipe(ctx context.Context, req models.GenerationRequest) (*models.RecipeDraft, error) {
	raw, err := g.generate(ctx, "recipe", ai.BuildRecipePrompt(req))
	if err != nil {
		return nil, err
	}

	draft, err := extract.Recipe(raw)
	if err != nil {
		return nil, g.extractionFailed(ctx, "recipe", err)
	}
	return draft, nil
}

// PlanMeals produces a meal plan draft covering req.Days days.
func (g *Generator) PlanMeals(ctx context.Context, req models.MealPlanRequest) (*models.MealPlanDraft, error) {
	raw, err := g.generate(ctx, "meal_plan", ai.BuildMealPlanPrompt(req))
	if err != nil {
		return nil, err
	}

	plan, err := extract.MealPlan(raw, req.Days)
	if err != nil {
		return nil, g.extractionFailed(ctx, "meal_plan", err)
	}
	return plan, nil
}

// EstimateNutrition produces a per-serving nutrition estimate.
func (g *Generator) EstimateNutrition(ctx context.Context, req models.NutritionRequest) (*models.NutritionEstimate, error) {
	raw, err := g.generate(ctx, "nutrition", ai.BuildNutritionPrompt(req))
	if err != nil {
		return nil, err
	}

	est, err := extract.Nutrition(raw)
	if err != nil {
		return nil, g.extractionFailed(ctx, "nutrition", err)
	}
	return est, nil
}

// SuggestSubstitution returns the provider's answer verbatim. The extractor
// is deliberately not invoked: this task is conversational, no JSON is
// requested and none is parsed out.
func (g *Generator) SuggestSubstitution(ctx context.Context, req models.SubstitutionRequest) (string, error) {
	return g.generate(ctx, "substitution", ai.BuildSubstitutionPrompt(req))
}

func (g *Generator) generate(ctx context.Context, task, prompt string) (string, error) {
	metrics.GenerationRequestsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("task", task),
	))

	raw, err := g.provider.Generate(ctx, prompt)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return "", err
		}
		return "", apperrors.NewGenerationError("text generation failed", "PROVIDER_FAILED", err)
	}
	return raw, nil
}

// extractionFailed records the failure kind and wraps the extractor's typed
// error. The raw text diagnostic stays inside the wrapped error; callers log
// it bounded rather than echoing model output to users.
func (g *Generator) extractionFailed(ctx context.Context, task string, err error) error {
	kind := extract.KindOf(err)
	metrics.ExtractionFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("task", task),
		attribute.String("kind", string(kind)),
	))
	code := "EXTRACTION_FAILED"
	if kind != "" {
		code = strings.ToUpper(string(kind))
	}
	return apperrors.NewExtractionError("could not extract "+task+" from model response", code, err)
}
