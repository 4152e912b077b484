package validation

import (
	"fmt"
	"strings"

	"github.com/mohamadjaafar/recipe-management/internal/errors"
	"github.com/mohamadjaafar/recipe-management/internal/models"
)

const (
	MaxServings        = 20
	MaxIngredientsLen  = 2000
	MaxPreferencesLen  = 500
	MaxIngredientCount = 100
)

var validDifficulties = map[string]bool{
	"":                      true,
	models.DifficultyAny:    true,
	models.DifficultyEasy:   true,
	models.DifficultyMedium: true,
	models.DifficultyHard:   true,
}

var validPlanLengths = map[int]bool{3: true, 5: true, 7: true}

// ValidateGenerationRequest checks a recipe generation request before any
// provider call is made.
func ValidateGenerationRequest(req models.GenerationRequest) *errors.AppError {
	if strings.TrimSpace(req.Ingredients) == "" {
		return errors.NewValidationError("ingredients are required", "MISSING_INGREDIENTS", "")
	}
	if len(req.Ingredients) > MaxIngredientsLen {
		return errors.NewValidationError(
			fmt.Sprintf("ingredients must be at most %d characters", MaxIngredientsLen),
			"INGREDIENTS_TOO_LONG", "")
	}
	if req.Servings < 0 || req.Servings > MaxServings {
		return errors.NewValidationError(
			fmt.Sprintf("servings must be between 1 and %d", MaxServings),
			"INVALID_SERVINGS", "")
	}
	if !validDifficulties[strings.ToLower(req.Difficulty)] {
		return errors.NewValidationError(
			"difficulty must be one of: any, easy, medium, hard",
			"INVALID_DIFFICULTY", "")
	}
	return nil
}

// ValidateMealPlanRequest checks a meal plan request. Plans cover 3, 5 or 7
// days and need at least one recipe to draw from.
func ValidateMealPlanRequest(req models.MealPlanRequest) *errors.AppError {
	if len(req.Recipes) == 0 {
		return errors.NewValidationError("at least one recipe is required", "MISSING_RECIPES", "")
	}
	if !validPlanLengths[req.Days] {
		return errors.NewValidationError("days must be 3, 5 or 7", "INVALID_PLAN_LENGTH", "")
	}
	for i, r := range req.Recipes {
		if strings.TrimSpace(r.Title) == "" {
			return errors.NewValidationError(
				fmt.Sprintf("recipe %d has no title", i+1),
				"MISSING_RECIPE_TITLE", "")
		}
	}
	if len(req.Preferences) > MaxPreferencesLen {
		return errors.NewValidationError(
			fmt.Sprintf("preferences must be at most %d characters", MaxPreferencesLen),
			"PREFERENCES_TOO_LONG", "")
	}
	return nil
}

// ValidateNutritionRequest checks a nutrition estimation request.
func ValidateNutritionRequest(req models.NutritionRequest) *errors.AppError {
	named := 0
	for _, ing := range req.Ingredients {
		if strings.TrimSpace(ing.Name) != "" {
			named++
		}
	}
	if named == 0 {
		return errors.NewValidationError("at least one named ingredient is required", "MISSING_INGREDIENTS", "")
	}
	if len(req.Ingredients) > MaxIngredientCount {
		return errors.NewValidationError(
			fmt.Sprintf("at most %d ingredients are supported", MaxIngredientCount),
			"TOO_MANY_INGREDIENTS", "")
	}
	if req.Servings < 0 || req.Servings > MaxServings {
		return errors.NewValidationError(
			fmt.Sprintf("servings must be between 1 and %d", MaxServings),
			"INVALID_SERVINGS", "")
	}
	return nil
}

// ValidateSubstitutionRequest checks a substitution request.
func ValidateSubstitutionRequest(req models.SubstitutionRequest) *errors.AppError {
	if strings.TrimSpace(req.Ingredient) == "" {
		return errors.NewValidationError("ingredient is required", "MISSING_INGREDIENT", "")
	}
	if strings.TrimSpace(req.Recipe) == "" {
		return errors.NewValidationError("recipe is required", "MISSING_RECIPE", "")
	}
	return nil
}
