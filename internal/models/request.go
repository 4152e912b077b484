package models

// Difficulty values accepted on generation requests. "any" leaves the choice
// to the model.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyAny    = "any"
)

// GenerationRequest describes one recipe generation call. Constructed per
// request, never persisted. Only Ingredients is required; unset optional
// fields are omitted from the rendered prompt entirely.
type GenerationRequest struct {
	Ingredients string `json:"ingredients"`
	Cuisine     string `json:"cuisine,omitempty"`
	Dietary     string `json:"dietary,omitempty"`
	Servings    int    `json:"servings,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
}

// RecipeRef is the slice of a saved recipe the meal plan prompt needs.
type RecipeRef struct {
	Title       string `json:"title"`
	CuisineType string `json:"cuisine_type,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
}

// MealPlanRequest describes one meal plan generation call. Days must be
// 3, 5 or 7.
type MealPlanRequest struct {
	Recipes     []RecipeRef `json:"recipes"`
	Preferences string      `json:"preferences,omitempty"`
	Days        int         `json:"days"`
}

// NutritionRequest describes one nutrition estimation call.
type NutritionRequest struct {
	Ingredients []IngredientLine `json:"ingredients"`
	Servings    int              `json:"servings"`
}

// SubstitutionRequest describes one substitution suggestion call. The
// response is conversational free text, not structured.
type SubstitutionRequest struct {
	Ingredient string `json:"ingredient"`
	Recipe     string `json:"recipe"`
}
