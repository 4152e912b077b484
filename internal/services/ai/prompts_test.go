package ai

import (
	"strings"
	"testing"

	"github.com/mohamadjaafar/recipe-management/internal/models"
)

func TestBuildRecipePrompt(t *testing.T) {
	tests := []struct {
		name     string
		req      models.GenerationRequest
		contains []string
		omits    []string
	}{
		{
			name: "ingredients only",
			req:  models.GenerationRequest{Ingredients: "chicken, rice, broccoli"},
			contains: []string{
				"chicken, rice, broccoli",
				"Return ONLY a valid JSON object",
				`"title"`,
				`"ingredients"`,
				`"instructions"`,
				"pantry staples",
			},
			omits: []string{
				"Cuisine style:",
				"Dietary requirements:",
				"Servings:",
				"Difficulty level:",
			},
		},
		{
			name: "all fields set",
			req: models.GenerationRequest{
				Ingredients: "tofu, noodles",
				Cuisine:     "Thai",
				Dietary:     "vegan",
				Servings:    4,
				Difficulty:  "medium",
			},
			contains: []string{
				"tofu, noodles",
				"Cuisine style: Thai.",
				"Dietary requirements: vegan.",
				"Servings: 4.",
				"Difficulty level: medium.",
			},
		},
		{
			name: "partial fields",
			req: models.GenerationRequest{
				Ingredients: "eggs",
				Cuisine:     "French",
			},
			contains: []string{"Cuisine style: French."},
			omits:    []string{"Dietary requirements:", "Servings:", "Difficulty level:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildRecipePrompt(tt.req)

			for _, s := range tt.contains {
				if !strings.Contains(prompt, s) {
					t.Errorf("prompt missing %q", s)
				}
			}
			for _, s := range tt.omits {
				if strings.Contains(prompt, s) {
					t.Errorf("prompt should not contain %q", s)
				}
			}
		})
	}
}

func TestBuildRecipePrompt_Deterministic(t *testing.T) {
	req := models.GenerationRequest{Ingredients: "salmon", Cuisine: "Japanese"}
	if BuildRecipePrompt(req) != BuildRecipePrompt(req) {
		t.Error("prompt rendering should be deterministic")
	}
}

func TestBuildMealPlanPrompt(t *testing.T) {
	req := models.MealPlanRequest{
		Days: 5,
		Recipes: []models.RecipeRef{
			{Title: "Garlic Butter Pasta", CuisineType: "Italian", Difficulty: "easy"},
			{Title: "Beef Stew"},
		},
		Preferences: "no seafood",
	}
	prompt := BuildMealPlanPrompt(req)

	for _, s := range []string{
		"5-day meal plan",
		"- Garlic Butter Pasta (Italian, easy difficulty)",
		"- Beef Stew (various, any difficulty)",
		"Preferences/restrictions: no seafood",
		`"Monday"`,
		"starting Monday",
	} {
		if !strings.Contains(prompt, s) {
			t.Errorf("prompt missing %q", s)
		}
	}
}

func TestBuildMealPlanPrompt_NoPreferences(t *testing.T) {
	req := models.MealPlanRequest{Days: 3, Recipes: []models.RecipeRef{{Title: "Tacos"}}}
	prompt := BuildMealPlanPrompt(req)

	if strings.Contains(prompt, "Preferences/restrictions:") {
		t.Error("unset preferences should not render a clause")
	}
	if !strings.Contains(prompt, "3-day meal plan") {
		t.Error("prompt missing day count")
	}
}

func TestBuildNutritionPrompt(t *testing.T) {
	req := models.NutritionRequest{
		Servings: 4,
		Ingredients: []models.IngredientLine{
			{Name: "chicken breast", Amount: "500", Unit: "g"},
			{Name: "", Amount: "1", Unit: "cup"}, // nameless lines are dropped
			{Name: "olive oil", Amount: "2", Unit: "tbsp"},
		},
	}
	prompt := BuildNutritionPrompt(req)

	if !strings.Contains(prompt, "500 g chicken breast, 2 tbsp olive oil") {
		t.Errorf("unexpected ingredient list in prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "4 servings") {
		t.Error("prompt missing serving count")
	}
	if !strings.Contains(prompt, `calories (number)`) {
		t.Error("prompt missing nutrition shape")
	}
}

func TestBuildSubstitutionPrompt(t *testing.T) {
	prompt := BuildSubstitutionPrompt(models.SubstitutionRequest{
		Ingredient: "buttermilk",
		Recipe:     "Pancakes",
	})

	if !strings.Contains(prompt, `"buttermilk"`) || !strings.Contains(prompt, `"Pancakes"`) {
		t.Errorf("prompt missing inputs:\n%s", prompt)
	}
	// Conversational path: no JSON shape is requested.
	if strings.Contains(prompt, "JSON") {
		t.Error("substitution prompt should not request JSON")
	}
}
