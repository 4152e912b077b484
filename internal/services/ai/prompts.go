// Package ai renders the prompt strings sent to text-generation providers.
//
// Every builder is a pure function of its request: no side effects, no error
// returns. Callers validate requests before rendering (see
// internal/validation); a builder never refuses input.
package ai

import (
	"fmt"
	"strings"

	"github.com/mohamadjaafar/recipe-management/internal/models"
	"github.com/mohamadjaafar/recipe-management/internal/services/extract"
)

const recipeShapeSection = `Return ONLY a valid JSON object with this exact structure:
{
  "title": "Recipe Name",
  "description": "Brief appetizing description",
  "cuisine_type": "Cuisine type",
  "prep_time": 15,
  "cook_time": 30,
  "servings": 4,
  "difficulty": "easy",
  "ingredients": [{"name": "ingredient", "amount": "2", "unit": "cups"}],
  "instructions": "Step 1: ...\nStep 2: ...\nStep 3: ...",
  "tags": ["tag1", "tag2"]
}

Do not include any prose or code fencing around the JSON.`

const recipeClosingSection = `Make it delicious and practical. Only include ingredients from the provided list plus basic pantry staples (salt, pepper, oil, water).`

// BuildRecipePrompt renders the recipe generation prompt. Optional fields
// that are unset do not appear in the output at all; there is never a
// "Cuisine style:" clause with a blank value.
func BuildRecipePrompt(req models.GenerationRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Create a recipe using these available ingredients: %s.\n", req.Ingredients)

	if req.Cuisine != "" {
		fmt.Fprintf(&sb, "Cuisine style: %s.\n", req.Cuisine)
	}
	if req.Dietary != "" {
		fmt.Fprintf(&sb, "Dietary requirements: %s.\n", req.Dietary)
	}
	if req.Servings > 0 {
		fmt.Fprintf(&sb, "Servings: %d.\n", req.Servings)
	}
	if req.Difficulty != "" {
		fmt.Fprintf(&sb, "Difficulty level: %s.\n", req.Difficulty)
	}

	sb.WriteString("\n")
	sb.WriteString(recipeShapeSection)
	sb.WriteString("\n\n")
	sb.WriteString(recipeClosingSection)

	return sb.String()
}

const mealPlanShapeSection = `Return ONLY a valid JSON object with this structure:
{
  "Monday": {"breakfast": "recipe or suggestion", "lunch": "recipe name from list", "dinner": "recipe name from list"},
  "Tuesday": {...},
  ...
}`

// BuildMealPlanPrompt renders the meal plan prompt for req.Days days
// starting Monday. Lunch and dinner are asked to reference titles from the
// provided recipe list; that instruction is advisory, not enforced on the
// way back in.
func BuildMealPlanPrompt(req models.MealPlanRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Create a %d-day meal plan using these recipes:\n", req.Days)
	for _, r := range req.Recipes {
		cuisine := r.CuisineType
		if cuisine == "" {
			cuisine = "various"
		}
		difficulty := r.Difficulty
		if difficulty == "" {
			difficulty = "any"
		}
		fmt.Fprintf(&sb, "- %s (%s, %s difficulty)\n", r.Title, cuisine, difficulty)
	}

	if req.Preferences != "" {
		fmt.Fprintf(&sb, "\nPreferences/restrictions: %s\n", req.Preferences)
	}

	sb.WriteString("\n")
	sb.WriteString(mealPlanShapeSection)
	sb.WriteString("\n\n")
	sb.WriteString("Use the recipe names from the list for lunch and dinner when possible. For breakfast suggest simple options.\n")
	fmt.Fprintf(&sb, "Plan for %d days starting %s. Include variety and balance.", req.Days, extract.DayNames[0])

	return sb.String()
}

const nutritionShapeSection = `Return ONLY a valid JSON object with these exact keys: calories (number), protein (string like "25g"), carbs (string like "30g"), fat (string like "10g"), fiber (string like "5g").
No explanation, just the JSON.`

// BuildNutritionPrompt renders the per-serving nutrition estimation prompt.
// Ingredient lines without a name are skipped.
func BuildNutritionPrompt(req models.NutritionRequest) string {
	lines := make([]string, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if ing.Name == "" {
			continue
		}
		lines = append(lines, strings.TrimSpace(fmt.Sprintf("%s %s %s", ing.Amount, ing.Unit, ing.Name)))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Estimate the nutritional info per serving for a recipe with %d servings containing: %s.\n\n",
		req.Servings, strings.Join(lines, ", "))
	sb.WriteString(nutritionShapeSection)

	return sb.String()
}

// BuildSubstitutionPrompt renders the substitution prompt. This is the one
// conversational path: no JSON shape is requested and the provider's answer
// is returned to the user verbatim.
func BuildSubstitutionPrompt(req models.SubstitutionRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Suggest 2-3 substitutes for %q in a recipe called %q.\n", req.Ingredient, req.Recipe)
	sb.WriteString(`Be concise. Format: "Use X (ratio), or Y (ratio). Note: brief tip."`)
	return sb.String()
}
