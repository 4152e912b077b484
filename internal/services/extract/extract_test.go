package extract

import (
	"reflect"
	"testing"
)

const recipeJSON = `{
  "title": "Garlic Butter Pasta",
  "description": "Quick weeknight pasta",
  "cuisine_type": "Italian",
  "prep_time": 10,
  "cook_time": 15,
  "servings": 2,
  "difficulty": "easy",
  "ingredients": [{"name": "spaghetti", "amount": "200", "unit": "g"}],
  "instructions": "Step 1: Boil pasta.\nStep 2: Melt butter with garlic.",
  "tags": ["pasta", "quick"]
}`

func TestRecipe_PlainJSON(t *testing.T) {
	draft, err := Recipe(recipeJSON)
	if err != nil {
		t.Fatalf("Recipe() returned error: %v", err)
	}
	if draft.Title != "Garlic Butter Pasta" {
		t.Errorf("unexpected title: %q", draft.Title)
	}
	if len(draft.Ingredients) != 1 || draft.Ingredients[0].Name != "spaghetti" {
		t.Errorf("unexpected ingredients: %+v", draft.Ingredients)
	}
	if draft.PrepTimeMinutes != 10 || draft.CookTimeMinutes != 15 {
		t.Errorf("unexpected times: prep=%d cook=%d", draft.PrepTimeMinutes, draft.CookTimeMinutes)
	}
}

func TestRecipe_WrappedInProse(t *testing.T) {
	wrappers := []struct {
		name string
		raw  string
	}{
		{"prose", "Sure! Here is your recipe:\n" + recipeJSON + "\nEnjoy your meal!"},
		{"code fence", "```json\n" + recipeJSON + "\n```"},
		{"prose and fence", "Here you go:\n```json\n" + recipeJSON + "\n```\nLet me know if you want changes."},
	}

	want, err := Recipe(recipeJSON)
	if err != nil {
		t.Fatalf("baseline extraction failed: %v", err)
	}

	for _, tt := range wrappers {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Recipe(tt.raw)
			if err != nil {
				t.Fatalf("Recipe() returned error: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("wrapped extraction differs from baseline:\ngot  %+v\nwant %+v", got, want)
			}
		})
	}
}

func TestRecipe_NoJSONFound(t *testing.T) {
	for _, raw := range []string{"no braces here", "", "only a closing } brace"} {
		_, err := Recipe(raw)
		if KindOf(err) != KindNoJSONFound {
			t.Errorf("Recipe(%q): expected no_json_found, got %v", raw, err)
		}
	}
}

func TestRecipe_MalformedJSON(t *testing.T) {
	for _, raw := range []string{"{ invalid json }", "{ invalid json"} {
		_, err := Recipe(raw)
		if KindOf(err) != KindMalformedJSON {
			t.Fatalf("Recipe(%q): expected malformed_json, got %v", raw, err)
		}
		ee, _ := AsError(err)
		if ee.Err == nil {
			t.Errorf("Recipe(%q): malformed_json should carry the parser diagnostic", raw)
		}
	}
}

func TestJSONRegion_UnclosedBraceRunsToEnd(t *testing.T) {
	region, ok := JSONRegion(`prose { "title": "half a recipe`)
	if !ok {
		t.Fatal("expected a region for an unclosed brace")
	}
	if region != `{ "title": "half a recipe` {
		t.Errorf("unexpected region: %q", region)
	}
}

func TestRecipe_SchemaMismatch_NamesMissingKey(t *testing.T) {
	_, err := Recipe(`{"description": "ok"}`)
	if KindOf(err) != KindSchemaMismatch {
		t.Fatalf("expected schema_mismatch, got %v", err)
	}
	ee, _ := AsError(err)
	if ee.MissingKey != "title" {
		t.Errorf("expected missing key 'title', got %q", ee.MissingKey)
	}
}

func TestRecipe_PermissiveValues(t *testing.T) {
	// Out-of-enum difficulty and quoted numerics pass through; business rules
	// are not enforced here.
	raw := `{
	  "title": "Mystery Stew",
	  "instructions": "Step 1: Simmer.",
	  "difficulty": "impossible",
	  "prep_time": "45",
	  "servings": "6",
	  "ingredients": [{"name": "beef", "amount": 2, "unit": "lbs"}]
	}`
	draft, err := Recipe(raw)
	if err != nil {
		t.Fatalf("Recipe() returned error: %v", err)
	}
	if draft.Difficulty != "impossible" {
		t.Errorf("difficulty should pass through, got %q", draft.Difficulty)
	}
	if draft.PrepTimeMinutes != 45 {
		t.Errorf("quoted prep_time should coerce to 45, got %d", draft.PrepTimeMinutes)
	}
	if draft.Servings != 6 {
		t.Errorf("quoted servings should coerce to 6, got %d", draft.Servings)
	}
	if draft.Ingredients[0].Amount != "2" {
		t.Errorf("numeric amount should coerce to string, got %q", draft.Ingredients[0].Amount)
	}
}

func TestRecipe_ListFieldMustBeList(t *testing.T) {
	raw := `{"title": "T", "instructions": "I", "ingredients": "two cups of flour"}`
	_, err := Recipe(raw)
	if KindOf(err) != KindSchemaMismatch {
		t.Fatalf("expected schema_mismatch for non-list ingredients, got %v", err)
	}
}

func TestRecipe_UnknownKeysIgnored(t *testing.T) {
	raw := `{"title": "T", "instructions": "I", "chef_notes": "secret", "rating": 5}`
	draft, err := Recipe(raw)
	if err != nil {
		t.Fatalf("Recipe() returned error: %v", err)
	}
	if draft.Title != "T" {
		t.Errorf("unexpected title: %q", draft.Title)
	}
}

func TestRecipe_Idempotent(t *testing.T) {
	raw := "Here:\n" + recipeJSON
	first, err1 := Recipe(raw)
	second, err2 := Recipe(raw)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("two extractions of the same input should be equal")
	}
}

func TestMealPlan_ThreeDays(t *testing.T) {
	raw := `{
	  "Monday": {"breakfast": "Oatmeal", "lunch": "Garlic Butter Pasta", "dinner": "Beef Stew"},
	  "Tuesday": {"breakfast": "Toast", "lunch": "Leftover stew", "dinner": "Tacos"},
	  "Wednesday": {"breakfast": "Yogurt", "lunch": "Tacos", "dinner": "Stir fry"}
	}`
	plan, err := MealPlan(raw, 3)
	if err != nil {
		t.Fatalf("MealPlan() returned error: %v", err)
	}
	wantDays := []string{"Monday", "Tuesday", "Wednesday"}
	if !reflect.DeepEqual(plan.Days, wantDays) {
		t.Errorf("expected days %v in order, got %v", wantDays, plan.Days)
	}
	if len(plan.Meals) != 3 {
		t.Errorf("expected exactly 3 day entries, got %d", len(plan.Meals))
	}
	if plan.Meals["Monday"].Lunch != "Garlic Butter Pasta" {
		t.Errorf("unexpected Monday lunch: %q", plan.Meals["Monday"].Lunch)
	}
}

func TestMealPlan_MissingDay(t *testing.T) {
	raw := `{
	  "Monday": {"breakfast": "Oatmeal", "lunch": "Pasta", "dinner": "Stew"},
	  "Tuesday": {"breakfast": "Toast", "lunch": "Stew", "dinner": "Tacos"}
	}`
	_, err := MealPlan(raw, 3)
	if KindOf(err) != KindSchemaMismatch {
		t.Fatalf("expected schema_mismatch, got %v", err)
	}
	ee, _ := AsError(err)
	if ee.MissingKey != "Wednesday" {
		t.Errorf("expected missing key 'Wednesday', got %q", ee.MissingKey)
	}
}

func TestMealPlan_ExtraDaysIgnored(t *testing.T) {
	raw := `{
	  "Monday": {"breakfast": "A", "lunch": "B", "dinner": "C"},
	  "Tuesday": {"breakfast": "A", "lunch": "B", "dinner": "C"},
	  "Wednesday": {"breakfast": "A", "lunch": "B", "dinner": "C"},
	  "Thursday": {"breakfast": "A", "lunch": "B", "dinner": "C"}
	}`
	plan, err := MealPlan(raw, 3)
	if err != nil {
		t.Fatalf("MealPlan() returned error: %v", err)
	}
	if _, present := plan.Meals["Thursday"]; present {
		t.Error("unrequested day should not appear in the result")
	}
}

func TestMealPlan_MissingSlotIsPlaceholder(t *testing.T) {
	raw := `{
	  "Monday": {"lunch": "Pasta", "dinner": "Stew"},
	  "Tuesday": {"breakfast": "Toast", "lunch": "Stew", "dinner": "Tacos"},
	  "Wednesday": {"breakfast": "Yogurt", "lunch": "Tacos", "dinner": "Stir fry"}
	}`
	plan, err := MealPlan(raw, 3)
	if err != nil {
		t.Fatalf("MealPlan() returned error: %v", err)
	}
	// The day key must be present even when a slot is empty.
	if plan.Meals["Monday"].Breakfast != "" {
		t.Errorf("expected empty breakfast, got %q", plan.Meals["Monday"].Breakfast)
	}
	if plan.Meals["Monday"].Lunch != "Pasta" {
		t.Errorf("unexpected lunch: %q", plan.Meals["Monday"].Lunch)
	}
}

func TestNutrition(t *testing.T) {
	raw := "Based on the ingredients:\n" + `{"calories": 420, "protein": "25g", "carbs": "30g", "fat": "10g", "fiber": "5g"}`
	est, err := Nutrition(raw)
	if err != nil {
		t.Fatalf("Nutrition() returned error: %v", err)
	}
	if est.Calories != 420 {
		t.Errorf("expected 420 calories, got %v", est.Calories)
	}
	if est.Protein != "25g" {
		t.Errorf("unexpected protein: %q", est.Protein)
	}
}

func TestNutrition_CaloriesAsString(t *testing.T) {
	raw := `{"calories": "420", "protein": "25g", "carbs": "30g", "fat": "10g", "fiber": "5g"}`
	est, err := Nutrition(raw)
	if err != nil {
		t.Fatalf("Nutrition() returned error: %v", err)
	}
	if est.Calories != 420 {
		t.Errorf("quoted calories should coerce to 420, got %v", est.Calories)
	}
}

func TestNutrition_MissingKey(t *testing.T) {
	raw := `{"calories": 420, "protein": "25g", "carbs": "30g", "fat": "10g"}`
	_, err := Nutrition(raw)
	ee, ok := AsError(err)
	if !ok || ee.Kind != KindSchemaMismatch || ee.MissingKey != "fiber" {
		t.Errorf("expected schema_mismatch on 'fiber', got %v", err)
	}
}

func TestJSONRegion_WidestSpan(t *testing.T) {
	// Two blocks collapse into one over-capturing span. Accepted heuristic.
	raw := `prefix {"a": 1} middle {"b": 2} suffix`
	region, ok := JSONRegion(raw)
	if !ok {
		t.Fatal("expected a region")
	}
	if region != `{"a": 1} middle {"b": 2}` {
		t.Errorf("unexpected region: %q", region)
	}
}

func TestMealPlanShape_ClampsToWeek(t *testing.T) {
	shape := MealPlanShape(10)
	if len(shape.Required) != 7 {
		t.Errorf("expected 7 days, got %d", len(shape.Required))
	}
}
