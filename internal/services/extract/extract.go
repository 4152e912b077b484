// Package extract turns free-form model output into typed domain objects.
//
// The pipeline is linear and one-shot: locate the widest brace-delimited
// region in the raw text, parse it as generic JSON, check the target shape's
// required keys, then decode into the typed draft. No retries happen here;
// a caller that wants another attempt re-invokes the whole generation
// pipeline. Every function is a pure function of its input.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/mohamadjaafar/recipe-management/internal/models"
)

// Shape declares the required keys of an extraction target. Keys not listed
// are accepted and ignored, which keeps the contract forward-compatible with
// whatever extra fields a model decides to emit.
type Shape struct {
	Name     string
	Required []string
}

// RecipeShape is the target shape for recipe generation. Only the keys the
// UI genuinely needs are required; everything else degrades gracefully.
var RecipeShape = Shape{
	Name:     "recipe",
	Required: []string{"title", "instructions"},
}

// NutritionShape is the fixed five-key nutrition estimate.
var NutritionShape = Shape{
	Name:     "nutrition",
	Required: []string{"calories", "protein", "carbs", "fat", "fiber"},
}

// DayNames is the fixed week order meal plans are built on. Requested plans
// cover a prefix of this list (3, 5 or 7 days).
var DayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// MealPlanShape returns the target shape for a plan of the given length.
// Each requested day name is a required key.
func MealPlanShape(days int) Shape {
	if days > len(DayNames) {
		days = len(DayNames)
	}
	return Shape{
		Name:     "meal plan",
		Required: DayNames[:days],
	}
}

// JSONRegion returns the widest brace-delimited substring of raw: from the
// first '{' to the last '}'. This is a heuristic, not a parser; it tolerates
// models that wrap JSON in prose or code fences, and it can over-capture
// when a response contains two separate JSON blocks. That trade-off matches
// observed model behavior and is kept deliberately.
//
// An opening brace with no closing brace still marks an attempted JSON
// region; the region runs to the end of the string so the parse stage
// reports what is wrong with it.
func JSONRegion(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(raw, '}')
	if end < start {
		return raw[start:], true
	}
	return raw[start : end+1], true
}

// Object runs the generic pipeline: region, parse, required-key check.
// It returns the parsed object so typed extractors can decode it further.
func Object(raw string, shape Shape) (map[string]json.RawMessage, error) {
	region, ok := JSONRegion(raw)
	if !ok {
		return nil, &Error{Kind: KindNoJSONFound, Shape: shape.Name}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(region), &obj); err != nil {
		return nil, &Error{Kind: KindMalformedJSON, Shape: shape.Name, Err: err}
	}

	for _, key := range shape.Required {
		if _, present := obj[key]; !present {
			return nil, &Error{Kind: KindSchemaMismatch, Shape: shape.Name, MissingKey: key}
		}
	}

	return obj, nil
}

// Recipe extracts a RecipeDraft from raw model output. Values are passed
// through as the model produced them; a difficulty outside the enum or an
// implausible prep time is preserved rather than rejected, since wrong
// output about food is better shown to the user than silently dropped.
func Recipe(raw string) (*models.RecipeDraft, error) {
	region, _ := JSONRegion(raw)

	if _, err := Object(raw, RecipeShape); err != nil {
		return nil, err
	}

	var draft models.RecipeDraft
	if err := json.Unmarshal([]byte(region), &draft); err != nil {
		return nil, mismatchFromDecode(RecipeShape, err)
	}
	return &draft, nil
}

// MealPlan extracts a plan covering the first `days` day names. Extra days
// in the response are ignored; a missing requested day is a schema mismatch.
// The returned draft always contains every requested day, in week order.
func MealPlan(raw string, days int) (*models.MealPlanDraft, error) {
	shape := MealPlanShape(days)

	obj, err := Object(raw, shape)
	if err != nil {
		return nil, err
	}

	plan := &models.MealPlanDraft{
		Days:  shape.Required,
		Meals: make(map[string]models.DayMeals, len(shape.Required)),
	}
	for _, day := range shape.Required {
		var meals models.DayMeals
		if err := json.Unmarshal(obj[day], &meals); err != nil {
			return nil, &Error{Kind: KindSchemaMismatch, Shape: shape.Name, MissingKey: day, Err: err}
		}
		plan.Meals[day] = meals
	}
	return plan, nil
}

// Nutrition extracts the five-key estimate. Numeric fields delivered as
// quoted strings are coerced; see the flexible scalar types in models.
func Nutrition(raw string) (*models.NutritionEstimate, error) {
	region, _ := JSONRegion(raw)

	if _, err := Object(raw, NutritionShape); err != nil {
		return nil, err
	}

	var est models.NutritionEstimate
	if err := json.Unmarshal([]byte(region), &est); err != nil {
		return nil, mismatchFromDecode(NutritionShape, err)
	}
	return &est, nil
}

// mismatchFromDecode classifies a typed-decode failure as a schema mismatch
// naming the offending field when the decoder can tell us which one it was.
func mismatchFromDecode(shape Shape, err error) *Error {
	ee := &Error{Kind: KindSchemaMismatch, Shape: shape.Name, Err: err}
	if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
		ee.MissingKey = typeErr.Field
	}
	return ee
}
