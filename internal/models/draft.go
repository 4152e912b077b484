package models

import (
	"encoding/json"
	"strconv"
)

// StringOrNumber can unmarshal from a JSON string or number. Models sometimes
// quote amounts ("2") and sometimes emit bare numbers (2); both are accepted.
type StringOrNumber string

func (s *StringOrNumber) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = StringOrNumber(str)
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = StringOrNumber(strconv.FormatFloat(num, 'f', -1, 64))
	return nil
}

// FlexInt accepts an integer delivered either as a JSON number or as a
// numeric string. Non-numeric strings decode to zero rather than failing the
// whole draft.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = 0
		return nil
	}
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*n = FlexInt(i)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = FlexInt(int(f))
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := strconv.Atoi(str)
	if err != nil {
		*n = 0
		return nil
	}
	*n = FlexInt(parsed)
	return nil
}

// FlexFloat accepts a number delivered either as a JSON number or as a
// numeric string.
type FlexFloat float64

func (n *FlexFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = FlexFloat(f)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := strconv.ParseFloat(str, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = FlexFloat(parsed)
	return nil
}

// IngredientLine is one entry of a recipe's ingredient list.
type IngredientLine struct {
	Name   string         `json:"name"`
	Amount StringOrNumber `json:"amount"`
	Unit   string         `json:"unit"`
}

// RecipeDraft is the validated output of recipe generation before the user
// saves it. Field values are passed through as the model produced them;
// difficulty is not checked against the enum.
type RecipeDraft struct {
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	CuisineType     string           `json:"cuisine_type"`
	PrepTimeMinutes FlexInt          `json:"prep_time"`
	CookTimeMinutes FlexInt          `json:"cook_time"`
	Servings        FlexInt          `json:"servings"`
	Difficulty      string           `json:"difficulty"`
	Ingredients     []IngredientLine `json:"ingredients"`
	Instructions    string           `json:"instructions"`
	Tags            []string         `json:"tags"`
}

// DayMeals holds the three meal slots for one day of a plan.
type DayMeals struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

// MealPlanDraft is a generated plan for 3, 5 or 7 days starting Monday.
// Days preserves the requested order; every requested day is present.
type MealPlanDraft struct {
	Days  []string            `json:"days"`
	Meals map[string]DayMeals `json:"meals"`
}

// NutritionEstimate is an approximate per-serving breakdown. Calories is
// numeric; the other four carry a magnitude+unit token such as "25g".
type NutritionEstimate struct {
	Calories FlexFloat      `json:"calories"`
	Protein  StringOrNumber `json:"protein"`
	Carbs    StringOrNumber `json:"carbs"`
	Fat      StringOrNumber `json:"fat"`
	Fiber    StringOrNumber `json:"fiber"`
}
