package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipe status values. Stored as-is; the API validates on write.
const (
	StatusFavorite   = "favorite"
	StatusToTry      = "to_try"
	StatusMadeBefore = "made_before"
)

// Recipe is a saved recipe owned by a user. A RecipeDraft becomes a Recipe
// when the user saves it, at which point it gains an identity and owner.
type Recipe struct {
	ID           uuid.UUID          `json:"id"`
	UserID       uuid.UUID          `json:"user_id"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Ingredients  []IngredientLine   `json:"ingredients"`
	Instructions string             `json:"instructions"`
	CuisineType  string             `json:"cuisine_type"`
	PrepTime     int                `json:"prep_time"`
	CookTime     int                `json:"cook_time"`
	Servings     int                `json:"servings"`
	Difficulty   string             `json:"difficulty"`
	Status       string             `json:"status"`
	Tags         []string           `json:"tags"`
	ImageURL     string             `json:"image_url,omitempty"`
	IsPublic     bool               `json:"is_public"`
	Nutrition    *NutritionEstimate `json:"nutritional_info,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Profile is the public-facing slice of a user account.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecipeShare records one recipe shared from one user to another.
type RecipeShare struct {
	ID         uuid.UUID `json:"id"`
	RecipeID   uuid.UUID `json:"recipe_id"`
	SharedBy   uuid.UUID `json:"shared_by"`
	SharedWith uuid.UUID `json:"shared_with"`
	CreatedAt  time.Time `json:"created_at"`
}

// MealPlan is a saved weekly plan.
type MealPlan struct {
	ID        uuid.UUID           `json:"id"`
	UserID    uuid.UUID           `json:"user_id"`
	Name      string              `json:"name"`
	WeekStart time.Time           `json:"week_start"`
	Meals     map[string]DayMeals `json:"meals"`
	CreatedAt time.Time           `json:"created_at"`
}
