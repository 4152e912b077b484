package store

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store bundles the per-table repositories over one connection pool.
type Store struct {
	Recipes   *RecipeStore
	MealPlans *MealPlanStore
	Shares    *ShareStore
	Profiles  *ProfileStore
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{
		Recipes:   NewRecipeStore(pool),
		MealPlans: NewMealPlanStore(pool),
		Shares:    NewShareStore(pool),
		Profiles:  NewProfileStore(pool),
	}
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func pgText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
