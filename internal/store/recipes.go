package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	apperrors "github.com/mohamadjaafar/recipe-management/internal/errors"
	"github.com/mohamadjaafar/recipe-management/internal/models"
)

// RecipeStore persists recipes. Every read and write is scoped to an owner
// except where visibility rules (public, shared) widen it explicitly.
type RecipeStore struct {
	db *pgxpool.Pool
}

func NewRecipeStore(db *pgxpool.Pool) *RecipeStore {
	return &RecipeStore{db: db}
}

const recipeColumns = `id, user_id, title, description, ingredients, instructions,
	cuisine_type, prep_time, cook_time, servings, difficulty, status, tags,
	image_url, is_public, nutrition, created_at, updated_at`

func (s *RecipeStore) Create(ctx context.Context, recipe models.Recipe) (*models.Recipe, error) {
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("marshal ingredients: %w", err)
	}
	nutrition, err := marshalNutrition(recipe.Nutrition)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO recipes (user_id, title, description, ingredients, instructions,
			cuisine_type, prep_time, cook_time, servings, difficulty, status, tags,
			image_url, is_public, nutrition)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+recipeColumns,
		pgUUID(recipe.UserID), recipe.Title, pgText(recipe.Description), ingredients,
		recipe.Instructions, pgText(recipe.CuisineType), recipe.PrepTime, recipe.CookTime,
		recipe.Servings, pgText(recipe.Difficulty), pgText(recipe.Status), recipe.Tags,
		pgText(recipe.ImageURL), recipe.IsPublic, nutrition)

	created, err := scanRecipe(row)
	if err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return created, nil
}

// Get returns a recipe the user may see: their own, a public one, or one
// shared with them.
func (s *RecipeStore) Get(ctx context.Context, id, userID uuid.UUID) (*models.Recipe, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes
		WHERE id = $1
		  AND (user_id = $2
		       OR is_public
		       OR EXISTS (SELECT 1 FROM recipe_shares
		                  WHERE recipe_id = recipes.id AND shared_with = $2))`,
		pgUUID(id), pgUUID(userID))

	recipe, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("recipe not found", "RECIPE_NOT_FOUND", "")
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return recipe, nil
}

// GetAny loads a recipe without visibility checks. Only background tasks
// use this; request handlers go through Get.
func (s *RecipeStore) GetAny(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = $1`,
		pgUUID(id))

	recipe, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("recipe not found", "RECIPE_NOT_FOUND", "")
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return recipe, nil
}

func (s *RecipeStore) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Recipe, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		pgUUID(userID), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	return scanRecipes(rows)
}

func (s *RecipeStore) Update(ctx context.Context, recipe models.Recipe) (*models.Recipe, error) {
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("marshal ingredients: %w", err)
	}
	nutrition, err := marshalNutrition(recipe.Nutrition)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(ctx, `
		UPDATE recipes
		SET title = $3, description = $4, ingredients = $5, instructions = $6,
		    cuisine_type = $7, prep_time = $8, cook_time = $9, servings = $10,
		    difficulty = $11, status = $12, tags = $13, image_url = $14,
		    is_public = $15, nutrition = $16, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+recipeColumns,
		pgUUID(recipe.ID), pgUUID(recipe.UserID), recipe.Title, pgText(recipe.Description),
		ingredients, recipe.Instructions, pgText(recipe.CuisineType), recipe.PrepTime,
		recipe.CookTime, recipe.Servings, pgText(recipe.Difficulty), pgText(recipe.Status),
		recipe.Tags, pgText(recipe.ImageURL), recipe.IsPublic, nutrition)

	updated, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("recipe not found", "RECIPE_NOT_FOUND", "")
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return updated, nil
}

func (s *RecipeStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM recipes WHERE id = $1 AND user_id = $2`,
		pgUUID(id), pgUUID(userID))
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("recipe not found", "RECIPE_NOT_FOUND", "")
	}
	return nil
}

// SetPublic flips a recipe's public flag. Used by the share flow when the
// recipient has no account.
func (s *RecipeStore) SetPublic(ctx context.Context, id, userID uuid.UUID, public bool) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE recipes SET is_public = $3, updated_at = now()
		 WHERE id = $1 AND user_id = $2`,
		pgUUID(id), pgUUID(userID), public)
	if err != nil {
		return fmt.Errorf("set recipe public: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("recipe not found", "RECIPE_NOT_FOUND", "")
	}
	return nil
}

// UpdateNutrition fills in the nutrition column. The background worker is
// the only caller, so there is no owner parameter.
func (s *RecipeStore) UpdateNutrition(ctx context.Context, id uuid.UUID, nutrition *models.NutritionEstimate) error {
	payload, err := marshalNutrition(nutrition)
	if err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx,
		`UPDATE recipes SET nutrition = $2, updated_at = now() WHERE id = $1`,
		pgUUID(id), payload)
	if err != nil {
		return fmt.Errorf("update nutrition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("recipe not found", "RECIPE_NOT_FOUND", "")
	}
	return nil
}

// UpdateEmbedding stores the search embedding for a recipe.
func (s *RecipeStore) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE recipes SET embedding = $2 WHERE id = $1`,
		pgUUID(id), pgvector.NewVector(embedding))
	if err != nil {
		return fmt.Errorf("update embedding: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("recipe not found", "RECIPE_NOT_FOUND", "")
	}
	return nil
}

// SearchResult is one hit from a recipe search.
type SearchResult struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Similarity  float64   `json:"similarity,omitempty"`
}

// SearchSemantic ranks the user's visible recipes by embedding distance.
func (s *RecipeStore) SearchSemantic(ctx context.Context, userID uuid.UUID, embedding []float32, limit int) ([]SearchResult, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, description, 1 - (embedding <=> $2) AS similarity
		FROM recipes
		WHERE embedding IS NOT NULL
		  AND (user_id = $1 OR is_public)
		ORDER BY embedding <=> $2
		LIMIT $3`,
		pgUUID(userID), pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	defer rows.Close()

	return scanSearchResults(rows)
}

// SearchByName is the fallback when no embedding client is configured.
func (s *RecipeStore) SearchByName(ctx context.Context, userID uuid.UUID, query string, limit int) ([]SearchResult, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, description, 0 AS similarity
		FROM recipes
		WHERE title ILIKE '%' || $2 || '%'
		  AND (user_id = $1 OR is_public)
		ORDER BY created_at DESC
		LIMIT $3`,
		pgUUID(userID), query, limit)
	if err != nil {
		return nil, fmt.Errorf("search recipes by name: %w", err)
	}
	defer rows.Close()

	return scanSearchResults(rows)
}

// ListVisible returns recipes shared with the user plus public recipes from
// other users.
func (s *RecipeStore) ListVisible(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Recipe, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes
		WHERE user_id <> $1
		  AND (is_public
		       OR EXISTS (SELECT 1 FROM recipe_shares
		                  WHERE recipe_id = recipes.id AND shared_with = $1))
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		pgUUID(userID), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list shared recipes: %w", err)
	}
	defer rows.Close()

	return scanRecipes(rows)
}

func marshalNutrition(n *models.NutritionEstimate) ([]byte, error) {
	if n == nil {
		return nil, nil
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("marshal nutrition: %w", err)
	}
	return payload, nil
}

func scanRecipe(row pgx.Row) (*models.Recipe, error) {
	var (
		r           models.Recipe
		id, userID  pgtype.UUID
		description pgtype.Text
		cuisine     pgtype.Text
		difficulty  pgtype.Text
		status      pgtype.Text
		imageURL    pgtype.Text
		ingredients []byte
		nutrition   []byte
	)
	err := row.Scan(&id, &userID, &r.Title, &description, &ingredients, &r.Instructions,
		&cuisine, &r.PrepTime, &r.CookTime, &r.Servings, &difficulty, &status, &r.Tags,
		&imageURL, &r.IsPublic, &nutrition, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}

	r.ID = uuid.UUID(id.Bytes)
	r.UserID = uuid.UUID(userID.Bytes)
	r.Description = description.String
	r.CuisineType = cuisine.String
	r.Difficulty = difficulty.String
	r.Status = status.String
	r.ImageURL = imageURL.String

	if len(ingredients) > 0 {
		if err := json.Unmarshal(ingredients, &r.Ingredients); err != nil {
			return nil, fmt.Errorf("unmarshal ingredients: %w", err)
		}
	}
	if len(nutrition) > 0 {
		var n models.NutritionEstimate
		if err := json.Unmarshal(nutrition, &n); err != nil {
			return nil, fmt.Errorf("unmarshal nutrition: %w", err)
		}
		r.Nutrition = &n
	}
	return &r, nil
}

func scanRecipes(rows pgx.Rows) ([]*models.Recipe, error) {
	recipes := make([]*models.Recipe, 0)
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, rows.Err()
}

func scanSearchResults(rows pgx.Rows) ([]SearchResult, error) {
	results := make([]SearchResult, 0)
	for rows.Next() {
		var (
			id          pgtype.UUID
			description pgtype.Text
			result      SearchResult
		)
		if err := rows.Scan(&id, &result.Title, &description, &result.Similarity); err != nil {
			return nil, err
		}
		result.ID = uuid.UUID(id.Bytes)
		result.Description = description.String
		results = append(results, result)
	}
	return results, rows.Err()
}
