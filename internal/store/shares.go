package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mohamadjaafar/recipe-management/internal/models"
)

type ShareStore struct {
	db *pgxpool.Pool
}

func NewShareStore(db *pgxpool.Pool) *ShareStore {
	return &ShareStore{db: db}
}

// Create records a share. Sharing the same recipe with the same person twice
// is a no-op.
func (s *ShareStore) Create(ctx context.Context, recipeID, sharedBy, sharedWith uuid.UUID) (*models.RecipeShare, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO recipe_shares (recipe_id, shared_by, shared_with)
		VALUES ($1, $2, $3)
		ON CONFLICT (recipe_id, shared_with) DO UPDATE SET shared_by = EXCLUDED.shared_by
		RETURNING id, recipe_id, shared_by, shared_with, created_at`,
		pgUUID(recipeID), pgUUID(sharedBy), pgUUID(sharedWith))

	var (
		share                 models.RecipeShare
		id, rid, byID, withID pgtype.UUID
	)
	if err := row.Scan(&id, &rid, &byID, &withID, &share.CreatedAt); err != nil {
		return nil, fmt.Errorf("create share: %w", err)
	}
	share.ID = uuid.UUID(id.Bytes)
	share.RecipeID = uuid.UUID(rid.Bytes)
	share.SharedBy = uuid.UUID(byID.Bytes)
	share.SharedWith = uuid.UUID(withID.Bytes)
	return &share, nil
}

// DeleteOrphans drops shares whose recipe no longer exists and returns how
// many were removed. The cleanup task runs this on a schedule.
func (s *ShareStore) DeleteOrphans(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM recipe_shares
		WHERE NOT EXISTS (SELECT 1 FROM recipes WHERE recipes.id = recipe_shares.recipe_id)`)
	if err != nil {
		return 0, fmt.Errorf("delete orphan shares: %w", err)
	}
	return tag.RowsAffected(), nil
}
