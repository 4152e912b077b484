package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "github.com/mohamadjaafar/recipe-management/internal/errors"
	"github.com/mohamadjaafar/recipe-management/internal/models"
)

type MealPlanStore struct {
	db *pgxpool.Pool
}

func NewMealPlanStore(db *pgxpool.Pool) *MealPlanStore {
	return &MealPlanStore{db: db}
}

func (s *MealPlanStore) Create(ctx context.Context, plan models.MealPlan) (*models.MealPlan, error) {
	meals, err := json.Marshal(plan.Meals)
	if err != nil {
		return nil, fmt.Errorf("marshal meals: %w", err)
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO meal_plans (user_id, name, week_start, meals)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, week_start, meals, created_at`,
		pgUUID(plan.UserID), plan.Name, plan.WeekStart, meals)

	created, err := scanMealPlan(row)
	if err != nil {
		return nil, fmt.Errorf("create meal plan: %w", err)
	}
	return created, nil
}

func (s *MealPlanStore) List(ctx context.Context, userID uuid.UUID) ([]*models.MealPlan, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, week_start, meals, created_at
		FROM meal_plans
		WHERE user_id = $1
		ORDER BY week_start DESC`,
		pgUUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list meal plans: %w", err)
	}
	defer rows.Close()

	plans := make([]*models.MealPlan, 0)
	for rows.Next() {
		plan, err := scanMealPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func (s *MealPlanStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := s.db.Exec(ctx,
		`DELETE FROM meal_plans WHERE id = $1 AND user_id = $2`,
		pgUUID(id), pgUUID(userID))
	if err != nil {
		return fmt.Errorf("delete meal plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("meal plan not found", "MEAL_PLAN_NOT_FOUND", "")
	}
	return nil
}

func scanMealPlan(row pgx.Row) (*models.MealPlan, error) {
	var (
		plan       models.MealPlan
		id, userID pgtype.UUID
		meals      []byte
	)
	err := row.Scan(&id, &userID, &plan.Name, &plan.WeekStart, &meals, &plan.CreatedAt)
	if err != nil {
		return nil, err
	}

	plan.ID = uuid.UUID(id.Bytes)
	plan.UserID = uuid.UUID(userID.Bytes)
	if len(meals) > 0 {
		if err := json.Unmarshal(meals, &plan.Meals); err != nil {
			return nil, fmt.Errorf("unmarshal meals: %w", err)
		}
	}
	return &plan, nil
}
