package worker

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type constants
const (
	TypeEstimateNutrition = "nutrition:estimate"
	TypeGenerateEmbedding = "embedding:generate"
	TypeCleanupShares     = "cleanup:shares"
)

// EstimateNutritionPayload is the payload for nutrition estimation tasks
type EstimateNutritionPayload struct {
	RecipeID string `json:"recipe_id"`
}

// GenerateEmbeddingPayload is the payload for embedding tasks
type GenerateEmbeddingPayload struct {
	RecipeID string `json:"recipe_id"`
}

// NewEstimateNutritionTask creates a new nutrition estimation task
func NewEstimateNutritionTask(payload EstimateNutritionPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEstimateNutrition, data), nil
}

// NewGenerateEmbeddingTask creates a new embedding task
func NewGenerateEmbeddingTask(payload GenerateEmbeddingPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeGenerateEmbedding, data), nil
}

// NewCleanupSharesTask creates a new share cleanup task
func NewCleanupSharesTask() *asynq.Task {
	return asynq.NewTask(TypeCleanupShares, nil)
}
