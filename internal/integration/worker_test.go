package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/mohamadjaafar/recipe-management/internal/models"
	"github.com/mohamadjaafar/recipe-management/internal/worker"
)

// fakeRecipeStore is an in-memory stand-in for the recipe tables.
type fakeRecipeStore struct {
	recipes    map[uuid.UUID]*models.Recipe
	nutrition  map[uuid.UUID]*models.NutritionEstimate
	embeddings map[uuid.UUID][]float32
}

func newFakeRecipeStore() *fakeRecipeStore {
	return &fakeRecipeStore{
		recipes:    make(map[uuid.UUID]*models.Recipe),
		nutrition:  make(map[uuid.UUID]*models.NutritionEstimate),
		embeddings: make(map[uuid.UUID][]float32),
	}
}

func (s *fakeRecipeStore) GetAny(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	r, ok := s.recipes[id]
	if !ok {
		return nil, context.Canceled
	}
	return r, nil
}

func (s *fakeRecipeStore) UpdateNutrition(ctx context.Context, id uuid.UUID, n *models.NutritionEstimate) error {
	s.nutrition[id] = n
	return nil
}

func (s *fakeRecipeStore) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	s.embeddings[id] = embedding
	return nil
}

type fakeShareStore struct {
	removed int64
}

func (s *fakeShareStore) DeleteOrphans(ctx context.Context) (int64, error) {
	return s.removed, nil
}

type fakeEstimator struct {
	estimate *models.NutritionEstimate
}

func (f *fakeEstimator) EstimateNutrition(ctx context.Context, req models.NutritionRequest) (*models.NutritionEstimate, error) {
	return f.estimate, nil
}

type fakeEmbedder struct {
	texts []string
}

func (f *fakeEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	f.texts = append(f.texts, text)
	return []float32{0.1, 0.2, 0.3}, nil
}

// TestNutritionTaskRoundTrip enqueues a nutrition task payload and runs it
// through the processor, verifying the estimate ends up on the recipe.
func TestNutritionTaskRoundTrip(t *testing.T) {
	recipeID := uuid.New()

	store := newFakeRecipeStore()
	store.recipes[recipeID] = &models.Recipe{
		ID:       recipeID,
		UserID:   uuid.New(),
		Title:    "Lentil Soup",
		Servings: 4,
		Ingredients: []models.IngredientLine{
			{Name: "lentils", Amount: "200", Unit: "g"},
		},
	}

	estimator := &fakeEstimator{estimate: &models.NutritionEstimate{Calories: 420, Protein: "18g"}}
	processor := worker.NewRecipeProcessor(store, &fakeShareStore{}, estimator, &fakeEmbedder{}, nil, nil)

	task, err := worker.NewEstimateNutritionTask(worker.EstimateNutritionPayload{RecipeID: recipeID.String()})
	if err != nil {
		t.Fatalf("failed to build task: %v", err)
	}
	if task.Type() != worker.TypeEstimateNutrition {
		t.Errorf("expected task type %s, got %s", worker.TypeEstimateNutrition, task.Type())
	}

	if err := processor.HandleEstimateNutrition(t.Context(), task); err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	saved, ok := store.nutrition[recipeID]
	if !ok {
		t.Fatal("expected nutrition to be saved")
	}
	if saved.Calories != 420 {
		t.Errorf("expected 420 calories, got %v", saved.Calories)
	}
}

// TestEmbeddingTaskRoundTrip verifies the embedding text is assembled from
// title, description and ingredient names, and the vector is persisted.
func TestEmbeddingTaskRoundTrip(t *testing.T) {
	recipeID := uuid.New()

	store := newFakeRecipeStore()
	store.recipes[recipeID] = &models.Recipe{
		ID:          recipeID,
		UserID:      uuid.New(),
		Title:       "Pad Thai",
		Description: "Stir-fried noodles",
		Ingredients: []models.IngredientLine{
			{Name: "rice noodles"},
			{Name: "peanuts"},
		},
	}

	embedder := &fakeEmbedder{}
	processor := worker.NewRecipeProcessor(store, &fakeShareStore{}, &fakeEstimator{}, embedder, nil, nil)

	task, err := worker.NewGenerateEmbeddingTask(worker.GenerateEmbeddingPayload{RecipeID: recipeID.String()})
	if err != nil {
		t.Fatalf("failed to build task: %v", err)
	}

	if err := processor.HandleGenerateEmbedding(t.Context(), task); err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	if len(embedder.texts) != 1 {
		t.Fatalf("expected 1 embedding call, got %d", len(embedder.texts))
	}
	want := "Pad Thai Stir-fried noodles rice noodles peanuts"
	if embedder.texts[0] != want {
		t.Errorf("expected embedding text %q, got %q", want, embedder.texts[0])
	}

	if _, ok := store.embeddings[recipeID]; !ok {
		t.Error("expected embedding to be saved")
	}
}

func TestCleanupSharesRoundTrip(t *testing.T) {
	shares := &fakeShareStore{removed: 2}
	processor := worker.NewRecipeProcessor(newFakeRecipeStore(), shares, &fakeEstimator{}, &fakeEmbedder{}, nil, nil)

	if err := processor.HandleCleanupShares(t.Context(), worker.NewCleanupSharesTask()); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
}
