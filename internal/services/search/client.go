package search

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mohamadjaafar/recipe-management/internal/store"
)

// Recipes defines the store operations needed for search.
type Recipes interface {
	SearchSemantic(ctx context.Context, userID uuid.UUID, embedding []float32, limit int) ([]store.SearchResult, error)
	SearchByName(ctx context.Context, userID uuid.UUID, query string, limit int) ([]store.SearchResult, error)
}

// EmbeddingClient defines the interface for generating embeddings.
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Client provides recipe search. With an embedding client it ranks by
// vector similarity; without one it falls back to name matching.
type Client struct {
	recipes    Recipes
	embeddings EmbeddingClient
}

func NewClient(recipes Recipes, embeddings EmbeddingClient) *Client {
	return &Client{
		recipes:    recipes,
		embeddings: embeddings,
	}
}

func (c *Client) Search(ctx context.Context, userID uuid.UUID, query string, limit int) ([]store.SearchResult, error) {
	if c.embeddings == nil {
		return c.recipes.SearchByName(ctx, userID, query, limit)
	}

	embedding, err := c.embeddings.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	results, err := c.recipes.SearchSemantic(ctx, userID, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	return results, nil
}
