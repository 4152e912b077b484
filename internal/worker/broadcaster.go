package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// RecipeUpdate notifies a user that background processing finished for one
// of their recipes.
type RecipeUpdate struct {
	RecipeID string `json:"recipe_id"`
	Event    string `json:"event"`
	Message  string `json:"message"`
}

// ProgressBroadcaster pushes updates to the frontend over Supabase realtime
// channels.
type ProgressBroadcaster struct {
	supabaseURL string
	serviceKey  string
	httpClient  *http.Client
	mu          sync.Mutex
}

func NewProgressBroadcaster(supabaseURL, serviceKey string) *ProgressBroadcaster {
	return &ProgressBroadcaster{
		supabaseURL: supabaseURL,
		serviceKey:  serviceKey,
		httpClient:  &http.Client{},
	}
}

func (b *ProgressBroadcaster) Broadcast(userID string, update RecipeUpdate) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	channel := fmt.Sprintf("user:%s:recipes", userID)

	payload := map[string]interface{}{
		"channel": channel,
		"type":    "broadcast",
		"event":   update.Event,
		"payload": update,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast payload: %w", err)
	}

	url := fmt.Sprintf("%s/rest/v1/rpc/broadcast", b.supabaseURL)

	req, err := http.NewRequestWithContext(context.Background(), "POST", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+b.serviceKey)
	req.Header.Set("apikey", b.serviceKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to broadcast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("broadcast failed with status %d", resp.StatusCode)
	}

	return nil
}
