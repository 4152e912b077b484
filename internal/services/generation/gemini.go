package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mohamadjaafar/recipe-management/internal/httpclient"
	"github.com/mohamadjaafar/recipe-management/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	geminiEndpointFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	geminiDefaultModel   = "gemini-2.0-flash"
)

// GeminiProvider implements Provider for the Google Generative Language API
type GeminiProvider struct {
	apiKey string
	model  string
}

// NewGeminiProvider creates a new Gemini provider with the default model
func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{apiKey: apiKey, model: geminiDefaultModel}
}

// Generate sends one prompt and returns the first candidate's text
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", "gemini")}
		metrics.AIGenerationDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Parts []part `json:"parts"`
	}
	type generateRequest struct {
		Contents []content `json:"contents"`
	}

	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	body, _ := json.Marshal(req)
	endpoint := fmt.Sprintf(geminiEndpointFormat, p.model)
	httpReq, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, "Gemini"), "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("x-goog-api-key", p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpclient.InstrumentedClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("Gemini API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var generateResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &generateResp); err != nil {
		return "", err
	}

	if len(generateResp.Candidates) == 0 || len(generateResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	return generateResp.Candidates[0].Content.Parts[0].Text, nil
}
