package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"KnowledgeExtractor/internal/config"
	"KnowledgeExtractor/internal/ports"
)

// promptTextLimit caps how much input reaches the model; anything past
// the first 2000 characters is dropped to stay inside token budgets.
const promptTextLimit = 2000

// OpenAIClient implements ports.Generator backed by OpenAI-compatible
// chat-completion APIs. It returns the model's reply verbatim; the
// normalizer deals with whatever comes back.
type OpenAIClient struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ ports.Generator = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client from configuration.
func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	return &OpenAIClient{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// Generate posts the analysis prompt and returns the raw completion.
func (c *OpenAIClient) Generate(ctx context.Context, text string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("openai client is nil")
	}
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("openai client misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": buildPrompt(text)},
		},
		"temperature": 0.3,
		"max_tokens":  500,
	})
	if err != nil {
		return "", fmt.Errorf("marshal openai payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send prompt: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("openai error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("decode completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion has no choices")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

const systemPrompt = "You are a helpful assistant that analyzes text and returns structured JSON data."

func buildPrompt(text string) string {
	if len(text) > promptTextLimit {
		text = text[:promptTextLimit]
	}

	return fmt.Sprintf(`Analyze the following text and provide a structured response in JSON format:

Text: %q

Please provide a JSON response with the following structure:
{
    "summary": "A 1-2 sentence summary of the text",
    "title": "A descriptive title for the text (or null if not applicable)",
    "topics": ["topic1", "topic2", "topic3"],
    "sentiment": "positive/neutral/negative"
}

Guidelines:
- Summary should be concise and capture the main points
- Title should be descriptive and relevant
- Topics should be the 3 most important themes or subjects
- Sentiment should be one of: positive, neutral, negative
- Return only valid JSON, no additional text`, text)
}

// CannedGenerator stands in for the model when no API key is
// configured, mirroring the generated JSON shape.
type CannedGenerator struct{}

var _ ports.Generator = (*CannedGenerator)(nil)

// Generate returns a fixed, well-formed reply describing the input.
func (CannedGenerator) Generate(_ context.Context, text string) (string, error) {
	reply := map[string]any{
		"summary":   fmt.Sprintf("This is a canned summary for text containing %d characters.", len(text)),
		"title":     "Canned Title",
		"topics":    []string{"technology", "analysis", "canned"},
		"sentiment": "neutral",
	}
	raw, err := json.Marshal(reply)
	if err != nil {
		return "", fmt.Errorf("marshal canned reply: %w", err)
	}
	return string(raw), nil
}
