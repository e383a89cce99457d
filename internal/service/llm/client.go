package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"TradeLens/internal/domain/models"
	pkghttp "TradeLens/pkg/http"
)

// Client talks to an OpenAI-compatible chat completions endpoint and
// implements the domain FilterExtractor.
type Client struct {
	http        *pkghttp.Client
	baseURL     string
	apiKey      string
	model       string
	temperature float64
}

// Config holds LLM client settings.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// NewClient creates an LLM client.
func NewClient(cfg Config) *Client {
	return &Client{
		http:        pkghttp.NewClient(pkghttp.WithTimeout(cfg.Timeout)),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const systemPrompt = `You are a stock signal analyst. The user asks questions about a table of stock signals.
Columns include: symbol, trend, trend_strength, volatility, sentiment_score, adx, date.
Respond with a single JSON object and nothing else:
{
  "response": "<short natural-language answer>",
  "filters": {
    "trend": "", "trend_strength": "", "volatility": "", "sentiment": "",
    "min_sentiment": null, "max_sentiment": null, "min_adx": null
  },
  "sort_by": "",
  "limit": 0
}
Leave fields empty or null when the question does not constrain them.
"sentiment" takes "positive" or "negative" when the user asks for a sentiment direction.
"sort_by" takes "adx", "sentiment", or "volatility" when the user asks for top or ranked results.`

// Extract asks the model to turn a natural-language query into structured
// filter parameters. On malformed model output it falls back to the raw
// text with no filters rather than failing the chat.
func (c *Client) Extract(ctx context.Context, query string, dataSummary string, totalRows int) (models.FilterParams, string, error) {
	userPrompt := fmt.Sprintf("Current data: %d rows. Summary: %s\n\nQuestion: %s", totalRows, dataSummary, query)

	var resp chatCompletionResponse
	err := c.http.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodPost,
		URL:    c.baseURL + "/chat/completions",
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
		},
		Body: chatCompletionRequest{
			Model:       c.model,
			Temperature: c.temperature,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: userPrompt},
			},
		},
	}, &resp)
	if err != nil {
		return models.FilterParams{}, "", fmt.Errorf("llm completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.FilterParams{}, "", fmt.Errorf("llm completion: empty choices")
	}

	content := resp.Choices[0].Message.Content
	params, answer, err := ParseExtraction(content)
	if err != nil {
		// Model ignored the JSON contract; treat its text as the answer.
		return models.FilterParams{}, strings.TrimSpace(content), nil
	}
	return params, answer, nil
}
