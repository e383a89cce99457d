package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/engine"
)

type extraction struct {
	Response string            `json:"response"`
	Filters  engine.FilterSpec `json:"filters"`
	SortBy   string            `json:"sort_by"`
	Limit    int               `json:"limit"`
}

// ParseExtraction parses the model's JSON reply into filter parameters and
// answer text. Models routinely wrap JSON in markdown fences or lead with
// prose, so the parser extracts the outermost object before unmarshalling.
func ParseExtraction(content string) (models.FilterParams, string, error) {
	raw := extractJSON(content)
	if raw == "" {
		return models.FilterParams{}, "", fmt.Errorf("no JSON object in model output")
	}

	var ex extraction
	if err := json.Unmarshal([]byte(raw), &ex); err != nil {
		return models.FilterParams{}, "", fmt.Errorf("parse model output: %w", err)
	}

	params := models.FilterParams{
		FilterSpec: ex.Filters,
		SortBy:     strings.ToLower(strings.TrimSpace(ex.SortBy)),
		Limit:      ex.Limit,
	}
	return params, strings.TrimSpace(ex.Response), nil
}

// extractJSON returns the outermost {...} of the content, stripping any
// markdown code fences around it.
func extractJSON(content string) string {
	s := strings.TrimSpace(content)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
