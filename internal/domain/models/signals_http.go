package models

// Requests for the signals HTTP endpoints. Defined in domain for reuse;
// binding, defaults and validation happen in pkg/http.

type StocksRequest struct {
	Trend         string   `query:"trend" json:"trend" validate:"omitempty,max=64"`
	TrendStrength string   `query:"trend_strength" json:"trend_strength" validate:"omitempty,max=64"`
	Volatility    string   `query:"volatility" json:"volatility" validate:"omitempty,max=64"`
	Sentiment     string   `query:"sentiment" json:"sentiment" validate:"omitempty,oneof=positive negative"`
	MinSentiment  *float64 `query:"min_sentiment" json:"min_sentiment"`
	MaxSentiment  *float64 `query:"max_sentiment" json:"max_sentiment"`
	MinADX        *float64 `query:"min_adx" json:"min_adx"`
}

type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

type TopRequest struct {
	SortBy string `query:"sort_by" json:"sort_by" default:"adx" validate:"omitempty,max=32"`
	N      int    `query:"n" json:"n" default:"10" validate:"gte=1,lte=500"`
}
