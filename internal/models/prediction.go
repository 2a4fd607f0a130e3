package models

// Price direction labels
const (
	DirectionUp     = "UP"
	DirectionDown   = "DOWN"
	DirectionStable = "STABLE"
)

// Recommended purchase actions
const (
	ActionBuyNow   = "BUY_NOW"
	ActionWaitWeek = "WAIT_1_WEEK"
	ActionWaitTwo  = "WAIT_2_WEEKS"
	ActionMonitor  = "MONITOR"
)

// Risk levels
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// PriceObservation is the input to a price prediction
type PriceObservation struct {
	ItemName     string    `json:"item_name"`
	CurrentPrice float64   `json:"current_price"`
	PriceHistory []float64 `json:"price_history,omitempty"` // most recent last
}

// PricePrediction is the 30-day forecast for a single item
type PricePrediction struct {
	ItemName            string   `json:"item_name"`
	CurrentPrice        float64  `json:"current_price"`
	Predicted30DayPrice float64  `json:"predicted_30day_price"`
	PriceDirection      string   `json:"price_direction"` // UP | DOWN | STABLE
	Confidence          float64  `json:"confidence"`      // 0.6 - 0.95
	SmartBuyScore       float64  `json:"smart_buy_score"` // 1 - 10, one decimal
	RecommendedAction   string   `json:"recommended_action"`
	Reasoning           string   `json:"reasoning"`
	KeyFactors          []string `json:"key_factors"` // at most 5
	ExpectedSavings     float64  `json:"expected_savings"`
	RiskLevel           string   `json:"risk_level"` // LOW | MEDIUM | HIGH
}

// PredictionRecord is a persisted prediction history row
type PredictionRecord struct {
	ID                string  `json:"id"`
	ItemName          string  `json:"item_name"`
	CurrentPrice      float64 `json:"current_price"`
	PredictedPrice    float64 `json:"predicted_price"`
	SmartBuyScore     float64 `json:"smart_buy_score"`
	RecommendedAction string  `json:"recommended_action"`
	CreatedAt         string  `json:"created_at"`
}
