package models

import "time"

// EconomicIndicators represents the latest known macroeconomic readings
type EconomicIndicators struct {
	InflationRate      float64   `json:"inflation_rate"`       // percent
	GDPGrowth          float64   `json:"gdp_growth"`           // percent
	ConsumerPriceIndex float64   `json:"consumer_price_index"` // index value
	UnemploymentRate   float64   `json:"unemployment_rate"`    // percent
	OilPrices          float64   `json:"oil_prices"`           // USD/barrel
	DollarStrength     float64   `json:"dollar_strength"`      // DXY-style index
	LastUpdated        time.Time `json:"last_updated"`
}
