package prediction

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

// Weights applied to the macro indicators when projecting a 30-day price
const (
	inflationWeight = 0.3
	gdpWeight       = 0.2
)

// Engine produces deterministic 30-day price forecasts from the current
// price, the indicator snapshot and the seasonal table. Jitter is only drawn
// when the projected movement is too small to score decisively; the source is
// injectable so tests can pin it.
type Engine struct {
	jitter func() float64 // uniform in [0,1)
}

// NewEngine creates an engine with the default jitter source
func NewEngine() *Engine {
	return &Engine{jitter: rand.Float64}
}

// NewEngineWithJitter creates an engine with a custom jitter source
func NewEngineWithJitter(jitter func() float64) *Engine {
	return &Engine{jitter: jitter}
}

// Predict computes a price prediction for a single item
func (e *Engine) Predict(obs models.PriceObservation, snapshot models.EconomicIndicators, month time.Month) models.PricePrediction {
	inflationImpact := snapshot.InflationRate / 100 * inflationWeight
	gdpImpact := snapshot.GDPGrowth / 100 * gdpWeight
	seasonal := SeasonalFactor(obs.ItemName, month)

	baseChange := inflationImpact + gdpImpact + seasonal
	predicted := obs.CurrentPrice * (1 + baseChange)
	if predicted < 0 {
		predicted = 0
	}

	ratio := 0.0
	if obs.CurrentPrice > 0 {
		ratio = (predicted - obs.CurrentPrice) / obs.CurrentPrice
	}

	score := e.smartBuyScore(ratio)
	action := actionForScore(score)
	confidence := 0.75 + e.jitter()*0.15

	direction := models.DirectionDown
	if predicted > obs.CurrentPrice {
		direction = models.DirectionUp
	}

	return models.PricePrediction{
		ItemName:            obs.ItemName,
		CurrentPrice:        obs.CurrentPrice,
		Predicted30DayPrice: predicted,
		PriceDirection:      direction,
		Confidence:          confidence,
		SmartBuyScore:       score,
		RecommendedAction:   action,
		Reasoning:           reasoning(obs.ItemName, ratio, snapshot, seasonal),
		KeyFactors:          keyFactors(snapshot, seasonal),
		ExpectedSavings:     expectedSavings(obs.CurrentPrice, predicted, score, action),
		RiskLevel:           riskLevel(ratio),
	}
}

// SimpleEstimate is the inflation-only estimate used when the reasoning
// service gives up mid-flight: half the annual inflation rate applied to the
// current price, fixed confidence, neutral score.
func SimpleEstimate(obs models.PriceObservation, snapshot models.EconomicIndicators) models.PricePrediction {
	predicted := obs.CurrentPrice * (1 + snapshot.InflationRate/100*0.5)

	direction := models.DirectionDown
	if predicted > obs.CurrentPrice {
		direction = models.DirectionUp
	}

	return models.PricePrediction{
		ItemName:            obs.ItemName,
		CurrentPrice:        obs.CurrentPrice,
		Predicted30DayPrice: predicted,
		PriceDirection:      direction,
		Confidence:          0.65,
		SmartBuyScore:       5,
		RecommendedAction:   models.ActionMonitor,
		Reasoning:           fmt.Sprintf("Simplified estimate for %s based on inflation alone; detailed analysis was unavailable.", obs.ItemName),
		KeyFactors:          []string{fmt.Sprintf("Inflation rate at %.1f%%", snapshot.InflationRate)},
		ExpectedSavings:     obs.CurrentPrice * 0.05,
		RiskLevel:           models.RiskMedium,
	}
}

// smartBuyScore maps the projected 30-day movement to a 1-10 score. Rising
// prices favor buying now (low score means wait regardless, see action
// thresholds); falling prices reward waiting with a high score.
func (e *Engine) smartBuyScore(ratio float64) float64 {
	var score float64
	switch {
	case ratio > 0.05:
		score = math.Max(1, 4-ratio*20)
	case ratio < -0.03:
		score = math.Min(10, 8+math.Abs(ratio)*15)
	default:
		// Movement too small to call either way
		score = 5 + e.jitter()*2
	}
	return math.Round(score*10) / 10
}

func actionForScore(score float64) string {
	switch {
	case score >= 8:
		return models.ActionBuyNow
	case score <= 4:
		return models.ActionWaitTwo
	case score <= 5.5:
		return models.ActionWaitWeek
	default:
		return models.ActionMonitor
	}
}

func expectedSavings(current, predicted, score float64, action string) float64 {
	if action == models.ActionBuyNow && predicted > current {
		return predicted - current
	}
	if (action == models.ActionWaitWeek || action == models.ActionWaitTwo) && predicted < current {
		return current - predicted
	}

	multiplier := 1.0
	if score >= 8 {
		multiplier = 1.5
	} else if score <= 4 {
		multiplier = 0.8
	}
	return current * 0.05 * multiplier
}

func riskLevel(ratio float64) string {
	abs := math.Abs(ratio)
	switch {
	case abs > 0.05:
		return models.RiskHigh
	case abs < 0.02:
		return models.RiskLow
	default:
		return models.RiskMedium
	}
}

func reasoning(itemName string, ratio float64, snapshot models.EconomicIndicators, seasonal float64) string {
	trend := "hold roughly steady"
	if ratio > 0.01 {
		trend = fmt.Sprintf("rise about %.1f%%", ratio*100)
	} else if ratio < -0.01 {
		trend = fmt.Sprintf("fall about %.1f%%", math.Abs(ratio)*100)
	}

	msg := fmt.Sprintf("Prices for %s are expected to %s over the next 30 days given %.1f%% inflation and %.1f%% GDP growth.",
		itemName, trend, snapshot.InflationRate, snapshot.GDPGrowth)
	if seasonal != 0 {
		msg += fmt.Sprintf(" Seasonal demand contributes %+.1f%% this month.", seasonal*100)
	}
	return msg
}

func keyFactors(snapshot models.EconomicIndicators, seasonal float64) []string {
	factors := []string{
		fmt.Sprintf("Inflation rate at %.1f%%", snapshot.InflationRate),
		fmt.Sprintf("GDP growth at %.1f%%", snapshot.GDPGrowth),
		fmt.Sprintf("Consumer price index at %.1f", snapshot.ConsumerPriceIndex),
	}
	if seasonal != 0 {
		factors = append(factors, fmt.Sprintf("Seasonal price drift of %+.1f%%", seasonal*100))
	}
	if snapshot.OilPrices > 90 {
		factors = append(factors, fmt.Sprintf("Elevated oil prices at $%.0f/barrel", snapshot.OilPrices))
	}
	if len(factors) > 5 {
		factors = factors[:5]
	}
	return factors
}
