package prediction

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/integrations/claude"
	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const maxRetries = 2

// Completer is the narrow slice of the reasoning client the predictor needs
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AIPredictor asks the reasoning service for a forecast and clamps every
// field of the response into a safe domain. A malformed response degrades to
// the inflation-only estimate; a failed request is retried with backoff and
// then surfaced to the caller.
type AIPredictor struct {
	completer Completer
	log       *logrus.Logger
	wait      func(ctx context.Context, d time.Duration) error
}

// NewAIPredictor creates a model-assisted predictor
func NewAIPredictor(completer Completer, log *logrus.Logger) *AIPredictor {
	return &AIPredictor{
		completer: completer,
		log:       log,
		wait:      sleepContext,
	}
}

// sleepContext pauses for d or until ctx is cancelled, whichever comes first
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Predict requests a forecast from the reasoning service. Retries twice with
// exponential backoff (1s, 2s) before giving up.
func (p *AIPredictor) Predict(ctx context.Context, obs models.PriceObservation, snapshot models.EconomicIndicators, month time.Month) (models.PricePrediction, error) {
	prompt := fmt.Sprintf(predictionPromptTemplate,
		obs.ItemName, obs.CurrentPrice, month.String(),
		snapshot.InflationRate, snapshot.GDPGrowth, snapshot.ConsumerPriceIndex,
		snapshot.UnemploymentRate, snapshot.OilPrices, snapshot.DollarStrength)

	var response string
	var err error
	for attempt := 0; ; attempt++ {
		response, err = p.completer.Complete(ctx, prompt)
		if err == nil {
			break
		}
		if attempt == maxRetries {
			return models.PricePrediction{}, fmt.Errorf("prediction request failed after %d retries: %w", maxRetries, err)
		}
		backoff := time.Duration(1<<attempt) * time.Second
		p.log.Warnf("Prediction request for %s failed (attempt %d): %v, retrying in %s", obs.ItemName, attempt+1, err, backoff)
		if waitErr := p.wait(ctx, backoff); waitErr != nil {
			return models.PricePrediction{}, fmt.Errorf("prediction request abandoned during backoff: %w", waitErr)
		}
	}

	jsonStr := claude.ExtractJSON(response)
	if jsonStr == "" || !gjson.Valid(jsonStr) {
		p.log.Warnf("Unusable prediction response for %s, using simplified estimate", obs.ItemName)
		return SimpleEstimate(obs, snapshot), nil
	}

	return p.parsePrediction(jsonStr, obs), nil
}

// parsePrediction extracts each field independently and clamps it into the
// allowed domain. Partial trust: one bad field never invalidates the rest.
func (p *AIPredictor) parsePrediction(jsonStr string, obs models.PriceObservation) models.PricePrediction {
	predicted := gjson.Get(jsonStr, "predicted_30day_price").Float()
	if predicted <= 0 || math.IsNaN(predicted) || math.IsInf(predicted, 0) {
		predicted = obs.CurrentPrice
	}

	score := 5.0
	if res := gjson.Get(jsonStr, "smart_buy_score"); res.Exists() {
		score = math.Round(clamp(res.Float(), 1, 10))
	}

	confidence := clamp(gjson.Get(jsonStr, "confidence").Float(), 0.6, 0.95)

	direction := gjson.Get(jsonStr, "price_direction").String()
	if direction != models.DirectionUp && direction != models.DirectionDown && direction != models.DirectionStable {
		direction = models.DirectionDown
		if predicted > obs.CurrentPrice {
			direction = models.DirectionUp
		}
	}

	action := gjson.Get(jsonStr, "recommended_action").String()
	switch action {
	case models.ActionBuyNow, models.ActionWaitWeek, models.ActionWaitTwo, models.ActionMonitor:
	default:
		action = actionForScore(score)
	}

	risk := gjson.Get(jsonStr, "risk_level").String()
	switch risk {
	case models.RiskLow, models.RiskMedium, models.RiskHigh:
	default:
		risk = models.RiskMedium
	}

	reasoning := gjson.Get(jsonStr, "reasoning").String()
	if reasoning == "" {
		reasoning = fmt.Sprintf("Forecast for %s based on current economic conditions.", obs.ItemName)
	}

	var factors []string
	for _, f := range gjson.Get(jsonStr, "key_factors").Array() {
		if s := f.String(); s != "" {
			factors = append(factors, s)
		}
		if len(factors) == 5 {
			break
		}
	}

	savings := gjson.Get(jsonStr, "expected_savings").Float()
	if savings < 0 || math.IsNaN(savings) {
		savings = 0
	}

	return models.PricePrediction{
		ItemName:            obs.ItemName,
		CurrentPrice:        obs.CurrentPrice,
		Predicted30DayPrice: predicted,
		PriceDirection:      direction,
		Confidence:          confidence,
		SmartBuyScore:       score,
		RecommendedAction:   action,
		Reasoning:           reasoning,
		KeyFactors:          factors,
		ExpectedSavings:     savings,
		RiskLevel:           risk,
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
