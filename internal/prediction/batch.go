package prediction

import (
	"context"
	"sync"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

const (
	batchSize  = 3
	batchPause = time.Second
)

// WaitBudget returns the deliberate sleep floor for scoring n items: the
// pause between groups plus the full retry backoff each group may spend.
// Server deadlines around batch scoring must leave room for at least this.
func WaitBudget(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	groups := (n + batchSize - 1) / batchSize
	var backoff time.Duration
	for attempt := 0; attempt < maxRetries; attempt++ {
		backoff += time.Duration(1<<attempt) * time.Second
	}
	return time.Duration(groups-1)*batchPause + time.Duration(groups)*backoff
}

// PredictFunc scores a single observation
type PredictFunc func(ctx context.Context, obs models.PriceObservation) (models.PricePrediction, error)

// Batcher scores a list of items in groups of three, pausing between groups
// to stay under the reasoning service rate limit. Items within a group run
// concurrently; results come back in input order.
type Batcher struct {
	predict PredictFunc
	sleep   func(time.Duration)
}

// NewBatcher creates a batch helper around a single-item predictor
func NewBatcher(predict PredictFunc) *Batcher {
	return &Batcher{predict: predict, sleep: time.Sleep}
}

// PredictAll scores every observation, preserving input order. The first
// error encountered aborts the remaining groups.
func (b *Batcher) PredictAll(ctx context.Context, items []models.PriceObservation) ([]models.PricePrediction, error) {
	results := make([]models.PricePrediction, len(items))
	errs := make([]error, len(items))

	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = b.predict(ctx, items[i])
			}(i)
		}
		wg.Wait()

		for i := start; i < end; i++ {
			if errs[i] != nil {
				return nil, errs[i]
			}
		}

		if end < len(items) {
			b.sleep(batchPause)
		}
	}

	return results, nil
}
