package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/budget"
	"github.com/Dan9191/finance-dashboard/internal/config"
	"github.com/Dan9191/finance-dashboard/internal/integrations/claude"
	"github.com/Dan9191/finance-dashboard/internal/integrations/macro"
	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/Dan9191/finance-dashboard/internal/prediction"
	"github.com/Dan9191/finance-dashboard/internal/utils/email"
	"github.com/dgraph-io/ristretto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	indicatorTTL      = time.Hour
	staleRetryTTL     = 5 * time.Minute
	indicatorCacheKey = "indicators"
	digestThreshold   = 8.0
)

// Store is the persistence surface the service depends on
type Store interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	UpsertIndicators(snapshot models.EconomicIndicators) error
	GetIndicators() (*models.EconomicIndicators, error)
	SavePrediction(p models.PricePrediction) (*models.PredictionRecord, error)
	ListPredictions(limit int) ([]models.PredictionRecord, error)
}

// IndicatorSource supplies fresh macroeconomic snapshots
type IndicatorSource interface {
	Fetch() (models.EconomicIndicators, error)
}

// Service handles business logic
type Service struct {
	repo    Store
	macro   IndicatorSource
	engine  *prediction.Engine
	ai      *prediction.AIPredictor
	planner *budget.Planner
	sender  *email.Sender
	cache   *ristretto.Cache
	log     *logrus.Logger
	config  *config.Config
}

// NewService initializes a new service. When the reasoning client is not
// configured, predictions and scenario analysis run purely rule-based.
func NewService(repo Store, macroClient IndicatorSource, reasoner *claude.Client, sender *email.Sender, cfg *config.Config, log *logrus.Logger) (*Service, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1 << 10,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	svc := &Service{
		repo:   repo,
		macro:  macroClient,
		engine: prediction.NewEngine(),
		sender: sender,
		cache:  cache,
		log:    log,
		config: cfg,
	}
	if reasoner.Enabled() {
		svc.ai = prediction.NewAIPredictor(reasoner, log)
		svc.planner = budget.NewPlanner(reasoner, log)
	} else {
		svc.planner = budget.NewPlanner(nil, log)
		log.Warn("Reasoning service not configured, running rule-based engines only")
	}
	return svc, nil
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// GetIndicators returns the current indicator snapshot. Order of preference:
// in-process cache, stored row younger than an hour, fresh fetch from the
// feed. When everything fails the static defaults are used, so callers never
// see an error.
func (s *Service) GetIndicators() models.EconomicIndicators {
	if cached, ok := s.cache.Get(indicatorCacheKey); ok {
		if snapshot, ok := cached.(models.EconomicIndicators); ok {
			return snapshot
		}
	}

	stored, storedErr := s.repo.GetIndicators()
	if storedErr == nil && time.Since(stored.LastUpdated) < indicatorTTL {
		s.cacheIndicators(*stored, indicatorTTL)
		return *stored
	}

	snapshot, err := s.macro.Fetch()
	if err != nil {
		s.log.Warnf("Macro feed unavailable, using default indicators: %v", err)
		if storedErr == nil {
			// Serve the stale row during the outage, cached briefly so
			// requests stop hammering the dead feed
			s.cacheIndicators(*stored, staleRetryTTL)
			return *stored
		}
		return macro.DefaultIndicators()
	}

	if err := s.repo.UpsertIndicators(snapshot); err != nil {
		s.log.Errorf("Failed to persist indicator snapshot: %v", err)
	}
	s.cacheIndicators(snapshot, indicatorTTL)
	return snapshot
}

// RefreshIndicators force-fetches the feed, bypassing the staleness check.
// Used by the hourly cron job.
func (s *Service) RefreshIndicators() {
	snapshot, err := s.macro.Fetch()
	if err != nil {
		s.log.Warnf("Scheduled indicator refresh failed: %v", err)
		return
	}
	if err := s.repo.UpsertIndicators(snapshot); err != nil {
		s.log.Errorf("Failed to persist indicator snapshot: %v", err)
	}
	s.cacheIndicators(snapshot, indicatorTTL)
	s.log.Info("Indicator snapshot refreshed")
}

func (s *Service) cacheIndicators(snapshot models.EconomicIndicators, ttl time.Duration) {
	s.cache.SetWithTTL(indicatorCacheKey, snapshot, 1, ttl)
	// Flush the set buffer so the snapshot is visible to the next request
	s.cache.Wait()
}

// PredictPrice scores a single item, preferring the reasoning service and
// falling back to the deterministic engine. Always returns a prediction.
func (s *Service) PredictPrice(ctx context.Context, obs models.PriceObservation) models.PricePrediction {
	snapshot := s.GetIndicators()
	month := time.Now().Month()

	var result models.PricePrediction
	if s.ai != nil {
		aiResult, err := s.ai.Predict(ctx, obs, snapshot, month)
		if err != nil {
			s.log.Warnf("Model prediction for %s failed, using deterministic engine: %v", obs.ItemName, err)
			result = s.engine.Predict(obs, snapshot, month)
		} else {
			result = aiResult
		}
	} else {
		result = s.engine.Predict(obs, snapshot, month)
	}

	if _, err := s.repo.SavePrediction(result); err != nil {
		s.log.Errorf("Failed to record prediction for %s: %v", obs.ItemName, err)
	}
	return result
}

// PredictPricesBatch scores a list of items in rate-limited groups,
// preserving input order
func (s *Service) PredictPricesBatch(ctx context.Context, items []models.PriceObservation) ([]models.PricePrediction, error) {
	batcher := prediction.NewBatcher(func(ctx context.Context, obs models.PriceObservation) (models.PricePrediction, error) {
		return s.PredictPrice(ctx, obs), nil
	})
	return batcher.PredictAll(ctx, items)
}

// AnalyzeScenario produces a budget plan for a life scenario
func (s *Service) AnalyzeScenario(ctx context.Context, scenario models.Scenario) models.BudgetPlan {
	plan := s.planner.Analyze(ctx, scenario)
	s.log.Infof("Scenario %q analyzed: %d categories, confidence %.0f", scenario.ScenarioType, len(plan.RedistributedBudget), plan.Confidence)
	return plan
}

// ListPredictionHistory returns recent prediction rows for the dashboard
func (s *Service) ListPredictionHistory(limit int) ([]models.PredictionRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListPredictions(limit)
}

// SendSmartBuyDigest scores the configured watchlist on the deterministic
// engine and emails items that hit the buy-now threshold. Watchlist entries
// are "item=price" pairs. A no-op when the digest is unconfigured.
func (s *Service) SendSmartBuyDigest() {
	if s.sender == nil || len(s.config.Watchlist) == 0 || s.config.DigestEmail == "" {
		return
	}

	snapshot := s.GetIndicators()
	month := time.Now().Month()

	var hits []models.PricePrediction
	for _, entry := range s.config.Watchlist {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			s.log.Warnf("Skipping malformed watchlist entry %q", entry)
			continue
		}
		price, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || price < 0 {
			s.log.Warnf("Skipping watchlist entry %q with bad price", entry)
			continue
		}

		result := s.engine.Predict(models.PriceObservation{ItemName: parts[0], CurrentPrice: price}, snapshot, month)
		if result.SmartBuyScore >= digestThreshold {
			hits = append(hits, result)
		}
	}

	if len(hits) == 0 {
		s.log.Debug("No watchlist items above the smart-buy threshold")
		return
	}
	if err := s.sender.SendSmartBuyDigest(s.config.DigestEmail, hits); err != nil {
		s.log.Errorf("Failed to send smart-buy digest: %v", err)
	}
}
