package repository

import (
	"database/sql"
	"fmt"

	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/google/uuid"
)

// snapshotKey is the fixed key of the single latest indicator row
const snapshotKey = "latest"

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO finance.users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM finance.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpsertIndicators stores the latest indicator snapshot, replacing the
// previous one. The table holds a single row per key.
func (r *Repository) UpsertIndicators(snapshot models.EconomicIndicators) error {
	query := `
		INSERT INTO finance.economic_indicators
			(key, inflation_rate, gdp_growth, consumer_price_index, unemployment_rate, oil_prices, dollar_strength, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (key) DO UPDATE SET
			inflation_rate = EXCLUDED.inflation_rate,
			gdp_growth = EXCLUDED.gdp_growth,
			consumer_price_index = EXCLUDED.consumer_price_index,
			unemployment_rate = EXCLUDED.unemployment_rate,
			oil_prices = EXCLUDED.oil_prices,
			dollar_strength = EXCLUDED.dollar_strength,
			last_updated = EXCLUDED.last_updated`
	_, err := r.db.Exec(query, snapshotKey,
		snapshot.InflationRate, snapshot.GDPGrowth, snapshot.ConsumerPriceIndex,
		snapshot.UnemploymentRate, snapshot.OilPrices, snapshot.DollarStrength,
		snapshot.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to upsert indicators: %w", err)
	}
	return nil
}

// GetIndicators retrieves the latest stored indicator snapshot
func (r *Repository) GetIndicators() (*models.EconomicIndicators, error) {
	snapshot := &models.EconomicIndicators{}
	query := `
		SELECT inflation_rate, gdp_growth, consumer_price_index, unemployment_rate, oil_prices, dollar_strength, last_updated
		FROM finance.economic_indicators
		WHERE key = $1`
	err := r.db.QueryRow(query, snapshotKey).
		Scan(&snapshot.InflationRate, &snapshot.GDPGrowth, &snapshot.ConsumerPriceIndex,
			&snapshot.UnemploymentRate, &snapshot.OilPrices, &snapshot.DollarStrength,
			&snapshot.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no indicator snapshot stored")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get indicators: %w", err)
	}
	return snapshot, nil
}

// SavePrediction appends a prediction history row for the dashboard
func (r *Repository) SavePrediction(p models.PricePrediction) (*models.PredictionRecord, error) {
	record := &models.PredictionRecord{
		ID:                uuid.NewString(),
		ItemName:          p.ItemName,
		CurrentPrice:      p.CurrentPrice,
		PredictedPrice:    p.Predicted30DayPrice,
		SmartBuyScore:     p.SmartBuyScore,
		RecommendedAction: p.RecommendedAction,
	}
	query := `
		INSERT INTO finance.prediction_history
			(id, item_name, current_price, predicted_price, smart_buy_score, recommended_action, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err := r.db.QueryRow(query, record.ID, record.ItemName, record.CurrentPrice,
		record.PredictedPrice, record.SmartBuyScore, record.RecommendedAction).
		Scan(&record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save prediction: %w", err)
	}
	return record, nil
}

// ListPredictions retrieves the most recent prediction history rows
func (r *Repository) ListPredictions(limit int) ([]models.PredictionRecord, error) {
	query := `
		SELECT id, item_name, current_price, predicted_price, smart_buy_score, recommended_action, created_at
		FROM finance.prediction_history
		ORDER BY created_at DESC
		LIMIT $1`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	var records []models.PredictionRecord
	for rows.Next() {
		var rec models.PredictionRecord
		if err := rows.Scan(&rec.ID, &rec.ItemName, &rec.CurrentPrice, &rec.PredictedPrice,
			&rec.SmartBuyScore, &rec.RecommendedAction, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
