package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/Dan9191/finance-dashboard/internal/config"
	"github.com/Dan9191/finance-dashboard/internal/handler"
	"github.com/Dan9191/finance-dashboard/internal/integrations/claude"
	"github.com/Dan9191/finance-dashboard/internal/integrations/macro"
	"github.com/Dan9191/finance-dashboard/internal/middleware"
	"github.com/Dan9191/finance-dashboard/internal/prediction"
	"github.com/Dan9191/finance-dashboard/internal/repository"
	"github.com/Dan9191/finance-dashboard/internal/service"
	"github.com/Dan9191/finance-dashboard/internal/utils/email"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// serverWriteTimeout sizes the response deadline around the largest batch
// prediction request, which paces itself between groups and retries model
// calls with backoff. Headroom on top covers model and network latency.
func serverWriteTimeout() time.Duration {
	return prediction.WaitBudget(handler.MaxBatchItems) + 30*time.Second
}

func main() {
	// Load .env for local development, ignore when absent
	godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	macroClient := macro.NewClient(cfg, logger)
	reasoner := claude.NewClient(cfg, logger)

	var sender *email.Sender
	if cfg.SMTPHost != "" && cfg.SenderEmail != "" {
		sender = email.NewSender(cfg, logger)
	}

	svc, err := service.NewService(repo, macroClient, reasoner, sender, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize service: %v", err)
	}
	h := handler.NewHandler(svc)

	// Hourly indicator refresh and smart-buy digest
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", svc.RefreshIndicators); err != nil {
		logger.Fatalf("Failed to schedule indicator refresh: %v", err)
	}
	if _, err := scheduler.AddFunc("0 8 * * *", svc.SendSmartBuyDigest); err != nil {
		logger.Fatalf("Failed to schedule smart-buy digest: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/indicators", h.GetIndicators).Methods("GET")
	authRouter.HandleFunc("/predictions", h.PredictPrice).Methods("POST")
	authRouter.HandleFunc("/predictions/batch", h.PredictPricesBatch).Methods("POST")
	authRouter.HandleFunc("/predictions/history", h.PredictionHistory).Methods("GET")
	authRouter.HandleFunc("/scenarios/analyze", h.AnalyzeScenario).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: serverWriteTimeout(),
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
