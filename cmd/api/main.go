package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/splitledger/splitledger/docs"
	"github.com/splitledger/splitledger/internal/config"
	"github.com/splitledger/splitledger/internal/database"
	"github.com/splitledger/splitledger/internal/expense"
	expensesplit "github.com/splitledger/splitledger/internal/expense/split"
	"github.com/splitledger/splitledger/internal/group"
	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/logger"
	"github.com/splitledger/splitledger/internal/settlement"
	"github.com/splitledger/splitledger/internal/stats"
	mw "github.com/splitledger/splitledger/pkg/middleware"
)

// @title        SplitLedger API
// @version      1.0
// @description  Group expense splitting, multi-currency normalization, and debt settlement
// @BasePath     /api/v1
func main() {
	log := logger.Get()
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("Failed to connect to database", "error", err)
	}
	defer db.Close()

	log.Infow("Connected to database", "ledger_currency", cfg.LedgerCurrency)

	splitFactory := expensesplit.NewFactory()

	// Group membership (read-only collaborator)
	groupRepo := group.NewRepository(db)

	// Expense feature
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, groupRepo, splitFactory, cfg.LedgerCurrency)
	expenseHandler := expense.NewHandler(expenseService, log)

	// Settlement feature
	settlementService := settlement.NewService(expenseRepo, groupRepo)
	settlementHandler := settlement.NewHandler(settlementService, log)

	// Balances feature
	ledgerService := ledger.NewService(expenseRepo)
	ledgerHandler := ledger.NewHandler(ledgerService, log)

	// Stats feature
	statsService := stats.NewService(expenseRepo)
	statsHandler := stats.NewHandler(statsService, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.Identity)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/settlements", settlementHandler.Routes())
		r.Mount("/balances", ledgerHandler.Routes())
		r.Mount("/stats", statsHandler.Routes())
	})

	log.Infow("Server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalw("Server failed", "error", err)
	}
}
