package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/alexandrekoury/painel-backend/internal/api"
	"github.com/alexandrekoury/painel-backend/internal/config"
	"github.com/alexandrekoury/painel-backend/internal/database"
	"github.com/alexandrekoury/painel-backend/internal/pricefeed"
	"github.com/alexandrekoury/painel-backend/internal/repository"
	"github.com/alexandrekoury/painel-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	currencyRepo := repository.NewCurrencyRepository(db)
	investorRepo := repository.NewInvestorRepository(db)
	exchangeRepo := repository.NewExchangeRepository(db)
	balanceRepo := repository.NewBalanceRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	cashFlowRepo := repository.NewCashFlowRepository(db)
	priceRepo := repository.NewPriceRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	reportService := service.NewReportService(
		ledgerRepo,
		cashFlowRepo,
		balanceRepo,
		currencyRepo,
		priceRepo,
		cfg.Valuation.FiatCodes,
	)
	currencyService := service.NewCurrencyService(currencyRepo, cfg.Valuation.FiatCodes)
	investorService := service.NewInvestorService(investorRepo)
	exchangeService, err := service.NewExchangeService(exchangeRepo, cfg.Secrets.FernetKey)
	if err != nil {
		log.Fatalf("Failed to create exchange service: %v", err)
	}
	balanceService := service.NewBalanceService(balanceRepo, exchangeRepo)
	transactionService := service.NewTransactionService(ledgerRepo, cashFlowRepo, currencyRepo)
	priceService := service.NewPriceService(priceRepo, currencyRepo)

	feedClient := pricefeed.NewClient(cfg.PriceFeed.BaseURL)
	priceSyncService := service.NewPriceSyncService(
		feedClient,
		priceRepo,
		currencyRepo,
		cfg.Valuation.FiatCodes,
		cfg.PriceFeed.QuoteAsset,
	)

	// Schedule the daily price sync
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.PriceFeed.SyncSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		stored, err := priceSyncService.SyncAll(ctx)
		if err != nil {
			log.Printf("Scheduled price sync failed: %v", err)
			return
		}
		log.Printf("Scheduled price sync stored %d quotes", stored)
	})
	if err != nil {
		log.Fatalf("Failed to schedule price sync: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Report:      reportService,
		Currency:    currencyService,
		Investor:    investorService,
		Exchange:    exchangeService,
		Balance:     balanceService,
		Transaction: transactionService,
		Price:       priceService,
		PriceSync:   priceSyncService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
