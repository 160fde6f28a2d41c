package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexandrekoury/painel-backend/internal/api/handlers"
	custommiddleware "github.com/alexandrekoury/painel-backend/internal/api/middleware"
	"github.com/alexandrekoury/painel-backend/internal/config"
	"github.com/alexandrekoury/painel-backend/internal/service"
)

// Services bundles the service dependencies the router needs.
type Services struct {
	System      *service.SystemService
	Report      *service.ReportService
	Currency    *service.CurrencyService
	Investor    *service.InvestorService
	Exchange    *service.ExchangeService
	Balance     *service.BalanceService
	Transaction *service.TransactionService
	Price       *service.PriceService
	PriceSync   *service.PriceSyncService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		// Valuation report namespace
		r.Route("/dashboard", func(r chi.Router) {
			dashboardHandler := handlers.NewDashboardHandler(services.Report)
			r.Get("/report", dashboardHandler.Report)
			r.Get("/balance-difference", dashboardHandler.BalanceDifference)
			r.Get("/cash-flow", dashboardHandler.CashFlow)
			r.Get("/crypto-variation", dashboardHandler.CryptoVariation)
		})

		r.Route("/currencies", func(r chi.Router) {
			currencyHandler := handlers.NewCurrencyHandler(services.Currency)
			r.Get("/", currencyHandler.Currencies)
			r.Post("/", currencyHandler.CreateCurrency)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", currencyHandler.Currency)
				r.Put("/", currencyHandler.UpdateCurrency)
				r.Delete("/", currencyHandler.DeleteCurrency)

				priceHandler := handlers.NewPriceHandler(services.Price, services.PriceSync)
				r.Get("/prices", priceHandler.PricesForCurrency)
				r.Get("/prices/latest", priceHandler.LatestPriceForCurrency)
			})
		})

		r.Route("/investors", func(r chi.Router) {
			investorHandler := handlers.NewInvestorHandler(services.Investor)
			r.Get("/", investorHandler.Investors)
			r.Post("/", investorHandler.CreateInvestor)
		})

		exchangeHandler := handlers.NewExchangeHandler(services.Exchange, services.Balance)
		r.Route("/exchanges", func(r chi.Router) {
			r.Get("/", exchangeHandler.Exchanges)
			r.Post("/", exchangeHandler.CreateExchange)
		})
		r.Route("/strategies", func(r chi.Router) {
			r.Get("/", exchangeHandler.Strategies)
			r.Post("/", exchangeHandler.CreateStrategy)
		})
		r.Route("/balances", func(r chi.Router) {
			r.Get("/", exchangeHandler.Balances)
			r.Post("/", exchangeHandler.CreateBalance)
		})

		transactionHandler := handlers.NewTransactionHandler(services.Transaction)
		r.Route("/crypto-transactions", func(r chi.Router) {
			r.Get("/", transactionHandler.CryptoTransactions)
			r.Post("/", transactionHandler.CreateCryptoTransaction)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", transactionHandler.DeleteCryptoTransaction)
			})
		})
		r.Route("/investor-transactions", func(r chi.Router) {
			r.Get("/", transactionHandler.InvestorTransactions)
			r.Post("/", transactionHandler.CreateInvestorTransaction)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", transactionHandler.DeleteInvestorTransaction)
			})
		})

		r.Route("/prices", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(services.Price, services.PriceSync)
			r.Post("/", priceHandler.CreatePrice)
			r.Post("/sync", priceHandler.Sync)
		})
	})

	return r
}
