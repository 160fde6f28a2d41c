package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexandrekoury/painel-backend/internal/apperrors"
	"github.com/alexandrekoury/painel-backend/internal/model"
	"github.com/alexandrekoury/painel-backend/internal/repository"
)

// PriceService handles coin price quote business logic.
type PriceService struct {
	priceRepo    *repository.PriceRepository
	currencyRepo *repository.CurrencyRepository
}

// NewPriceService creates a new PriceService with the provided repositories.
func NewPriceService(priceRepo *repository.PriceRepository, currencyRepo *repository.CurrencyRepository) *PriceService {
	return &PriceService{priceRepo: priceRepo, currencyRepo: currencyRepo}
}

// GetPricesForCurrency retrieves all quotes for a currency, newest first.
func (s *PriceService) GetPricesForCurrency(ctx context.Context, currencyID string) ([]model.CoinPrice, error) {
	currency, err := s.currencyRepo.Get(ctx, currencyID)
	if err != nil {
		return nil, err
	}
	if currency.ID == "" {
		return nil, apperrors.ErrCurrencyNotFound
	}
	return s.priceRepo.ListByCurrency(ctx, currencyID)
}

// LatestPrice returns the newest stored quote for a currency.
func (s *PriceService) LatestPrice(ctx context.Context, currencyID string) (model.CoinPrice, error) {
	currency, err := s.currencyRepo.Get(ctx, currencyID)
	if err != nil {
		return model.CoinPrice{}, err
	}
	if currency.ID == "" {
		return model.CoinPrice{}, apperrors.ErrCurrencyNotFound
	}

	quote, found, err := s.priceRepo.Latest(ctx, currencyID)
	if err != nil {
		return model.CoinPrice{}, err
	}
	if !found {
		return model.CoinPrice{}, apperrors.ErrQuoteNotFound
	}
	return quote, nil
}

// CreatePrice records a manual price quote.
func (s *PriceService) CreatePrice(ctx context.Context, currencyID string, quoteTime time.Time, price decimal.Decimal) (model.CoinPrice, error) {
	currency, err := s.currencyRepo.Get(ctx, currencyID)
	if err != nil {
		return model.CoinPrice{}, err
	}
	if currency.ID == "" {
		return model.CoinPrice{}, apperrors.ErrCurrencyNotFound
	}
	if price.IsNegative() {
		return model.CoinPrice{}, fmt.Errorf("price cannot be negative: %w", apperrors.ErrMissingRequiredField)
	}

	quote := model.CoinPrice{
		ID:         uuid.NewString(),
		CurrencyID: currencyID,
		QuoteTime:  quoteTime,
		Price:      price,
	}
	if err := s.priceRepo.Insert(ctx, quote); err != nil {
		return model.CoinPrice{}, err
	}
	return quote, nil
}

// QuoteFeed is the contract the sync job needs from the external price feed.
type QuoteFeed interface {
	SimplePrices(ctx context.Context, codes []string, quote string) (map[string]decimal.Decimal, error)
}

// PriceSyncService pulls current quotes from the external feed and stores them
// as coin_price rows. It runs on a schedule and on demand via the API.
type PriceSyncService struct {
	feed         QuoteFeed
	priceRepo    *repository.PriceRepository
	currencyRepo *repository.CurrencyRepository
	fiatCodes    []string
	quoteAsset   string
}

// NewPriceSyncService creates a new PriceSyncService.
func NewPriceSyncService(
	feed QuoteFeed,
	priceRepo *repository.PriceRepository,
	currencyRepo *repository.CurrencyRepository,
	fiatCodes []string,
	quoteAsset string,
) *PriceSyncService {
	return &PriceSyncService{
		feed:         feed,
		priceRepo:    priceRepo,
		currencyRepo: currencyRepo,
		fiatCodes:    fiatCodes,
		quoteAsset:   quoteAsset,
	}
}

// SyncAll fetches a current quote for every non-fiat currency and stores one
// coin_price row per currency the feed knew. Currencies without feed coverage
// are logged and skipped; a feed or store failure aborts the sync.
// Returns the number of quotes stored.
func (s *PriceSyncService) SyncAll(ctx context.Context) (int, error) {
	currencies, err := s.currencyRepo.ListNonFiat(ctx, s.fiatCodes)
	if err != nil {
		return 0, err
	}
	if len(currencies) == 0 {
		return 0, nil
	}

	codes := make([]string, len(currencies))
	for i, currency := range currencies {
		codes[i] = currency.Code
	}

	prices, err := s.feed.SimplePrices(ctx, codes, s.quoteAsset)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch quotes: %w", err)
	}

	now := time.Now().UTC()
	stored := 0
	for _, currency := range currencies {
		price, ok := prices[strings.ToLower(currency.Code)]
		if !ok {
			log.Printf("price sync: no quote for %s, skipping", currency.Code)
			continue
		}

		quote := model.CoinPrice{
			ID:         uuid.NewString(),
			CurrencyID: currency.ID,
			QuoteTime:  now,
			Price:      price,
		}
		if err := s.priceRepo.Insert(ctx, quote); err != nil {
			return stored, err
		}
		stored++
	}

	return stored, nil
}
