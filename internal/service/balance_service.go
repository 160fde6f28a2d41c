package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexandrekoury/painel-backend/internal/apperrors"
	"github.com/alexandrekoury/painel-backend/internal/model"
	"github.com/alexandrekoury/painel-backend/internal/repository"
)

// BalanceService handles custodial balance snapshot business logic.
type BalanceService struct {
	balanceRepo  *repository.BalanceRepository
	exchangeRepo *repository.ExchangeRepository
}

// NewBalanceService creates a new BalanceService with the provided repositories.
func NewBalanceService(balanceRepo *repository.BalanceRepository, exchangeRepo *repository.ExchangeRepository) *BalanceService {
	return &BalanceService{balanceRepo: balanceRepo, exchangeRepo: exchangeRepo}
}

// GetAllBalances retrieves all balance snapshots, newest first.
func (s *BalanceService) GetAllBalances(ctx context.Context) ([]model.ExchangeBalance, error) {
	return s.balanceRepo.List(ctx)
}

// GetBalancesOnDate retrieves the snapshots taken on a calendar date.
func (s *BalanceService) GetBalancesOnDate(ctx context.Context, date time.Time) ([]model.ExchangeBalance, error) {
	return s.balanceRepo.BalancesOnDate(ctx, date)
}

// CreateBalance records a new point-in-time balance snapshot.
func (s *BalanceService) CreateBalance(
	ctx context.Context,
	exchangeID, strategyID, currencyID string,
	updateDatetime time.Time,
	balance decimal.Decimal,
) (model.ExchangeBalance, error) {
	exchange, err := s.exchangeRepo.GetExchange(ctx, exchangeID)
	if err != nil {
		return model.ExchangeBalance{}, err
	}
	if exchange.ID == "" {
		return model.ExchangeBalance{}, apperrors.ErrExchangeNotFound
	}
	if currencyID == "" {
		return model.ExchangeBalance{}, fmt.Errorf("currency is required: %w", apperrors.ErrMissingRequiredField)
	}

	snapshot := model.ExchangeBalance{
		ID:             uuid.NewString(),
		ExchangeID:     exchangeID,
		StrategyID:     strategyID,
		CurrencyID:     currencyID,
		UpdateDatetime: updateDatetime,
		Balance:        balance,
	}
	if err := s.balanceRepo.Create(ctx, snapshot); err != nil {
		return model.ExchangeBalance{}, err
	}
	return snapshot, nil
}
