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

// TransactionService handles the write side of both ledgers: crypto
// transactions and investor cash/kind transactions. The valuation engine only
// reads these records; all mutation goes through here.
type TransactionService struct {
	ledgerRepo   *repository.LedgerRepository
	cashFlowRepo *repository.CashFlowRepository
	currencyRepo *repository.CurrencyRepository
}

// NewTransactionService creates a new TransactionService with the provided repositories.
func NewTransactionService(
	ledgerRepo *repository.LedgerRepository,
	cashFlowRepo *repository.CashFlowRepository,
	currencyRepo *repository.CurrencyRepository,
) *TransactionService {
	return &TransactionService{
		ledgerRepo:   ledgerRepo,
		cashFlowRepo: cashFlowRepo,
		currencyRepo: currencyRepo,
	}
}

// GetAllCryptoTransactions retrieves all crypto ledger entries, date-ascending.
func (s *TransactionService) GetAllCryptoTransactions(ctx context.Context) ([]model.CryptoTransaction, error) {
	return s.ledgerRepo.List(ctx)
}

// CreateCryptoTransaction records a new crypto ledger entry. Amount is signed:
// positive for buys, negative for sells. Price must be non-negative.
func (s *TransactionService) CreateCryptoTransaction(
	ctx context.Context,
	currencyID, investorID string,
	effectiveDate time.Time,
	amount, price decimal.Decimal,
) (model.CryptoTransaction, error) {
	currency, err := s.currencyRepo.Get(ctx, currencyID)
	if err != nil {
		return model.CryptoTransaction{}, err
	}
	if currency.ID == "" {
		return model.CryptoTransaction{}, apperrors.ErrCurrencyNotFound
	}
	if amount.IsZero() {
		return model.CryptoTransaction{}, fmt.Errorf("amount is required: %w", apperrors.ErrMissingRequiredField)
	}
	if price.IsNegative() {
		return model.CryptoTransaction{}, fmt.Errorf("price cannot be negative: %w", apperrors.ErrMissingRequiredField)
	}

	transaction := model.CryptoTransaction{
		ID:            uuid.NewString(),
		CurrencyID:    currencyID,
		InvestorID:    investorID,
		EffectiveDate: effectiveDate,
		Amount:        amount,
		Price:         price,
	}
	if err := s.ledgerRepo.Create(ctx, transaction); err != nil {
		return model.CryptoTransaction{}, err
	}
	return transaction, nil
}

// DeleteCryptoTransaction removes a crypto ledger entry by ID.
func (s *TransactionService) DeleteCryptoTransaction(ctx context.Context, id string) error {
	return s.ledgerRepo.Delete(ctx, id)
}

// GetAllInvestorTransactions retrieves all investor transactions, date-ascending.
func (s *TransactionService) GetAllInvestorTransactions(ctx context.Context) ([]model.InvestorTransaction, error) {
	return s.cashFlowRepo.List(ctx)
}

// validTransactionTypes is the closed set of investor movement kinds.
var validTransactionTypes = map[string]bool{
	model.TransactionCashDeposit:    true,
	model.TransactionCashRedemption: true,
	model.TransactionKindDeposit:    true,
	model.TransactionKindRedemption: true,
}

// CreateInvestorTransaction records a new investor cash/kind movement.
func (s *TransactionService) CreateInvestorTransaction(ctx context.Context, t model.InvestorTransaction) (model.InvestorTransaction, error) {
	if t.InvestorID == "" {
		return model.InvestorTransaction{}, fmt.Errorf("investor is required: %w", apperrors.ErrMissingRequiredField)
	}
	if !validTransactionTypes[t.Type] {
		return model.InvestorTransaction{}, fmt.Errorf("type %q: %w", t.Type, apperrors.ErrInvalidTransactionType)
	}

	t.ID = uuid.NewString()
	if err := s.cashFlowRepo.Create(ctx, t); err != nil {
		return model.InvestorTransaction{}, err
	}
	return t, nil
}

// DeleteInvestorTransaction removes an investor transaction by ID.
func (s *TransactionService) DeleteInvestorTransaction(ctx context.Context, id string) error {
	return s.cashFlowRepo.Delete(ctx, id)
}
