package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alexandrekoury/painel-backend/internal/apperrors"
	"github.com/alexandrekoury/painel-backend/internal/model"
	"github.com/alexandrekoury/painel-backend/internal/repository"
)

// CurrencyService handles currency directory business logic.
type CurrencyService struct {
	currencyRepo *repository.CurrencyRepository
	fiatCodes    []string
}

// NewCurrencyService creates a new CurrencyService with the provided repository.
// fiatCodes lists the currency codes excluded from crypto variation processing.
func NewCurrencyService(currencyRepo *repository.CurrencyRepository, fiatCodes []string) *CurrencyService {
	return &CurrencyService{currencyRepo: currencyRepo, fiatCodes: fiatCodes}
}

// GetAllCurrencies retrieves all currencies ordered by code.
func (s *CurrencyService) GetAllCurrencies(ctx context.Context) ([]model.Currency, error) {
	return s.currencyRepo.List(ctx)
}

// GetCurrency retrieves a single currency by ID.
func (s *CurrencyService) GetCurrency(ctx context.Context, id string) (model.Currency, error) {
	currency, err := s.currencyRepo.Get(ctx, id)
	if err != nil {
		return model.Currency{}, err
	}
	if currency.ID == "" {
		return model.Currency{}, apperrors.ErrCurrencyNotFound
	}
	return currency, nil
}

// CreateCurrency creates a new currency with a generated ID.
func (s *CurrencyService) CreateCurrency(ctx context.Context, code, name string) (model.Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || name == "" {
		return model.Currency{}, fmt.Errorf("code and name are required: %w", apperrors.ErrMissingRequiredField)
	}

	currency := model.Currency{
		ID:   uuid.NewString(),
		Code: code,
		Name: name,
	}
	if err := s.currencyRepo.Create(ctx, currency); err != nil {
		return model.Currency{}, err
	}
	return currency, nil
}

// UpdateCurrency updates a currency's code and name.
func (s *CurrencyService) UpdateCurrency(ctx context.Context, currency model.Currency) (model.Currency, error) {
	existing, err := s.GetCurrency(ctx, currency.ID)
	if err != nil {
		return model.Currency{}, err
	}
	if currency.Code != "" {
		existing.Code = strings.ToUpper(strings.TrimSpace(currency.Code))
	}
	if currency.Name != "" {
		existing.Name = currency.Name
	}
	if err := s.currencyRepo.Update(ctx, existing); err != nil {
		return model.Currency{}, err
	}
	return existing, nil
}

// DeleteCurrency removes a currency by ID.
func (s *CurrencyService) DeleteCurrency(ctx context.Context, id string) error {
	if _, err := s.GetCurrency(ctx, id); err != nil {
		return err
	}
	return s.currencyRepo.Delete(ctx, id)
}
