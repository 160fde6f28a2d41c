package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alexandrekoury/painel-backend/internal/apperrors"
	"github.com/alexandrekoury/painel-backend/internal/model"
	"github.com/alexandrekoury/painel-backend/internal/repository"
)

// InvestorService handles investor business logic.
type InvestorService struct {
	investorRepo *repository.InvestorRepository
}

// NewInvestorService creates a new InvestorService with the provided repository.
func NewInvestorService(investorRepo *repository.InvestorRepository) *InvestorService {
	return &InvestorService{investorRepo: investorRepo}
}

// GetAllInvestors retrieves all investors.
func (s *InvestorService) GetAllInvestors(ctx context.Context) ([]model.Investor, error) {
	return s.investorRepo.List(ctx)
}

// GetInvestor retrieves a single investor by ID.
func (s *InvestorService) GetInvestor(ctx context.Context, id string) (model.Investor, error) {
	investor, err := s.investorRepo.Get(ctx, id)
	if err != nil {
		return model.Investor{}, err
	}
	if investor.ID == "" {
		return model.Investor{}, apperrors.ErrInvestorNotFound
	}
	return investor, nil
}

// CreateInvestor creates a new investor with a generated ID.
func (s *InvestorService) CreateInvestor(ctx context.Context, alias, username string) (model.Investor, error) {
	if alias == "" {
		return model.Investor{}, fmt.Errorf("alias is required: %w", apperrors.ErrMissingRequiredField)
	}

	investor := model.Investor{
		ID:       uuid.NewString(),
		Alias:    alias,
		Username: username,
	}
	if err := s.investorRepo.Create(ctx, investor); err != nil {
		return model.Investor{}, err
	}
	return investor, nil
}
