package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/alexandrekoury/painel-backend/internal/apperrors"
	"github.com/alexandrekoury/painel-backend/internal/model"
	"github.com/alexandrekoury/painel-backend/internal/repository"
)

// ExchangeService handles exchange and strategy business logic.
// Exchange API credentials are fernet-encrypted before they reach the
// database and are only decrypted on explicit request.
type ExchangeService struct {
	exchangeRepo *repository.ExchangeRepository
	fernetKey    *fernet.Key
}

// NewExchangeService creates a new ExchangeService. fernetKey is the base64
// key used to encrypt API credentials at rest; an empty key disables
// credential storage.
func NewExchangeService(exchangeRepo *repository.ExchangeRepository, fernetKey string) (*ExchangeService, error) {
	svc := &ExchangeService{exchangeRepo: exchangeRepo}

	if fernetKey != "" {
		key, err := fernet.DecodeKey(fernetKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode fernet key: %w", err)
		}
		svc.fernetKey = key
	}

	return svc, nil
}

// GetAllExchanges retrieves all exchanges. API keys are never included.
func (s *ExchangeService) GetAllExchanges(ctx context.Context) ([]model.Exchange, error) {
	exchanges, err := s.exchangeRepo.ListExchanges(ctx)
	if err != nil {
		return nil, err
	}
	for i := range exchanges {
		exchanges[i].APIKey = ""
	}
	return exchanges, nil
}

// CreateExchange creates a new exchange. A non-empty apiKey is encrypted
// before storage.
func (s *ExchangeService) CreateExchange(ctx context.Context, name, description, apiKey string) (model.Exchange, error) {
	if name == "" {
		return model.Exchange{}, fmt.Errorf("name is required: %w", apperrors.ErrMissingRequiredField)
	}

	exchange := model.Exchange{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		UpdatedAt:   time.Now().UTC(),
	}

	if apiKey != "" {
		if s.fernetKey == nil {
			return model.Exchange{}, fmt.Errorf("cannot store API key: no encryption key configured")
		}
		token, err := fernet.EncryptAndSign([]byte(apiKey), s.fernetKey)
		if err != nil {
			return model.Exchange{}, fmt.Errorf("failed to encrypt API key: %w", err)
		}
		exchange.APIKey = string(token)
	}

	if err := s.exchangeRepo.CreateExchange(ctx, exchange); err != nil {
		return model.Exchange{}, err
	}

	exchange.APIKey = ""
	return exchange, nil
}

// APIKey decrypts and returns the stored API credential for an exchange.
// TTL zero: stored credentials do not expire.
func (s *ExchangeService) APIKey(ctx context.Context, exchangeID string) (string, error) {
	exchange, err := s.exchangeRepo.GetExchange(ctx, exchangeID)
	if err != nil {
		return "", err
	}
	if exchange.ID == "" {
		return "", apperrors.ErrExchangeNotFound
	}
	if exchange.APIKey == "" || s.fernetKey == nil {
		return "", nil
	}

	plain := fernet.VerifyAndDecrypt([]byte(exchange.APIKey), 0, []*fernet.Key{s.fernetKey})
	if plain == nil {
		return "", fmt.Errorf("failed to decrypt API key for exchange %s", exchangeID)
	}
	return string(plain), nil
}

// GetAllStrategies retrieves all strategies.
func (s *ExchangeService) GetAllStrategies(ctx context.Context) ([]model.Strategy, error) {
	return s.exchangeRepo.ListStrategies(ctx)
}

// CreateStrategy creates a new strategy with a generated ID.
func (s *ExchangeService) CreateStrategy(ctx context.Context, name, description string) (model.Strategy, error) {
	if name == "" {
		return model.Strategy{}, fmt.Errorf("name is required: %w", apperrors.ErrMissingRequiredField)
	}

	strategy := model.Strategy{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
	}
	if err := s.exchangeRepo.CreateStrategy(ctx, strategy); err != nil {
		return model.Strategy{}, err
	}
	return strategy, nil
}
