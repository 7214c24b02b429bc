package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/domain/entity"
	"github.com/restodesk/pos-api/internal/domain/repository"
	"github.com/restodesk/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// SettingsService manages the POS settings row and the configured payment
// methods
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	methodRepo   repository.PaymentMethodRepository
	logger       *logrus.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(
	settingsRepo repository.SettingsRepository,
	methodRepo repository.PaymentMethodRepository,
	logger *logrus.Logger,
) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		methodRepo:   methodRepo,
		logger:       logger,
	}
}

// GetSettings returns the POS settings
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.PosSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	return settings, nil
}

// UpdateSettings updates the POS settings
func (s *SettingsService) UpdateSettings(ctx context.Context, settings *entity.PosSettings) (*entity.PosSettings, error) {
	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	if settings.BaseCurrency != "" {
		current.BaseCurrency = settings.BaseCurrency
	}
	current.DefaultCustomer = settings.DefaultCustomer
	current.RestaurantMode = settings.RestaurantMode
	if err := s.settingsRepo.Update(ctx, current); err != nil {
		s.logger.WithError(err).Error("failed to update settings")
		return nil, apperror.ErrInternalServer
	}
	return current, nil
}

// ListPaymentMethods returns all configured payment methods, including
// disabled ones
func (s *SettingsService) ListPaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error) {
	return s.methodRepo.ListAll(ctx)
}

// CreatePaymentMethod adds a payment method. The exchange rate must be
// positive; mode and currency together must be unique.
func (s *SettingsService) CreatePaymentMethod(ctx context.Context, method *entity.PaymentMethod) (*entity.PaymentMethod, error) {
	if method.Mode == "" || method.Currency == "" {
		return nil, apperror.NewBadRequestError("Mode and currency are required")
	}
	if method.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.NewBadRequestError("Exchange rate must be positive")
	}
	if err := s.methodRepo.Create(ctx, method); err != nil {
		s.logger.WithError(err).Error("failed to create payment method")
		return nil, apperror.ErrConflict
	}
	return method, nil
}

// UpdatePaymentMethod updates a payment method's rate, ordering, or enabled
// flag
func (s *SettingsService) UpdatePaymentMethod(ctx context.Context, id uuid.UUID, rate *decimal.Decimal, displayOrder *int, enabled *bool) (*entity.PaymentMethod, error) {
	method, err := s.methodRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	if method == nil {
		return nil, apperror.NewNotFoundError("Payment method")
	}
	if rate != nil {
		if rate.LessThanOrEqual(decimal.Zero) {
			return nil, apperror.NewBadRequestError("Exchange rate must be positive")
		}
		method.ExchangeRate = *rate
	}
	if displayOrder != nil {
		method.DisplayOrder = *displayOrder
	}
	if enabled != nil {
		method.Enabled = *enabled
	}
	if err := s.methodRepo.Update(ctx, method); err != nil {
		s.logger.WithError(err).Error("failed to update payment method")
		return nil, apperror.ErrInternalServer
	}
	return method, nil
}

// DeletePaymentMethod removes a payment method
func (s *SettingsService) DeletePaymentMethod(ctx context.Context, id uuid.UUID) error {
	method, err := s.methodRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.ErrInternalServer
	}
	if method == nil {
		return apperror.NewNotFoundError("Payment method")
	}
	return s.methodRepo.Delete(ctx, id)
}
