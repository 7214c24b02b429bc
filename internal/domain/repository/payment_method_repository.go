package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/domain/entity"
)

// PaymentMethodRepository defines the interface for configured payment methods
type PaymentMethodRepository interface {
	Create(ctx context.Context, method *entity.PaymentMethod) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error)
	Update(ctx context.Context, method *entity.PaymentMethod) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListEnabled(ctx context.Context) ([]entity.PaymentMethod, error)
	ListAll(ctx context.Context) ([]entity.PaymentMethod, error)
}

// SettingsRepository defines the interface for the single POS settings row
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.PosSettings, error)
	Update(ctx context.Context, settings *entity.PosSettings) error
}
