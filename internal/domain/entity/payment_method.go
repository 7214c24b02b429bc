package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentMethod is one merchant-configured payable channel. ExchangeRate
// means "1 unit of this currency = ExchangeRate units of the base currency".
type PaymentMethod struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Mode           string          `gorm:"size:100;not null;uniqueIndex:idx_mode_currency" json:"mode"`
	Currency       string          `gorm:"size:10;not null;uniqueIndex:idx_mode_currency" json:"currency"`
	CurrencySymbol string          `gorm:"size:10" json:"currency_symbol,omitempty"`
	ExchangeRate   decimal.Decimal `gorm:"type:decimal(18,6);not null" json:"exchange_rate"`
	DisplayOrder   int             `gorm:"default:0" json:"display_order"`
	Enabled        bool            `gorm:"default:true" json:"enabled"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment method
func (m *PaymentMethod) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentMethod model
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// Spec converts the configured method into a session spec
func (m *PaymentMethod) Spec() PaymentMethodSpec {
	return PaymentMethodSpec{
		Mode:           m.Mode,
		Currency:       m.Currency,
		CurrencySymbol: m.CurrencySymbol,
		ExchangeRate:   m.ExchangeRate,
	}
}

// PosSettings is the merchant-wide POS configuration, a single row
type PosSettings struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BaseCurrency    string         `gorm:"size:10;not null;default:'USD'" json:"base_currency"`
	DefaultCustomer string         `gorm:"size:140" json:"default_customer,omitempty"`
	RestaurantMode  bool           `gorm:"default:true" json:"restaurant_mode"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating the settings row
func (s *PosSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PosSettings model
func (PosSettings) TableName() string {
	return "pos_settings"
}
