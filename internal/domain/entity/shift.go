package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Shift is one cashier shift on a terminal. While the shift is open, every
// finalized payment accumulates expected per-method totals on it; closing the
// shift records the counted amounts and the expected-vs-counted variance.
// This is till reconciliation, a separate concern from payment-at-sale.
type Shift struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	TerminalCode string           `gorm:"size:100;not null;index" json:"terminal_code"`
	Cashier      string           `gorm:"size:140" json:"cashier,omitempty"`
	Status       enum.ShiftStatus `gorm:"default:0;index" json:"status"`
	OpenedAt     time.Time        `gorm:"not null" json:"opened_at"`
	ClosedAt     *time.Time       `json:"closed_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Lines []ShiftLine `gorm:"foreignKey:ShiftID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new shift
func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shift model
func (Shift) TableName() string {
	return "shifts"
}

// ShiftLine tracks one payment method's expected and counted totals for a
// shift. Variance = counted - expected, set at close time.
type ShiftLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ShiftID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"shift_id"`
	MethodKey string          `gorm:"size:120;not null" json:"method_key"`
	Mode      string          `gorm:"size:100;not null" json:"mode"`
	Currency  string          `gorm:"size:10;not null" json:"currency"`
	Expected  decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"expected"`
	Counted   decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"counted"`
	Variance  decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"variance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	Shift Shift `gorm:"foreignKey:ShiftID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new shift line
func (l *ShiftLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ShiftLine model
func (ShiftLine) TableName() string {
	return "shift_lines"
}
