package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SubmissionItem is one cart line serialized into a submission payload
type SubmissionItem struct {
	Code     string          `json:"code"`
	Name     string          `json:"name,omitempty"`
	Quantity int             `json:"qty"`
	Rate     decimal.Decimal `json:"rate"`
	Remark   string          `json:"remark,omitempty"`
}

// SubmissionPayload is the opaque request handed to the posting backend. For
// multi-currency payments the raw per-currency tender rides along so the
// backend can record the original amounts, not just the base breakdown.
type SubmissionPayload struct {
	Kind         enum.TransactionKind `json:"kind"`
	Customer     string               `json:"customer,omitempty"`
	CustomerName string               `json:"customer_name,omitempty"`
	Table        string               `json:"table,omitempty"`
	Waiter       string               `json:"waiter,omitempty"`
	ExistingRef  *DocumentRef         `json:"existing_ref,omitempty"`
	Items        []SubmissionItem     `json:"items"`
	Breakdown    []BreakdownLine      `json:"breakdown,omitempty"`
	Label        string               `json:"payment_method,omitempty"`
	Amount       *decimal.Decimal     `json:"amount,omitempty"`
	RawTender    map[string]string    `json:"raw_tender,omitempty"`
	Note         string               `json:"note,omitempty"`
}

// PendingSubmission is the durable record of an optimistic submission. The
// cart is cleared and success reported as soon as this row exists; the actual
// remote outcome is reconciled into it afterwards, so a background failure is
// reportable instead of silently lost.
type PendingSubmission struct {
	ID            uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	Reference     string                `gorm:"size:100;unique;not null" json:"reference"`
	TerminalCode  string                `gorm:"size:100;index" json:"terminal_code"`
	Kind          enum.TransactionKind  `gorm:"default:0" json:"kind"`
	Status        enum.SubmissionStatus `gorm:"default:0;index" json:"status"`
	Payload       string                `gorm:"type:jsonb;not null" json:"-"`
	RemoteRef     string                `gorm:"size:140" json:"remote_ref,omitempty"`
	Attempts      int                   `gorm:"default:0" json:"attempts"`
	LastError     string                `gorm:"type:text" json:"last_error,omitempty"`
	NextAttemptAt *time.Time            `gorm:"index" json:"next_attempt_at,omitempty"`
	CompletedAt   *time.Time            `json:"completed_at,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	DeletedAt     gorm.DeletedAt        `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new pending submission
func (p *PendingSubmission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PendingSubmission model
func (PendingSubmission) TableName() string {
	return "pending_submissions"
}

// SetPayload serializes the payload into the record
func (p *PendingSubmission) SetPayload(payload *SubmissionPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	p.Payload = string(data)
	return nil
}

// GetPayload deserializes the stored payload
func (p *PendingSubmission) GetPayload() (*SubmissionPayload, error) {
	var payload SubmissionPayload
	if err := json.Unmarshal([]byte(p.Payload), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SubmissionResult is the success/failure envelope returned by the posting
// backend. Message and details are surfaced to the user verbatim on failure.
type SubmissionResult struct {
	Success   bool   `json:"success"`
	RemoteRef string `json:"remote_ref,omitempty"`
	Message   string `json:"message,omitempty"`
	Details   string `json:"details,omitempty"`
}
