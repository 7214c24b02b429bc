package entity

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one order-composition session: a cart, the context describing
// what the cart will become, and at most one open payment session. Each
// session is owned by exactly one terminal/UI session; the mutex only guards
// against the HTTP server delivering that owner's requests concurrently.
type Session struct {
	ID           uuid.UUID           `json:"id"`
	TerminalCode string              `json:"terminal_code,omitempty"`
	Cart         *Cart               `json:"-"`
	Context      *TransactionContext `json:"context"`
	Payment      *PaymentSession     `json:"payment,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`

	mu sync.Mutex
}

// NewSession creates a session with an empty cart and an uninitialized
// transaction context
func NewSession(terminalCode string) *Session {
	now := time.Now()
	return &Session{
		ID:           uuid.New(),
		TerminalCode: terminalCode,
		Cart:         NewCart(),
		Context:      NewTransactionContext(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// WithLock runs fn while holding the session lock and bumps UpdatedAt
func (s *Session) WithLock(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := fn()
	s.UpdatedAt = time.Now()
	return err
}

// ClosePayment discards the payment session, if any
func (s *Session) ClosePayment() {
	s.Payment = nil
}
