package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/domain/entity"
	"github.com/restodesk/pos-api/internal/domain/repository"
	"github.com/restodesk/pos-api/pkg/apperror"
	"github.com/sirupsen/logrus"
)

// SessionService owns the live order-composition sessions and their cart and
// context mutations. All local mutations are synchronous; only catalog
// lookups leave the process.
type SessionService struct {
	store        repository.SessionStore
	settingsRepo repository.SettingsRepository
	catalog      CatalogGateway
	logger       *logrus.Logger
}

// NewSessionService creates a new session service
func NewSessionService(
	store repository.SessionStore,
	settingsRepo repository.SettingsRepository,
	catalog CatalogGateway,
	logger *logrus.Logger,
) *SessionService {
	return &SessionService{
		store:        store,
		settingsRepo: settingsRepo,
		catalog:      catalog,
		logger:       logger,
	}
}

// StartSession creates a session for a terminal. The context starts as a
// take-away order with the merchant's default customer seeded, matching the
// dashboard's initial state.
func (s *SessionService) StartSession(ctx context.Context, terminalCode string) (*entity.Session, error) {
	session := entity.NewSession(terminalCode)
	session.Context.StartTakeAway()

	if settings, err := s.settingsRepo.Get(ctx); err == nil && settings.DefaultCustomer != "" {
		session.Context.CustomerID = settings.DefaultCustomer
	} else if err != nil {
		s.logger.WithError(err).Warn("could not load settings for default customer")
	}

	s.store.Put(session)
	return session, nil
}

// GetSession retrieves a session by ID
func (s *SessionService) GetSession(id uuid.UUID) (*entity.Session, error) {
	session, ok := s.store.Get(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Session")
	}
	return session, nil
}

// EndSession discards a session
func (s *SessionService) EndSession(id uuid.UUID) {
	s.store.Delete(id)
}

// PruneIdle drops sessions idle for longer than maxIdle and returns how
// many were removed
func (s *SessionService) PruneIdle(maxIdle time.Duration) int {
	removed := s.store.PruneOlderThan(int(maxIdle.Seconds()))
	if removed > 0 {
		s.logger.WithField("removed", removed).Info("pruned idle sessions")
	}
	return removed
}

// StartJanitor prunes idle sessions on a fixed interval until ctx is
// cancelled. Terminals that disappear without ending their session would
// otherwise hold it forever.
func (s *SessionService) StartJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if maxIdle <= 0 {
		maxIdle = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.PruneIdle(maxIdle)
		}
	}
}

// AddItem adds a normalized candidate to the session's cart. Stock and
// unit-of-measure ambiguity must be resolved by the caller beforehand.
func (s *SessionService) AddItem(id uuid.UUID, candidate entity.ItemCandidate) error {
	session, err := s.GetSession(id)
	if err != nil {
		return err
	}
	return session.WithLock(func() error {
		return session.Cart.AddItem(candidate)
	})
}

// UpdateItem applies a partial update to a cart line
func (s *SessionService) UpdateItem(id uuid.UUID, identifier string, patch entity.ItemPatch) error {
	session, err := s.GetSession(id)
	if err != nil {
		return err
	}
	return session.WithLock(func() error {
		return session.Cart.UpdateItem(identifier, patch)
	})
}

// RemoveItem removes a cart line. Removing an absent line is a no-op.
func (s *SessionService) RemoveItem(id uuid.UUID, identifier string) error {
	session, err := s.GetSession(id)
	if err != nil {
		return err
	}
	return session.WithLock(func() error {
		session.Cart.RemoveItem(identifier)
		return nil
	})
}

// ClearCart empties the session's cart
func (s *SessionService) ClearCart(id uuid.UUID) error {
	session, err := s.GetSession(id)
	if err != nil {
		return err
	}
	return session.WithLock(func() error {
		session.Cart.Clear()
		return nil
	})
}

// StartTakeAway switches the session to a new take-away order. The default
// customer is re-seeded when the context has none.
func (s *SessionService) StartTakeAway(ctx context.Context, id uuid.UUID) error {
	session, err := s.GetSession(id)
	if err != nil {
		return err
	}
	return session.WithLock(func() error {
		session.Context.StartTakeAway()
		session.ClosePayment()
		if session.Context.CustomerID == "" {
			if settings, err := s.settingsRepo.Get(ctx); err == nil {
				session.Context.CustomerID = settings.DefaultCustomer
			}
		}
		return nil
	})
}

// StartDineIn binds the session to a table and waiter, optionally in edit
// mode for an existing order
func (s *SessionService) StartDineIn(id uuid.UUID, tableID, waiterID, existingOrderID, customerName string) error {
	session, err := s.GetSession(id)
	if err != nil {
		return err
	}
	return session.WithLock(func() error {
		session.Context.StartDineIn(tableID, waiterID, existingOrderID, customerName)
		session.ClosePayment()
		return nil
	})
}

// StartQuotationEdit loads an existing quotation into the session: the cart
// is replaced with the quotation's items and the customer is rebound. The
// previous cart contents are invalidated by the switch.
func (s *SessionService) StartQuotationEdit(id uuid.UUID, ref entity.DocumentRef, customerID, customerName string, items []entity.ItemCandidate) error {
	session, err := s.GetSession(id)
	if err != nil {
		return err
	}
	return session.WithLock(func() error {
		session.Cart.Clear()
		for _, candidate := range items {
			if err := session.Cart.AddItem(candidate); err != nil {
				return err
			}
		}
		session.Context.StartQuotationEdit(ref)
		session.Context.CustomerID = customerID
		session.Context.CustomerName = customerName
		session.ClosePayment()
		return nil
	})
}

// StartConversion binds the session to a quotation being converted into a
// payable sales invoice
func (s *SessionService) StartConversion(id uuid.UUID, ref entity.DocumentRef, customerID, customerName string, items []entity.ItemCandidate) error {
	session, err := s.GetSession(id)
	if err != nil {
		return err
	}
	return session.WithLock(func() error {
		if len(items) > 0 {
			session.Cart.Clear()
			for _, candidate := range items {
				if err := session.Cart.AddItem(candidate); err != nil {
					return err
				}
			}
		}
		session.Context.StartConversion(ref)
		session.Context.CustomerID = customerID
		session.Context.CustomerName = customerName
		session.ClosePayment()
		return nil
	})
}

// SetCustomer binds a customer to the session
func (s *SessionService) SetCustomer(id uuid.UUID, customerID, customerName string) error {
	session, err := s.GetSession(id)
	if err != nil {
		return err
	}
	return session.WithLock(func() error {
		session.Context.CustomerID = customerID
		session.Context.CustomerName = customerName
		return nil
	})
}

// Validate returns the preconditions currently blocking submission
func (s *SessionService) Validate(id uuid.UUID) ([]apperror.FieldError, error) {
	session, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}
	return session.Context.ValidateForSubmission(session.Cart), nil
}

// CheckStock proxies a stock lookup to the catalog backend
func (s *SessionService) CheckStock(ctx context.Context, itemCode string) (float64, error) {
	return s.catalog.CheckStock(ctx, itemCode)
}

// UnitsOfMeasure proxies a unit-of-measure lookup to the catalog backend
func (s *SessionService) UnitsOfMeasure(ctx context.Context, itemCode string) ([]string, error) {
	return s.catalog.UnitsOfMeasure(ctx, itemCode)
}
