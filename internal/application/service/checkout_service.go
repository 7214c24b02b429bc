package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/domain/entity"
	"github.com/restodesk/pos-api/internal/domain/enum"
	"github.com/restodesk/pos-api/internal/domain/repository"
	"github.com/restodesk/pos-api/pkg/apperror"
	"github.com/restodesk/pos-api/pkg/retry"
	"github.com/restodesk/pos-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	dispatchBaseBackoff = 5 * time.Second
	dispatchMaxBackoff  = 10 * time.Minute
	dispatchTimeout     = 30 * time.Second
)

// DefaultCurrencyRates is the fallback rate table used to synthesize cash
// payment methods when none are configured yet. The base currency always
// gets rate 1 regardless of this table.
var DefaultCurrencyRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(1),
	"KHR": decimal.NewFromFloat(0.00025),
	"THB": decimal.NewFromFloat(0.031),
}

// CheckoutService runs payment collection and submission. Orders and
// quotations submit synchronously so the cashier sees backend failures
// immediately and keeps the cart. Paid checkouts are recorded durably first
// and dispatched in the background so the terminal never blocks on the
// backend; the reconciliation worker retries whatever the first dispatch
// could not deliver.
type CheckoutService struct {
	store        repository.SessionStore
	methodRepo   repository.PaymentMethodRepository
	settingsRepo repository.SettingsRepository
	subRepo      repository.PendingSubmissionRepository
	shiftService *ShiftService
	posting      PostingGateway
	retryPolicy  retry.Policy
	logger       *logrus.Logger
	maxAttempts  int
	defaultRates map[string]decimal.Decimal
}

// NewCheckoutService creates a new checkout service. maxAttempts bounds
// background dispatch attempts before a submission is marked dead.
func NewCheckoutService(
	store repository.SessionStore,
	methodRepo repository.PaymentMethodRepository,
	settingsRepo repository.SettingsRepository,
	subRepo repository.PendingSubmissionRepository,
	shiftService *ShiftService,
	posting PostingGateway,
	logger *logrus.Logger,
	maxAttempts int,
	defaultRates map[string]decimal.Decimal,
) *CheckoutService {
	if maxAttempts < 1 {
		maxAttempts = 5
	}
	return &CheckoutService{
		store:        store,
		methodRepo:   methodRepo,
		settingsRepo: settingsRepo,
		subRepo:      subRepo,
		shiftService: shiftService,
		posting:      posting,
		retryPolicy:  retry.Default(),
		logger:       logger,
		maxAttempts:  maxAttempts,
		defaultRates: defaultRates,
	}
}

func (s *CheckoutService) session(id uuid.UUID) (*entity.Session, error) {
	session, ok := s.store.Get(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Session")
	}
	return session, nil
}

// OpenPayment opens a payment session against the cart's current total using
// the configured payment methods. An already-open payment session is
// replaced.
func (s *CheckoutService) OpenPayment(ctx context.Context, sessionID uuid.UUID) (*entity.PaymentSession, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	if fieldErrors := session.Context.ValidateForSubmission(session.Cart); len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	methods, err := s.methodRepo.ListEnabled(ctx)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	specs := make([]entity.PaymentMethodSpec, 0, len(methods))
	for _, m := range methods {
		specs = append(specs, m.Spec())
	}

	var payment *entity.PaymentSession
	err = session.WithLock(func() error {
		payment = entity.OpenPaymentSession(session.Cart.Total(), settings.BaseCurrency, specs, s.defaultRates)
		session.Payment = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// SetPaymentAmount records the raw amount entered against one payment method
// and returns the recomputed status
func (s *CheckoutService) SetPaymentAmount(sessionID uuid.UUID, key, raw string) (*entity.PaymentStatus, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var status entity.PaymentStatus
	err = session.WithLock(func() error {
		if session.Payment == nil {
			return apperror.ErrNoOpenPayment
		}
		if err := session.Payment.SetAmount(key, raw); err != nil {
			return err
		}
		status = session.Payment.Status()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// PaymentStatus returns the open payment session's current status
func (s *CheckoutService) PaymentStatus(sessionID uuid.UUID) (*entity.PaymentStatus, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	var status entity.PaymentStatus
	err = session.WithLock(func() error {
		if session.Payment == nil {
			return apperror.ErrNoOpenPayment
		}
		status = session.Payment.Status()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// SubmitOrder submits the cart as an unpaid order (take-away or dine-in),
// synchronously. On backend failure the cart and context are preserved so
// the cashier can retry; on success the session resets to a fresh take-away
// order.
func (s *CheckoutService) SubmitOrder(ctx context.Context, sessionID uuid.UUID, note string) (*entity.SubmissionResult, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var payload *entity.SubmissionPayload
	err = session.WithLock(func() error {
		if fieldErrors := session.Context.ValidateForSubmission(session.Cart); len(fieldErrors) > 0 {
			return apperror.NewValidationError(fieldErrors)
		}
		payload = buildPayload(session, nil, note)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result, err := s.postWithRetries(ctx, payload, s.posting.SubmitOrder)
	if err != nil {
		return nil, err
	}

	s.resetSession(ctx, session)
	return result, nil
}

// SubmitQuotation submits the cart as a quotation, synchronously. The bound
// existing quotation, if any, is updated in place.
func (s *CheckoutService) SubmitQuotation(ctx context.Context, sessionID uuid.UUID, note string) (*entity.SubmissionResult, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var payload *entity.SubmissionPayload
	err = session.WithLock(func() error {
		if session.Context.CustomerID == "" {
			return apperror.ErrMissingCustomer
		}
		if session.Cart.IsEmpty() {
			return apperror.ErrEmptyCart
		}
		payload = buildPayload(session, nil, note)
		payload.Kind = enum.TransactionKindQuotation
		return nil
	})
	if err != nil {
		return nil, err
	}

	result, err := s.postWithRetries(ctx, payload, s.posting.SubmitQuotation)
	if err != nil {
		return nil, err
	}

	s.resetSession(ctx, session)
	return result, nil
}

// Checkout finalizes the open payment session and records the sale as a
// durable pending submission, then clears the session so the cashier can
// serve the next customer immediately. Dispatch to the backend happens in
// the background; the returned record carries the local reference the sale
// can be traced by.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID uuid.UUID, note string) (*entity.PendingSubmission, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var (
		payload   *entity.SubmissionPayload
		breakdown *entity.PaymentBreakdown
	)
	err = session.WithLock(func() error {
		if session.Payment == nil {
			return apperror.ErrNoOpenPayment
		}
		if fieldErrors := session.Context.ValidateForSubmission(session.Cart); len(fieldErrors) > 0 {
			return apperror.NewValidationError(fieldErrors)
		}
		if session.Context.CustomerID == "" {
			return apperror.ErrMissingCustomer
		}

		var err error
		breakdown, err = session.Payment.FinalizeBreakdown()
		if err != nil {
			return err
		}
		payload = buildPayload(session, breakdown, note)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The lease keeps the worker off the record while the inline dispatch is
	// in flight. It expires with the dispatch timeout, so a crash before
	// delivery still gets picked up.
	lease := time.Now().Add(dispatchTimeout)
	record := &entity.PendingSubmission{
		Reference:     utils.GenerateSubmissionRef("SUB"),
		TerminalCode:  session.TerminalCode,
		Kind:          payload.Kind,
		Status:        enum.SubmissionStatusPending,
		NextAttemptAt: &lease,
	}
	if err := record.SetPayload(payload); err != nil {
		return nil, apperror.ErrInternalServer
	}
	if err := s.subRepo.Create(ctx, record); err != nil {
		s.logger.WithError(err).Error("failed to persist pending submission")
		return nil, apperror.ErrInternalServer
	}

	if err := s.shiftService.RecordExpected(ctx, session.TerminalCode, breakdown.Lines); err != nil {
		s.logger.WithError(err).WithField("reference", record.Reference).
			Warn("failed to record payment on open shift")
	}

	s.resetSession(ctx, session)

	go func() {
		dispatchCtx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		s.Dispatch(dispatchCtx, record)
	}()

	return record, nil
}

// Dispatch attempts to deliver one pending submission to the backend and
// updates the record's status from the outcome. Safe to call from the
// background worker and the manual retry endpoint.
func (s *CheckoutService) Dispatch(ctx context.Context, record *entity.PendingSubmission) {
	payload, err := record.GetPayload()
	if err != nil {
		s.logger.WithError(err).WithField("reference", record.Reference).
			Error("pending submission payload is unreadable")
		record.Status = enum.SubmissionStatusDead
		record.LastError = "unreadable payload: " + err.Error()
		if err := s.subRepo.Update(ctx, record); err != nil {
			s.logger.WithError(err).Error("failed to update pending submission")
		}
		return
	}

	post := s.posting.SubmitInvoiceAndPayment
	switch {
	case payload.Kind == enum.TransactionKindConversion:
		post = s.posting.ConvertQuotation
	case payload.ExistingRef != nil:
		post = s.posting.SubmitPaymentForDocument
	}

	result, err := post(ctx, payload)
	record.Attempts++

	switch {
	case err != nil:
		s.markDispatchFailure(ctx, record, err.Error())
	case !result.Success:
		message := result.Message
		if result.Details != "" {
			message += ": " + result.Details
		}
		s.markDispatchFailure(ctx, record, message)
	default:
		now := time.Now()
		record.Status = enum.SubmissionStatusCompleted
		record.RemoteRef = result.RemoteRef
		record.LastError = ""
		record.NextAttemptAt = nil
		record.CompletedAt = &now
		if err := s.subRepo.Update(ctx, record); err != nil {
			s.logger.WithError(err).WithField("reference", record.Reference).
				Error("failed to mark submission completed")
		}
	}
}

func (s *CheckoutService) markDispatchFailure(ctx context.Context, record *entity.PendingSubmission, message string) {
	record.LastError = message
	if record.Attempts >= s.maxAttempts {
		record.Status = enum.SubmissionStatusDead
		record.NextAttemptAt = nil
	} else {
		record.Status = enum.SubmissionStatusFailed
		backoff := dispatchBaseBackoff << (record.Attempts - 1)
		if backoff > dispatchMaxBackoff || backoff <= 0 {
			backoff = dispatchMaxBackoff
		}
		next := time.Now().Add(backoff)
		record.NextAttemptAt = &next
	}

	s.logger.WithFields(logrus.Fields{
		"reference": record.Reference,
		"attempts":  record.Attempts,
		"status":    record.Status.String(),
	}).Warn("submission dispatch failed: " + message)

	if err := s.subRepo.Update(ctx, record); err != nil {
		s.logger.WithError(err).WithField("reference", record.Reference).
			Error("failed to update pending submission")
	}
}

// RetrySubmission forces an immediate dispatch attempt for a failed or dead
// submission
func (s *CheckoutService) RetrySubmission(ctx context.Context, id uuid.UUID) (*entity.PendingSubmission, error) {
	record, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Submission")
	}
	if record.Status == enum.SubmissionStatusCompleted {
		return record, nil
	}
	if record.Status == enum.SubmissionStatusDead {
		record.Status = enum.SubmissionStatusFailed
	}
	s.Dispatch(ctx, record)
	return record, nil
}

// GetSubmission retrieves a pending submission by ID
func (s *CheckoutService) GetSubmission(ctx context.Context, id uuid.UUID) (*entity.PendingSubmission, error) {
	record, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Submission")
	}
	return record, nil
}

// ListSubmissions returns pending submissions matching the filter
func (s *CheckoutService) ListSubmissions(ctx context.Context, params *repository.SubmissionFilterParams) ([]entity.PendingSubmission, int64, error) {
	return s.subRepo.List(ctx, params)
}

// postWithRetries runs a synchronous posting call under the in-process retry
// policy and maps failures to API errors
func (s *CheckoutService) postWithRetries(
	ctx context.Context,
	payload *entity.SubmissionPayload,
	post func(context.Context, *entity.SubmissionPayload) (*entity.SubmissionResult, error),
) (*entity.SubmissionResult, error) {
	var result *entity.SubmissionResult
	err := s.retryPolicy.Do(ctx, func() error {
		var err error
		result, err = post(ctx, payload)
		return err
	})
	if err != nil {
		s.logger.WithError(err).Error("backend submission failed")
		return nil, apperror.NewRemoteFailureError("Backend is unreachable", err.Error())
	}
	if !result.Success {
		return nil, apperror.NewRemoteFailureError(result.Message, result.Details)
	}
	return result, nil
}

// resetSession clears the cart and rebinds the context to a fresh take-away
// order with the default customer
func (s *CheckoutService) resetSession(ctx context.Context, session *entity.Session) {
	_ = session.WithLock(func() error {
		session.Cart.Clear()
		session.ClosePayment()
		session.Context.Reset()
		session.Context.StartTakeAway()
		if settings, err := s.settingsRepo.Get(ctx); err == nil {
			session.Context.CustomerID = settings.DefaultCustomer
		}
		return nil
	})
}

// buildPayload snapshots the session into a submission payload. Caller holds
// the session lock.
func buildPayload(session *entity.Session, breakdown *entity.PaymentBreakdown, note string) *entity.SubmissionPayload {
	items := make([]entity.SubmissionItem, 0, session.Cart.Len())
	for _, li := range session.Cart.Items() {
		items = append(items, entity.SubmissionItem{
			Code:     li.Identifier,
			Name:     li.DisplayName,
			Quantity: li.Quantity,
			Rate:     li.UnitPrice,
			Remark:   li.Remark,
		})
	}

	payload := &entity.SubmissionPayload{
		Kind:         session.Context.Kind,
		Customer:     session.Context.CustomerID,
		CustomerName: session.Context.CustomerName,
		Table:        session.Context.BoundTable,
		Waiter:       session.Context.BoundWaiter,
		ExistingRef:  session.Context.ExistingRef,
		Items:        items,
		Note:         note,
	}
	if breakdown != nil {
		amount := breakdown.PaidTotal
		payload.Breakdown = breakdown.Lines
		payload.Label = breakdown.Label
		payload.Amount = &amount
		payload.RawTender = breakdown.RawTender
	}
	return payload
}
