package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/domain/entity"
	"github.com/restodesk/pos-api/internal/domain/enum"
	"github.com/restodesk/pos-api/internal/domain/repository"
	"github.com/restodesk/pos-api/pkg/retry"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// --- fakes ---

type fakeSessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (s *fakeSessionStore) Put(session *entity.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

func (s *fakeSessionStore) Get(id uuid.UUID) (*entity.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *fakeSessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *fakeSessionStore) PruneOlderThan(seconds int) int {
	cutoff := time.Now().Add(-time.Duration(seconds) * time.Second)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

type fakeSettingsRepo struct {
	settings entity.PosSettings
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*entity.PosSettings, error) {
	s := r.settings
	return &s, nil
}

func (r *fakeSettingsRepo) Update(ctx context.Context, settings *entity.PosSettings) error {
	r.settings = *settings
	return nil
}

type fakeMethodRepo struct {
	methods []entity.PaymentMethod
}

func (r *fakeMethodRepo) Create(ctx context.Context, m *entity.PaymentMethod) error { return nil }
func (r *fakeMethodRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	return nil, nil
}
func (r *fakeMethodRepo) Update(ctx context.Context, m *entity.PaymentMethod) error { return nil }
func (r *fakeMethodRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }
func (r *fakeMethodRepo) ListEnabled(ctx context.Context) ([]entity.PaymentMethod, error) {
	return r.methods, nil
}
func (r *fakeMethodRepo) ListAll(ctx context.Context) ([]entity.PaymentMethod, error) {
	return r.methods, nil
}

type fakeSubRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*entity.PendingSubmission
}

func newFakeSubRepo() *fakeSubRepo {
	return &fakeSubRepo{records: make(map[uuid.UUID]*entity.PendingSubmission)}
}

func (r *fakeSubRepo) Create(ctx context.Context, sub *entity.PendingSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	clone := *sub
	r.records[sub.ID] = &clone
	return nil
}

func (r *fakeSubRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.PendingSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	clone := *sub
	return &clone, nil
}

func (r *fakeSubRepo) Update(ctx context.Context, sub *entity.PendingSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *sub
	r.records[sub.ID] = &clone
	return nil
}

func (r *fakeSubRepo) List(ctx context.Context, params *repository.SubmissionFilterParams) ([]entity.PendingSubmission, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.PendingSubmission
	for _, sub := range r.records {
		out = append(out, *sub)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSubRepo) Due(ctx context.Context, now time.Time, limit int) ([]entity.PendingSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.PendingSubmission
	for _, sub := range r.records {
		if sub.Status != enum.SubmissionStatusPending && sub.Status != enum.SubmissionStatusFailed {
			continue
		}
		if sub.NextAttemptAt != nil && sub.NextAttemptAt.After(now) {
			continue
		}
		out = append(out, *sub)
	}
	return out, nil
}

type fakeShiftRepo struct {
	mu    sync.Mutex
	open  *entity.Shift
	lines map[string]*entity.ShiftLine
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{lines: make(map[string]*entity.ShiftLine)}
}

func (r *fakeShiftRepo) Create(ctx context.Context, shift *entity.Shift) error {
	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.open = shift
	return nil
}

func (r *fakeShiftRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.open != nil && r.open.ID == id {
		return r.open, nil
	}
	return nil, nil
}

func (r *fakeShiftRepo) GetOpenByTerminal(ctx context.Context, terminalCode string) (*entity.Shift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.open != nil && r.open.Status == enum.ShiftStatusOpen && r.open.TerminalCode == terminalCode {
		return r.open, nil
	}
	return nil, nil
}

func (r *fakeShiftRepo) Update(ctx context.Context, shift *entity.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.open = shift
	return nil
}

func (r *fakeShiftRepo) UpsertLine(ctx context.Context, line *entity.ShiftLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.lines[line.MethodKey]; ok {
		existing.Expected = existing.Expected.Add(line.Expected)
		existing.Counted = line.Counted
		existing.Variance = line.Variance
		return nil
	}
	clone := *line
	r.lines[line.MethodKey] = &clone
	return nil
}

func (r *fakeShiftRepo) GetLines(ctx context.Context, shiftID uuid.UUID) ([]entity.ShiftLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.ShiftLine
	for _, line := range r.lines {
		out = append(out, *line)
	}
	return out, nil
}

func (r *fakeShiftRepo) ListByTerminal(ctx context.Context, terminalCode string, limit int) ([]entity.Shift, error) {
	return nil, nil
}

type fakePostingGateway struct {
	mu     sync.Mutex
	result *entity.SubmissionResult
	err    error
	calls  int
	// gate, when set, holds every post until it is closed so tests can
	// observe state while a delivery is in flight.
	gate chan struct{}
}

func (g *fakePostingGateway) post(ctx context.Context, payload *entity.SubmissionPayload) (*entity.SubmissionResult, error) {
	g.mu.Lock()
	gate := g.gate
	g.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

func (g *fakePostingGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func (g *fakePostingGateway) SubmitOrder(ctx context.Context, p *entity.SubmissionPayload) (*entity.SubmissionResult, error) {
	return g.post(ctx, p)
}
func (g *fakePostingGateway) SubmitInvoiceAndPayment(ctx context.Context, p *entity.SubmissionPayload) (*entity.SubmissionResult, error) {
	return g.post(ctx, p)
}
func (g *fakePostingGateway) SubmitPaymentForDocument(ctx context.Context, p *entity.SubmissionPayload) (*entity.SubmissionResult, error) {
	return g.post(ctx, p)
}
func (g *fakePostingGateway) SubmitQuotation(ctx context.Context, p *entity.SubmissionPayload) (*entity.SubmissionResult, error) {
	return g.post(ctx, p)
}
func (g *fakePostingGateway) ConvertQuotation(ctx context.Context, p *entity.SubmissionPayload) (*entity.SubmissionResult, error) {
	return g.post(ctx, p)
}

// --- helpers ---

type checkoutFixture struct {
	service *CheckoutService
	store   *fakeSessionStore
	subRepo *fakeSubRepo
	posting *fakePostingGateway
	shifts  *fakeShiftRepo
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	store := newFakeSessionStore()
	subRepo := newFakeSubRepo()
	shifts := newFakeShiftRepo()
	posting := &fakePostingGateway{result: &entity.SubmissionResult{Success: true, RemoteRef: "SINV-001"}}
	logger := testLogger()

	svc := NewCheckoutService(
		store,
		&fakeMethodRepo{},
		&fakeSettingsRepo{settings: entity.PosSettings{BaseCurrency: "USD", DefaultCustomer: "walk-in"}},
		subRepo,
		NewShiftService(shifts, logger),
		posting,
		logger,
		3,
		nil,
	)
	// Exercise the retry bound without waiting on real backoff.
	svc.retryPolicy = retry.NoDelay(3)

	return &checkoutFixture{service: svc, store: store, subRepo: subRepo, posting: posting, shifts: shifts}
}

func (f *checkoutFixture) newSession(t *testing.T) *entity.Session {
	t.Helper()
	session := entity.NewSession("POS-1")
	session.Context.StartTakeAway()
	session.Context.CustomerID = "walk-in"
	if err := session.Cart.AddItem(entity.ItemCandidate{Identifier: "espresso", Quantity: 2, UnitPrice: decimal.NewFromFloat(2.50)}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	f.store.Put(session)
	return session
}

// --- tests ---

func TestSubmitOrderSuccessResetsSession(t *testing.T) {
	f := newCheckoutFixture(t)
	session := f.newSession(t)

	result, err := f.service.SubmitOrder(context.Background(), session.ID, "no onions")
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}
	if !result.Success || result.RemoteRef != "SINV-001" {
		t.Fatalf("unexpected result %+v", result)
	}

	if !session.Cart.IsEmpty() {
		t.Error("expected cart cleared after successful submission")
	}
	if session.Context.Kind != enum.TransactionKindTakeAway {
		t.Errorf("expected session reset to take-away, got %v", session.Context.Kind)
	}
	if session.Context.CustomerID != "walk-in" {
		t.Errorf("expected default customer reseeded, got %q", session.Context.CustomerID)
	}
}

func TestSubmitOrderFailurePreservesCart(t *testing.T) {
	f := newCheckoutFixture(t)
	f.posting.err = errors.New("connection refused")
	session := f.newSession(t)

	if _, err := f.service.SubmitOrder(context.Background(), session.ID, ""); err == nil {
		t.Fatal("expected error from unreachable backend")
	}

	if session.Cart.IsEmpty() {
		t.Error("expected cart preserved after failed submission")
	}
	if f.posting.callCount() != 3 {
		t.Errorf("expected 3 attempts, got %d", f.posting.callCount())
	}
}

func TestSubmitOrderValidation(t *testing.T) {
	f := newCheckoutFixture(t)
	session := entity.NewSession("POS-1")
	session.Context.StartDineIn("", "", "", "")
	f.store.Put(session)

	if _, err := f.service.SubmitOrder(context.Background(), session.ID, ""); err == nil {
		t.Fatal("expected validation error for empty dine-in cart")
	}
	if f.posting.callCount() != 0 {
		t.Errorf("expected no backend call on validation failure, got %d", f.posting.callCount())
	}
}

func TestOpenPaymentAndSetAmount(t *testing.T) {
	f := newCheckoutFixture(t)
	session := f.newSession(t)

	payment, err := f.service.OpenPayment(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("OpenPayment: %v", err)
	}
	if !payment.TargetTotal.Equal(decimal.NewFromFloat(5.00)) {
		t.Fatalf("expected target 5.00, got %s", payment.TargetTotal)
	}
	if payment.Entries[0].Key != "Cash_USD" {
		t.Fatalf("expected Cash_USD first, got %s", payment.Entries[0].Key)
	}

	status, err := f.service.SetPaymentAmount(session.ID, "Cash_USD", "10")
	if err != nil {
		t.Fatalf("SetPaymentAmount: %v", err)
	}
	if !status.ChangeDue.Equal(decimal.NewFromFloat(5.00)) {
		t.Errorf("expected change 5.00, got %s", status.ChangeDue)
	}
}

func TestCheckoutRequiresOpenPayment(t *testing.T) {
	f := newCheckoutFixture(t)
	session := f.newSession(t)

	if _, err := f.service.Checkout(context.Background(), session.ID, ""); err == nil {
		t.Fatal("expected error without an open payment session")
	}
}

func TestCheckoutRecordsSaleAndClearsSession(t *testing.T) {
	f := newCheckoutFixture(t)
	session := f.newSession(t)

	if _, err := f.service.OpenPayment(context.Background(), session.ID); err != nil {
		t.Fatalf("OpenPayment: %v", err)
	}
	if _, err := f.service.SetPaymentAmount(session.ID, "Cash_USD", "5"); err != nil {
		t.Fatalf("SetPaymentAmount: %v", err)
	}

	record, err := f.service.Checkout(context.Background(), session.ID, "table 4")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if record.Reference == "" {
		t.Error("expected a local reference on the record")
	}
	if record.TerminalCode != "POS-1" {
		t.Errorf("expected terminal code carried, got %q", record.TerminalCode)
	}

	payload, err := record.GetPayload()
	if err != nil {
		t.Fatalf("GetPayload: %v", err)
	}
	if payload.Customer != "walk-in" {
		t.Errorf("expected customer in payload, got %q", payload.Customer)
	}
	if len(payload.Items) != 1 || payload.Items[0].Quantity != 2 {
		t.Fatalf("unexpected payload items %+v", payload.Items)
	}
	if payload.Amount == nil || !payload.Amount.Equal(decimal.NewFromFloat(5.00)) {
		t.Errorf("expected paid amount 5.00, got %v", payload.Amount)
	}
	if payload.Label != "Cash" {
		t.Errorf("expected label Cash, got %q", payload.Label)
	}

	// The terminal is free immediately; delivery happens in the background.
	if !session.Cart.IsEmpty() {
		t.Error("expected cart cleared immediately after checkout")
	}
	if session.Payment != nil {
		t.Error("expected payment session closed")
	}
}

func TestCheckoutLeaseShieldsInFlightDispatch(t *testing.T) {
	f := newCheckoutFixture(t)
	f.posting.gate = make(chan struct{})
	session := f.newSession(t)

	if _, err := f.service.OpenPayment(context.Background(), session.ID); err != nil {
		t.Fatalf("OpenPayment: %v", err)
	}
	if _, err := f.service.SetPaymentAmount(session.ID, "Cash_USD", "5"); err != nil {
		t.Fatalf("SetPaymentAmount: %v", err)
	}

	record, err := f.service.Checkout(context.Background(), session.ID, "")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if record.NextAttemptAt == nil || !record.NextAttemptAt.After(time.Now()) {
		t.Fatal("expected the record created with a lease in the future")
	}

	// A worker tick while the first delivery is still in flight must not
	// pick the record up and post the sale a second time.
	worker := NewSubmissionWorker(f.subRepo, f.service, time.Minute, testLogger())
	worker.runOnce(context.Background())

	close(f.posting.gate)

	deadline := time.Now().Add(2 * time.Second)
	for {
		stored, err := f.subRepo.GetByID(context.Background(), record.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if stored != nil && stored.Status == enum.SubmissionStatusCompleted {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("background dispatch never completed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if got := f.posting.callCount(); got != 1 {
		t.Fatalf("expected the sale posted exactly once, got %d", got)
	}
}

func TestDispatchSuccessCompletesRecord(t *testing.T) {
	f := newCheckoutFixture(t)
	record := pendingRecord(t, f)

	f.service.Dispatch(context.Background(), record)

	if record.Status != enum.SubmissionStatusCompleted {
		t.Fatalf("expected completed, got %v", record.Status)
	}
	if record.RemoteRef != "SINV-001" {
		t.Errorf("expected remote ref recorded, got %q", record.RemoteRef)
	}
	if record.CompletedAt == nil {
		t.Error("expected completion timestamp")
	}

	stored, err := f.subRepo.GetByID(context.Background(), record.ID)
	if err != nil || stored == nil {
		t.Fatalf("GetByID: %v %v", stored, err)
	}
	if stored.Status != enum.SubmissionStatusCompleted {
		t.Errorf("expected persisted status completed, got %v", stored.Status)
	}
}

func TestDispatchFailureSchedulesRetry(t *testing.T) {
	f := newCheckoutFixture(t)
	f.posting.err = errors.New("backend down")
	record := pendingRecord(t, f)

	f.service.Dispatch(context.Background(), record)

	if record.Status != enum.SubmissionStatusFailed {
		t.Fatalf("expected failed, got %v", record.Status)
	}
	if record.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", record.Attempts)
	}
	if record.NextAttemptAt == nil || !record.NextAttemptAt.After(time.Now()) {
		t.Error("expected a future retry time")
	}
	if record.LastError == "" {
		t.Error("expected the failure message recorded")
	}
}

func TestDispatchDeadAfterMaxAttempts(t *testing.T) {
	f := newCheckoutFixture(t)
	f.posting.result = &entity.SubmissionResult{Success: false, Message: "Invoice rejected"}
	record := pendingRecord(t, f)

	for i := 0; i < 3; i++ {
		f.service.Dispatch(context.Background(), record)
	}

	if record.Status != enum.SubmissionStatusDead {
		t.Fatalf("expected dead after max attempts, got %v", record.Status)
	}
	if record.NextAttemptAt != nil {
		t.Error("expected no further retries scheduled")
	}
}

func TestDispatchRoutesByPayload(t *testing.T) {
	f := newCheckoutFixture(t)

	// A payload bound to an existing document pays against that document
	// instead of creating a new invoice.
	record := pendingRecord(t, f)
	payload, _ := record.GetPayload()
	payload.ExistingRef = &entity.DocumentRef{Doctype: "Sales Order", Name: "SO-9"}
	if err := record.SetPayload(payload); err != nil {
		t.Fatalf("SetPayload: %v", err)
	}

	f.service.Dispatch(context.Background(), record)
	if record.Status != enum.SubmissionStatusCompleted {
		t.Fatalf("expected completed, got %v (last error %q)", record.Status, record.LastError)
	}
}

func pendingRecord(t *testing.T, f *checkoutFixture) *entity.PendingSubmission {
	t.Helper()
	record := &entity.PendingSubmission{
		ID:           uuid.New(),
		Reference:    "SUB-TEST01",
		TerminalCode: "POS-1",
		Kind:         enum.TransactionKindTakeAway,
		Status:       enum.SubmissionStatusPending,
	}
	amount := decimal.NewFromFloat(5.00)
	if err := record.SetPayload(&entity.SubmissionPayload{
		Kind:     enum.TransactionKindTakeAway,
		Customer: "walk-in",
		Items:    []entity.SubmissionItem{{Code: "espresso", Name: "Espresso", Quantity: 2, Rate: decimal.NewFromFloat(2.50)}},
		Amount:   &amount,
		Label:    "Cash",
	}); err != nil {
		t.Fatalf("SetPayload: %v", err)
	}
	if err := f.subRepo.Create(context.Background(), record); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return record
}
