package service

import (
	"context"
	"testing"
	"time"

	"github.com/restodesk/pos-api/internal/domain/entity"
	"github.com/restodesk/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

type fakeCatalogGateway struct {
	stock float64
	uoms  []string
}

func (g *fakeCatalogGateway) CheckStock(ctx context.Context, itemCode string) (float64, error) {
	return g.stock, nil
}

func (g *fakeCatalogGateway) UnitsOfMeasure(ctx context.Context, itemCode string) ([]string, error) {
	return g.uoms, nil
}

func newSessionService() (*SessionService, *fakeSessionStore) {
	store := newFakeSessionStore()
	svc := NewSessionService(
		store,
		&fakeSettingsRepo{settings: entity.PosSettings{BaseCurrency: "USD", DefaultCustomer: "walk-in"}},
		&fakeCatalogGateway{stock: 12, uoms: []string{"Unit", "Box"}},
		testLogger(),
	)
	return svc, store
}

func TestStartSessionSeedsDefaultCustomer(t *testing.T) {
	svc, _ := newSessionService()

	session, err := svc.StartSession(context.Background(), "POS-1")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if session.Context.Kind != enum.TransactionKindTakeAway {
		t.Fatalf("expected take-away context, got %v", session.Context.Kind)
	}
	if session.Context.CustomerID != "walk-in" {
		t.Errorf("expected default customer seeded, got %q", session.Context.CustomerID)
	}
	if session.TerminalCode != "POS-1" {
		t.Errorf("expected terminal code bound, got %q", session.TerminalCode)
	}
}

func TestSessionCartMutations(t *testing.T) {
	svc, _ := newSessionService()
	session, err := svc.StartSession(context.Background(), "POS-1")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	add := entity.ItemCandidate{Identifier: "espresso", Quantity: 1, UnitPrice: decimal.NewFromFloat(2.50)}
	if err := svc.AddItem(session.ID, add); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := svc.AddItem(session.ID, add); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if session.Cart.Len() != 1 {
		t.Fatalf("expected merged line, got %d lines", session.Cart.Len())
	}
	if session.Cart.Items()[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", session.Cart.Items()[0].Quantity)
	}

	if err := svc.RemoveItem(session.ID, "espresso"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if !session.Cart.IsEmpty() {
		t.Error("expected empty cart")
	}
}

func TestStartQuotationEditReplacesCart(t *testing.T) {
	svc, _ := newSessionService()
	session, err := svc.StartSession(context.Background(), "POS-1")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if err := svc.AddItem(session.ID, entity.ItemCandidate{Identifier: "old-item", Quantity: 3}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	ref := entity.DocumentRef{Doctype: "Quotation", Name: "QTN-001"}
	items := []entity.ItemCandidate{
		{Identifier: "quoted-a", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		{Identifier: "quoted-b", Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
	}
	if err := svc.StartQuotationEdit(session.ID, ref, "CUST-7", "Grace", items); err != nil {
		t.Fatalf("StartQuotationEdit: %v", err)
	}

	if session.Context.Kind != enum.TransactionKindQuotation {
		t.Fatalf("expected quotation kind, got %v", session.Context.Kind)
	}
	if session.Context.CustomerID != "CUST-7" {
		t.Errorf("expected customer rebound, got %q", session.Context.CustomerID)
	}
	if session.Cart.Len() != 2 {
		t.Fatalf("expected cart replaced with 2 lines, got %d", session.Cart.Len())
	}
	if !session.Cart.Total().Equal(decimal.NewFromInt(25)) {
		t.Errorf("expected total 25, got %s", session.Cart.Total())
	}
}

func TestStartTakeAwayReseedsCustomer(t *testing.T) {
	svc, _ := newSessionService()
	session, err := svc.StartSession(context.Background(), "POS-1")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	// A quotation edit binds a real customer; switching back to take-away
	// resets everything and reseeds the default.
	if err := svc.StartQuotationEdit(session.ID, entity.DocumentRef{Doctype: "Quotation", Name: "QTN-001"}, "CUST-7", "Grace", nil); err != nil {
		t.Fatalf("StartQuotationEdit: %v", err)
	}
	session.Context.CustomerID = ""

	if err := svc.StartTakeAway(context.Background(), session.ID); err != nil {
		t.Fatalf("StartTakeAway: %v", err)
	}
	if session.Context.CustomerID != "walk-in" {
		t.Errorf("expected default customer reseeded, got %q", session.Context.CustomerID)
	}
}

func TestPruneIdleRemovesAbandonedSessions(t *testing.T) {
	svc, store := newSessionService()

	stale, err := svc.StartSession(context.Background(), "POS-1")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	live, err := svc.StartSession(context.Background(), "POS-2")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	stale.UpdatedAt = time.Now().Add(-2 * time.Hour)

	if removed := svc.PruneIdle(time.Hour); removed != 1 {
		t.Fatalf("expected 1 session pruned, got %d", removed)
	}
	if _, ok := store.Get(stale.ID); ok {
		t.Error("expected the stale session removed")
	}
	if _, ok := store.Get(live.ID); !ok {
		t.Error("expected the live session kept")
	}
}

func TestCatalogPassthrough(t *testing.T) {
	svc, _ := newSessionService()

	stock, err := svc.CheckStock(context.Background(), "espresso")
	if err != nil {
		t.Fatalf("CheckStock: %v", err)
	}
	if stock != 12 {
		t.Errorf("expected stock 12, got %v", stock)
	}

	uoms, err := svc.UnitsOfMeasure(context.Background(), "espresso")
	if err != nil {
		t.Fatalf("UnitsOfMeasure: %v", err)
	}
	if len(uoms) != 2 {
		t.Errorf("expected 2 uoms, got %v", uoms)
	}
}
