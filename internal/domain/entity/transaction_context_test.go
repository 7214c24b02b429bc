package entity

import (
	"testing"

	"github.com/restodesk/pos-api/internal/domain/enum"
)

func TestStartTakeAwayKeepsDefaultCustomer(t *testing.T) {
	ctx := NewTransactionContext()
	ctx.CustomerID = "walk-in"
	ctx.StartDineIn("T1", "W1", "ORD-001", "Alice")

	ctx.StartTakeAway()

	if ctx.Kind != enum.TransactionKindTakeAway {
		t.Fatalf("expected take-away kind, got %v", ctx.Kind)
	}
	if ctx.BoundTable != "" || ctx.BoundWaiter != "" {
		t.Errorf("expected table and waiter cleared, got %q/%q", ctx.BoundTable, ctx.BoundWaiter)
	}
	if ctx.ExistingRef != nil {
		t.Error("expected existing ref cleared")
	}
	if ctx.CustomerName != "" {
		t.Errorf("expected customer name cleared, got %q", ctx.CustomerName)
	}
	if ctx.CustomerID != "walk-in" {
		t.Errorf("expected customer id kept, got %q", ctx.CustomerID)
	}
}

func TestStartDineInEditMode(t *testing.T) {
	ctx := NewTransactionContext()

	ctx.StartDineIn("T5", "W2", "", "Bob")
	if ctx.ExistingRef != nil {
		t.Fatal("expected no existing ref for a new dine-in order")
	}

	ctx.StartDineIn("T5", "W2", "ORD-042", "Bob")
	if ctx.ExistingRef == nil || ctx.ExistingRef.Name != "ORD-042" || ctx.ExistingRef.Doctype != "Order" {
		t.Fatalf("expected order ref ORD-042, got %+v", ctx.ExistingRef)
	}
}

func TestStartQuotationAndConversion(t *testing.T) {
	ctx := NewTransactionContext()
	ctx.StartDineIn("T1", "", "", "")

	ref := DocumentRef{Doctype: "Quotation", Name: "QTN-007"}
	ctx.StartQuotationEdit(ref)
	if ctx.Kind != enum.TransactionKindQuotation {
		t.Fatalf("expected quotation kind, got %v", ctx.Kind)
	}
	if ctx.BoundTable != "" {
		t.Error("expected table cleared on quotation edit")
	}
	if ctx.ExistingRef == nil || ctx.ExistingRef.Name != "QTN-007" {
		t.Fatalf("expected quotation ref, got %+v", ctx.ExistingRef)
	}

	ctx.StartConversion(ref)
	if ctx.Kind != enum.TransactionKindConversion {
		t.Fatalf("expected conversion kind, got %v", ctx.Kind)
	}
}

func TestValidateForSubmission(t *testing.T) {
	filled := NewCart()
	if err := filled.AddItem(candidate("espresso", 1, 2.50)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	tests := []struct {
		name       string
		setup      func(*TransactionContext)
		cart       *Cart
		wantFields []string
	}{
		{
			name:       "empty cart blocks any submission",
			setup:      func(c *TransactionContext) { c.StartTakeAway() },
			cart:       NewCart(),
			wantFields: []string{"cart"},
		},
		{
			name:       "take-away with items passes",
			setup:      func(c *TransactionContext) { c.StartTakeAway() },
			cart:       filled,
			wantFields: nil,
		},
		{
			name: "dine-in without table is blocked",
			setup: func(c *TransactionContext) {
				c.StartDineIn("", "", "", "")
			},
			cart:       filled,
			wantFields: []string{"table"},
		},
		{
			name: "dine-in with table and no waiter passes",
			setup: func(c *TransactionContext) {
				c.StartDineIn("T3", "", "", "")
			},
			cart:       filled,
			wantFields: nil,
		},
		{
			name: "quotation without customer is blocked",
			setup: func(c *TransactionContext) {
				c.StartQuotationEdit(DocumentRef{Doctype: "Quotation", Name: "QTN-001"})
			},
			cart:       filled,
			wantFields: []string{"customer"},
		},
		{
			name: "conversion without customer is blocked",
			setup: func(c *TransactionContext) {
				c.StartConversion(DocumentRef{Doctype: "Quotation", Name: "QTN-001"})
			},
			cart:       filled,
			wantFields: []string{"customer"},
		},
		{
			name: "empty dine-in cart reports both problems",
			setup: func(c *TransactionContext) {
				c.StartDineIn("", "", "", "")
			},
			cart:       NewCart(),
			wantFields: []string{"cart", "table"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewTransactionContext()
			tt.setup(ctx)

			errs := ctx.ValidateForSubmission(tt.cart)
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("expected %d errors, got %d: %+v", len(tt.wantFields), len(errs), errs)
			}
			for i, field := range tt.wantFields {
				if errs[i].Field != field {
					t.Errorf("expected error %d on field %q, got %q", i, field, errs[i].Field)
				}
			}
		})
	}
}

func TestResetClearsEverything(t *testing.T) {
	ctx := NewTransactionContext()
	ctx.CustomerID = "walk-in"
	ctx.StartDineIn("T1", "W1", "ORD-001", "Alice")

	ctx.Reset()

	if ctx.Kind != enum.TransactionKindUninitialized {
		t.Fatalf("expected uninitialized kind, got %v", ctx.Kind)
	}
	if ctx.CustomerID != "" || ctx.CustomerName != "" || ctx.BoundTable != "" || ctx.ExistingRef != nil {
		t.Fatalf("expected all bindings cleared, got %+v", ctx)
	}
}
