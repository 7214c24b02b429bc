package entity

import (
	"testing"

	"github.com/restodesk/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

func candidate(id string, qty int, price float64) ItemCandidate {
	return ItemCandidate{
		Identifier:  id,
		DisplayName: id,
		Quantity:    qty,
		UnitPrice:   decimal.NewFromFloat(price),
	}
}

func TestCartAddMergesByIdentifier(t *testing.T) {
	cart := NewCart()

	if err := cart.AddItem(candidate("espresso", 1, 2.50)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := cart.AddItem(candidate("espresso", 2, 99.99)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if cart.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", cart.Len())
	}
	item := cart.Items()[0]
	if item.Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", item.Quantity)
	}
	// Price is sticky once added; the second candidate's price is ignored.
	if !item.UnitPrice.Equal(decimal.NewFromFloat(2.50)) {
		t.Errorf("expected price 2.50, got %s", item.UnitPrice)
	}
}

func TestCartAddDefaults(t *testing.T) {
	cart := NewCart()

	if err := cart.AddItem(ItemCandidate{}); err != apperror.ErrInvalidItem {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}

	if err := cart.AddItem(candidate("tea", 0, -3)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	item := cart.Items()[0]
	if item.Quantity != 1 {
		t.Errorf("expected quantity defaulted to 1, got %d", item.Quantity)
	}
	if !item.UnitPrice.IsZero() {
		t.Errorf("expected negative price coerced to zero, got %s", item.UnitPrice)
	}
}

func TestCartUpdateItem(t *testing.T) {
	cart := NewCart()
	if err := cart.AddItem(candidate("latte", 2, 4.00)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := cart.UpdateItem("missing", ItemPatch{}); err != apperror.ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	zero := 0
	if err := cart.UpdateItem("latte", ItemPatch{Quantity: &zero}); err != apperror.ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	five := 5
	negative := decimal.NewFromInt(-1)
	remark := "extra shot"
	if err := cart.UpdateItem("latte", ItemPatch{Quantity: &five, UnitPrice: &negative, Remark: &remark}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	item := cart.Items()[0]
	if item.Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", item.Quantity)
	}
	// A negative price keeps the previous valid value.
	if !item.UnitPrice.Equal(decimal.NewFromFloat(4.00)) {
		t.Errorf("expected price unchanged at 4.00, got %s", item.UnitPrice)
	}
	if item.Remark != "extra shot" {
		t.Errorf("expected remark updated, got %q", item.Remark)
	}
}

func TestCartRemoveItem(t *testing.T) {
	cart := NewCart()
	if err := cart.AddItem(candidate("mocha", 1, 5)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	// Removing an absent identifier is a no-op.
	cart.RemoveItem("missing")
	if cart.Len() != 1 {
		t.Fatalf("expected 1 line after no-op remove, got %d", cart.Len())
	}

	cart.RemoveItem("mocha")
	if !cart.IsEmpty() {
		t.Fatal("expected empty cart after remove")
	}
}

func TestCartTotalRecomputed(t *testing.T) {
	cart := NewCart()
	if err := cart.AddItem(candidate("espresso", 2, 2.50)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := cart.AddItem(candidate("latte", 1, 4.00)); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if want := decimal.NewFromFloat(9.00); !cart.Total().Equal(want) {
		t.Fatalf("expected total %s, got %s", want, cart.Total())
	}

	three := 3
	if err := cart.UpdateItem("latte", ItemPatch{Quantity: &three}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if want := decimal.NewFromFloat(17.00); !cart.Total().Equal(want) {
		t.Fatalf("expected total %s after update, got %s", want, cart.Total())
	}

	cart.Clear()
	if !cart.Total().IsZero() {
		t.Fatalf("expected zero total after clear, got %s", cart.Total())
	}
}
