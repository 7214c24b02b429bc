package entity

import (
	"github.com/restodesk/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Cart holds the line items of an in-progress transaction, keyed by item
// identifier. At most one line exists per identifier; adding an item that is
// already present increments its quantity instead of duplicating the line.
type Cart struct {
	items []*LineItem
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{}
}

// AddItem adds a candidate to the cart. If a line with the same identifier
// exists its quantity is incremented and price/remark stay untouched (price
// is sticky once added). A zero or negative candidate quantity defaults to 1.
func (c *Cart) AddItem(candidate ItemCandidate) error {
	if candidate.Identifier == "" {
		return apperror.ErrInvalidItem
	}

	qty := candidate.Quantity
	if qty < 1 {
		qty = 1
	}

	if existing := c.find(candidate.Identifier); existing != nil {
		existing.Quantity += qty
		return nil
	}

	price := candidate.UnitPrice
	if price.IsNegative() {
		price = decimal.Zero
	}

	c.items = append(c.items, &LineItem{
		Identifier:    candidate.Identifier,
		DisplayName:   candidate.DisplayName,
		Category:      candidate.Category,
		Quantity:      qty,
		UnitPrice:     price,
		Remark:        candidate.Remark,
		UnitOfMeasure: candidate.UnitOfMeasure,
	})
	return nil
}

// UpdateItem applies a partial update to the matching line item. Quantity
// must resolve to a positive integer; a negative price is coerced to the
// previous valid value rather than corrupting the line.
func (c *Cart) UpdateItem(identifier string, patch ItemPatch) error {
	item := c.find(identifier)
	if item == nil {
		return apperror.ErrItemNotFound
	}

	if patch.Quantity != nil {
		if *patch.Quantity < 1 {
			return apperror.ErrInvalidQuantity
		}
		item.Quantity = *patch.Quantity
	}
	if patch.UnitPrice != nil && !patch.UnitPrice.IsNegative() {
		item.UnitPrice = *patch.UnitPrice
	}
	if patch.Remark != nil {
		item.Remark = *patch.Remark
	}
	if patch.UnitOfMeasure != nil {
		item.UnitOfMeasure = *patch.UnitOfMeasure
	}
	return nil
}

// RemoveItem removes the matching line item. Removing an absent identifier is
// a no-op: a double-click in the UI must not crash the session.
func (c *Cart) RemoveItem(identifier string) {
	for i, item := range c.items {
		if item.Identifier == identifier {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
}

// Total returns the sum of unit price times quantity over all items. It is
// always recomputed from the current items, never stored.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Items returns a copy of the line items in insertion order
func (c *Cart) Items() []LineItem {
	items := make([]LineItem, len(c.items))
	for i, item := range c.items {
		items[i] = *item
	}
	return items
}

// Len returns the number of distinct line items
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) find(identifier string) *LineItem {
	for _, item := range c.items {
		if item.Identifier == identifier {
			return item
		}
	}
	return nil
}
