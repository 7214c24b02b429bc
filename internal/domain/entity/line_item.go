package entity

import "github.com/shopspring/decimal"

// LineItem represents one product line in a cart
type LineItem struct {
	Identifier    string          `json:"identifier"`
	DisplayName   string          `json:"display_name"`
	Category      string          `json:"category,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Remark        string          `json:"remark,omitempty"`
	UnitOfMeasure string          `json:"unit_of_measure,omitempty"`
}

// Subtotal returns unit price times quantity
func (li *LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// ItemCandidate is a prospective line item entering the cart. Incoming item
// shapes are normalized to this type once, at the HTTP boundary; aliasing
// (price/rate/standard_rate, qty/quantity) never reaches the ledger.
type ItemCandidate struct {
	Identifier    string
	DisplayName   string
	Category      string
	Quantity      int
	UnitPrice     decimal.Decimal
	Remark        string
	UnitOfMeasure string
}

// ItemPatch is a partial update applied to an existing line item. Nil fields
// are left untouched.
type ItemPatch struct {
	Quantity      *int
	UnitPrice     *decimal.Decimal
	Remark        *string
	UnitOfMeasure *string
}
