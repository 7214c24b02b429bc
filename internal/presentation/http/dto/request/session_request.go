package request

import (
	"github.com/restodesk/pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AddItemRequest represents an item candidate being added to the cart. Item
// feeds disagree on field names: the selling price may arrive as price, rate
// or standard_rate, and the quantity as qty or quantity. Normalize resolves
// the aliases in that order.
type AddItemRequest struct {
	Identifier    string   `json:"identifier" binding:"required"`
	DisplayName   string   `json:"display_name"`
	Category      string   `json:"category"`
	Price         *float64 `json:"price"`
	Rate          *float64 `json:"rate"`
	StandardRate  *float64 `json:"standard_rate"`
	Qty           *int     `json:"qty"`
	Quantity      *int     `json:"quantity"`
	Remark        string   `json:"remark"`
	UnitOfMeasure string   `json:"uom"`
}

// Normalize resolves the field aliases into an item candidate
func (r *AddItemRequest) Normalize() entity.ItemCandidate {
	price := decimal.Zero
	switch {
	case r.Price != nil:
		price = decimal.NewFromFloat(*r.Price)
	case r.Rate != nil:
		price = decimal.NewFromFloat(*r.Rate)
	case r.StandardRate != nil:
		price = decimal.NewFromFloat(*r.StandardRate)
	}

	quantity := 1
	switch {
	case r.Qty != nil:
		quantity = *r.Qty
	case r.Quantity != nil:
		quantity = *r.Quantity
	}

	name := r.DisplayName
	if name == "" {
		name = r.Identifier
	}

	return entity.ItemCandidate{
		Identifier:    r.Identifier,
		DisplayName:   name,
		Category:      r.Category,
		Quantity:      quantity,
		UnitPrice:     price,
		Remark:        r.Remark,
		UnitOfMeasure: r.UnitOfMeasure,
	}
}

// UpdateItemRequest represents a partial update to a cart line
type UpdateItemRequest struct {
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
	Remark   *string  `json:"remark"`
}

// Patch converts the request into an item patch
func (r *UpdateItemRequest) Patch() entity.ItemPatch {
	patch := entity.ItemPatch{
		Quantity: r.Quantity,
		Remark:   r.Remark,
	}
	if r.Price != nil {
		price := decimal.NewFromFloat(*r.Price)
		patch.UnitPrice = &price
	}
	return patch
}

// StartDineInRequest binds the session to a table
type StartDineInRequest struct {
	TableID         string `json:"table_id" binding:"required"`
	WaiterID        string `json:"waiter_id"`
	ExistingOrderID string `json:"existing_order_id"`
	CustomerName    string `json:"customer_name"`
}

// DocumentRefRequest identifies a remote document
type DocumentRefRequest struct {
	Doctype string `json:"doctype" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

// StartQuotationRequest loads an existing quotation (or a quotation being
// converted to an invoice) into the session
type StartQuotationRequest struct {
	Ref          DocumentRefRequest `json:"ref" binding:"required"`
	CustomerID   string             `json:"customer_id" binding:"required"`
	CustomerName string             `json:"customer_name"`
	Items        []AddItemRequest   `json:"items"`
}

// SetCustomerRequest binds a customer to the session
type SetCustomerRequest struct {
	CustomerID   string `json:"customer_id" binding:"required"`
	CustomerName string `json:"customer_name"`
}
