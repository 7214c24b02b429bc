package entity

import (
	"github.com/restodesk/pos-api/internal/domain/enum"
	"github.com/restodesk/pos-api/pkg/apperror"
)

// DocumentRef points at an existing document in the remote store
type DocumentRef struct {
	Doctype string `json:"doctype"`
	Name    string `json:"name"`
}

// TransactionContext tracks what kind of document the cart will become and
// the external identifiers bound to it. Transitions happen only through the
// Start methods; there is no automatic transition.
type TransactionContext struct {
	Kind         enum.TransactionKind `json:"kind"`
	BoundTable   string               `json:"bound_table,omitempty"`
	BoundWaiter  string               `json:"bound_waiter,omitempty"`
	CustomerID   string               `json:"customer_id,omitempty"`
	CustomerName string               `json:"customer_name,omitempty"`
	ExistingRef  *DocumentRef         `json:"existing_ref,omitempty"`
}

// NewTransactionContext returns a context in the Uninitialized state
func NewTransactionContext() *TransactionContext {
	return &TransactionContext{Kind: enum.TransactionKindUninitialized}
}

// StartTakeAway resets the context for a new take-away order. The customer
// display name is cleared; the customer identifier is kept so a default
// customer seeded by the caller survives the reset.
func (t *TransactionContext) StartTakeAway() {
	t.Kind = enum.TransactionKindTakeAway
	t.BoundTable = ""
	t.BoundWaiter = ""
	t.CustomerName = ""
	t.ExistingRef = nil
}

// StartDineIn binds the context to a table and waiter. An existing order id
// puts the context in edit mode for that order.
func (t *TransactionContext) StartDineIn(tableID, waiterID, existingOrderID, customerName string) {
	t.Kind = enum.TransactionKindDineIn
	t.BoundTable = tableID
	t.BoundWaiter = waiterID
	t.CustomerName = customerName
	if existingOrderID != "" {
		t.ExistingRef = &DocumentRef{Doctype: "Order", Name: existingOrderID}
	} else {
		t.ExistingRef = nil
	}
}

// StartQuotationEdit binds the context to an existing quotation
func (t *TransactionContext) StartQuotationEdit(ref DocumentRef) {
	t.Kind = enum.TransactionKindQuotation
	t.BoundTable = ""
	t.BoundWaiter = ""
	t.ExistingRef = &ref
}

// StartConversion binds the context to a quotation being converted to a
// payable sales invoice
func (t *TransactionContext) StartConversion(ref DocumentRef) {
	t.Kind = enum.TransactionKindConversion
	t.BoundTable = ""
	t.BoundWaiter = ""
	t.ExistingRef = &ref
}

// Reset returns the context to the Uninitialized state. Called after a
// successful submission.
func (t *TransactionContext) Reset() {
	t.Kind = enum.TransactionKindUninitialized
	t.BoundTable = ""
	t.BoundWaiter = ""
	t.CustomerID = ""
	t.CustomerName = ""
	t.ExistingRef = nil
}

// ValidateForSubmission returns the list of preconditions currently blocking
// submission. Submission must not proceed while the list is non-empty. A
// missing waiter never blocks submission.
func (t *TransactionContext) ValidateForSubmission(cart *Cart) []apperror.FieldError {
	var errs []apperror.FieldError

	if cart == nil || cart.IsEmpty() {
		errs = append(errs, apperror.FieldError{Field: "cart", Message: apperror.ErrEmptyCart.Message})
	}
	if t.Kind == enum.TransactionKindDineIn && t.BoundTable == "" {
		errs = append(errs, apperror.FieldError{Field: "table", Message: apperror.ErrMissingTable.Message})
	}
	if (t.Kind == enum.TransactionKindQuotation || t.Kind == enum.TransactionKindConversion) && t.CustomerID == "" {
		errs = append(errs, apperror.FieldError{Field: "customer", Message: apperror.ErrMissingCustomer.Message})
	}
	return errs
}
