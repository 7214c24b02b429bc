package request

// SetAmountRequest records the raw amount entered against a payment method.
// Amount is kept as the entered string; parsing happens at read time.
type SetAmountRequest struct {
	Key    string `json:"key" binding:"required"`
	Amount string `json:"amount"`
}

// CheckoutRequest finalizes the open payment session
type CheckoutRequest struct {
	Note string `json:"note"`
}

// SubmitOrderRequest submits the cart as an unpaid order
type SubmitOrderRequest struct {
	Note string `json:"note"`
}

// OpenShiftRequest opens a cashier shift
type OpenShiftRequest struct {
	Cashier string `json:"cashier"`
}

// CloseShiftRequest closes the open shift. Counted maps method key
// (Mode_Currency) to the counted amount as entered, e.g. "125.50".
type CloseShiftRequest struct {
	Counted map[string]string `json:"counted" binding:"required"`
}
