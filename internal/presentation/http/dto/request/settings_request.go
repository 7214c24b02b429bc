package request

// UpdateSettingsRequest updates the POS settings
type UpdateSettingsRequest struct {
	BaseCurrency    string `json:"base_currency"`
	DefaultCustomer string `json:"default_customer"`
	RestaurantMode  bool   `json:"restaurant_mode"`
}

// CreatePaymentMethodRequest adds a configured payment method
type CreatePaymentMethodRequest struct {
	Mode         string  `json:"mode" binding:"required,min=1,max=100"`
	Currency     string  `json:"currency" binding:"required,min=3,max=10"`
	ExchangeRate float64 `json:"exchange_rate" binding:"required,gt=0"`
	DisplayOrder int     `json:"display_order"`
	Enabled      *bool   `json:"enabled"`
}

// UpdatePaymentMethodRequest updates a payment method's rate, ordering, or
// enabled flag. Nil fields are left untouched.
type UpdatePaymentMethodRequest struct {
	ExchangeRate *float64 `json:"exchange_rate"`
	DisplayOrder *int     `json:"display_order"`
	Enabled      *bool    `json:"enabled"`
}
