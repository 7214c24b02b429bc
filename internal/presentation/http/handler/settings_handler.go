package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/application/service"
	"github.com/restodesk/pos-api/internal/domain/entity"
	"github.com/restodesk/pos-api/internal/presentation/http/dto/request"
	"github.com/restodesk/pos-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// SettingsHandler handles POS settings and payment method HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles getting the POS settings
// @Summary Get Settings
// @Description Get the POS settings
// @Tags settings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings retrieved", settings)
}

// Update handles updating the POS settings
// @Summary Update Settings
// @Description Update the POS settings
// @Tags settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.UpdateSettingsRequest true "Settings"
// @Success 200 {object} response.APIResponse
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &entity.PosSettings{
		BaseCurrency:    req.BaseCurrency,
		DefaultCustomer: req.DefaultCustomer,
		RestaurantMode:  req.RestaurantMode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Settings updated", settings)
}

// ListPaymentMethods handles listing configured payment methods
// @Summary List Payment Methods
// @Description Get all configured payment methods including disabled ones
// @Tags settings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /settings/payment-methods [get]
func (h *SettingsHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.settingsService.ListPaymentMethods(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment methods retrieved", methods)
}

// CreatePaymentMethod handles adding a payment method
// @Summary Create Payment Method
// @Description Add a configured payment method
// @Tags settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreatePaymentMethodRequest true "Payment method"
// @Success 201 {object} response.APIResponse
// @Router /settings/payment-methods [post]
func (h *SettingsHandler) CreatePaymentMethod(c *gin.Context) {
	var req request.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	method, err := h.settingsService.CreatePaymentMethod(c.Request.Context(), &entity.PaymentMethod{
		Mode:         req.Mode,
		Currency:     req.Currency,
		ExchangeRate: decimal.NewFromFloat(req.ExchangeRate),
		DisplayOrder: req.DisplayOrder,
		Enabled:      enabled,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Payment method created", method)
}

// UpdatePaymentMethod handles updating a payment method
// @Summary Update Payment Method
// @Description Update a payment method's rate, ordering, or enabled flag
// @Tags settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Payment method ID"
// @Param request body request.UpdatePaymentMethodRequest true "Fields to update"
// @Success 200 {object} response.APIResponse
// @Router /settings/payment-methods/{id} [patch]
func (h *SettingsHandler) UpdatePaymentMethod(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment method ID")
		return
	}
	var req request.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var rate *decimal.Decimal
	if req.ExchangeRate != nil {
		r := decimal.NewFromFloat(*req.ExchangeRate)
		rate = &r
	}
	method, err := h.settingsService.UpdatePaymentMethod(c.Request.Context(), id, rate, req.DisplayOrder, req.Enabled)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment method updated", method)
}

// DeletePaymentMethod handles removing a payment method
// @Summary Delete Payment Method
// @Description Remove a configured payment method
// @Tags settings
// @Security BearerAuth
// @Param id path string true "Payment method ID"
// @Success 204
// @Router /settings/payment-methods/{id} [delete]
func (h *SettingsHandler) DeletePaymentMethod(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid payment method ID")
		return
	}
	if err := h.settingsService.DeletePaymentMethod(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
