package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/restodesk/pos-api/internal/application/service"
	"github.com/restodesk/pos-api/internal/presentation/http/dto/request"
	"github.com/restodesk/pos-api/internal/presentation/http/dto/response"
)

// CheckoutHandler handles payment and submission HTTP requests
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// OpenPayment handles opening a payment session
// @Summary Open Payment
// @Description Open a payment session against the cart's current total
// @Tags checkout
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.APIResponse
// @Router /sessions/{id}/payment [post]
func (h *CheckoutHandler) OpenPayment(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	payment, err := h.checkoutService.OpenPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment session opened", payment)
}

// SetAmount handles entering an amount against a payment method
// @Summary Enter Amount
// @Description Record the raw amount entered against one payment method
// @Tags checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request.SetAmountRequest true "Method key and amount"
// @Success 200 {object} response.APIResponse
// @Router /sessions/{id}/payment/amounts [put]
func (h *CheckoutHandler) SetAmount(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request.SetAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	status, err := h.checkoutService.SetPaymentAmount(id, req.Key, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Amount recorded", status)
}

// PaymentStatus handles reading the payment status
// @Summary Payment Status
// @Description Get the open payment session's paid, remaining and change totals
// @Tags checkout
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.APIResponse
// @Router /sessions/{id}/payment [get]
func (h *CheckoutHandler) PaymentStatus(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	status, err := h.checkoutService.PaymentStatus(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment status retrieved", status)
}

// SubmitOrder handles submitting the cart as an unpaid order
// @Summary Submit Order
// @Description Submit the cart as an unpaid order; the cart is preserved on failure
// @Tags checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request.SubmitOrderRequest false "Note"
// @Success 200 {object} response.APIResponse
// @Router /sessions/{id}/submit/order [post]
func (h *CheckoutHandler) SubmitOrder(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request.SubmitOrderRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.checkoutService.SubmitOrder(c.Request.Context(), id, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order submitted", result)
}

// SubmitQuotation handles submitting the cart as a quotation
// @Summary Submit Quotation
// @Description Submit the cart as a quotation, updating the bound one if any
// @Tags checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request.SubmitOrderRequest false "Note"
// @Success 200 {object} response.APIResponse
// @Router /sessions/{id}/submit/quotation [post]
func (h *CheckoutHandler) SubmitQuotation(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request.SubmitOrderRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.checkoutService.SubmitQuotation(c.Request.Context(), id, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quotation submitted", result)
}

// Checkout handles finalizing the payment and recording the sale
// @Summary Checkout
// @Description Finalize the open payment session and record the sale for delivery
// @Tags checkout
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request.CheckoutRequest false "Note"
// @Success 202 {object} response.APIResponse
// @Router /sessions/{id}/checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request.CheckoutRequest
	_ = c.ShouldBindJSON(&req)

	record, err := h.checkoutService.Checkout(c.Request.Context(), id, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, 202, "Sale recorded", record)
}
