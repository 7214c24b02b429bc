package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/application/service"
	"github.com/restodesk/pos-api/internal/presentation/http/dto/request"
	"github.com/restodesk/pos-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// ShiftHandler handles cashier shift HTTP requests
type ShiftHandler struct {
	shiftService *service.ShiftService
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shiftService *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// Open handles opening a shift
// @Summary Open Shift
// @Description Open a cashier shift for the terminal
// @Tags shifts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.OpenShiftRequest false "Cashier"
// @Success 201 {object} response.APIResponse
// @Router /shifts [post]
func (h *ShiftHandler) Open(c *gin.Context) {
	var req request.OpenShiftRequest
	_ = c.ShouldBindJSON(&req)

	cashier := req.Cashier
	if cashier == "" {
		cashier = GetCashier(c)
	}

	shift, err := h.shiftService.OpenShift(c.Request.Context(), GetTerminalCode(c), cashier)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Shift opened", shift)
}

// Current handles getting the open shift
// @Summary Current Shift
// @Description Get the terminal's open shift with its per-method totals
// @Tags shifts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /shifts/current [get]
func (h *ShiftHandler) Current(c *gin.Context) {
	shift, err := h.shiftService.CurrentShift(c.Request.Context(), GetTerminalCode(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Shift retrieved", shift)
}

// Close handles closing the open shift
// @Summary Close Shift
// @Description Close the open shift, recording counted amounts and variance
// @Tags shifts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CloseShiftRequest true "Counted amounts per method key"
// @Success 200 {object} response.APIResponse
// @Router /shifts/close [post]
func (h *ShiftHandler) Close(c *gin.Context) {
	var req request.CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	counted := make(map[string]decimal.Decimal, len(req.Counted))
	for key, raw := range req.Counted {
		amount, err := decimal.NewFromString(raw)
		if err != nil || amount.IsNegative() {
			response.BadRequest(c, "Invalid counted amount for "+key)
			return
		}
		counted[key] = amount
	}

	shift, err := h.shiftService.CloseShift(c.Request.Context(), GetTerminalCode(c), counted)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Shift closed", shift)
}

// Get handles getting a shift by ID
// @Summary Get Shift
// @Description Get a shift by ID with its per-method totals
// @Tags shifts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.APIResponse
// @Router /shifts/{id} [get]
func (h *ShiftHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}
	shift, err := h.shiftService.GetShift(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Shift retrieved", shift)
}

// List handles listing recent shifts
// @Summary List Shifts
// @Description Get the terminal's most recent shifts
// @Tags shifts
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum shifts to return"
// @Success 200 {object} response.APIResponse
// @Router /shifts [get]
func (h *ShiftHandler) List(c *gin.Context) {
	limit := 20
	if l := c.Query("limit"); l != "" {
		if parsed, err := parsePositiveInt(l); err == nil {
			limit = parsed
		}
	}
	shifts, err := h.shiftService.ListShifts(c.Request.Context(), GetTerminalCode(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Shifts retrieved", shifts)
}
