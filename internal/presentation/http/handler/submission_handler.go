package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/application/service"
	"github.com/restodesk/pos-api/internal/domain/enum"
	"github.com/restodesk/pos-api/internal/domain/repository"
	"github.com/restodesk/pos-api/internal/presentation/http/dto/response"
	"github.com/restodesk/pos-api/pkg/pagination"
)

// SubmissionHandler handles pending submission HTTP requests
type SubmissionHandler struct {
	checkoutService *service.CheckoutService
	receiptService  *service.ReceiptService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(checkoutService *service.CheckoutService, receiptService *service.ReceiptService) *SubmissionHandler {
	return &SubmissionHandler{
		checkoutService: checkoutService,
		receiptService:  receiptService,
	}
}

// List handles listing pending submissions
// @Summary List Submissions
// @Description Get pending submissions with pagination and filtering
// @Tags submissions
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param status query int false "Status filter"
// @Param start_date query string false "Start date (RFC 3339)"
// @Param end_date query string false "End date (RFC 3339)"
// @Success 200 {object} response.APIResponse
// @Router /submissions [get]
func (h *SubmissionHandler) List(c *gin.Context) {
	page := 1
	perPage := 15
	if p := c.Query("page"); p != "" {
		if parsed, err := parsePositiveInt(p); err == nil {
			page = parsed
		}
	}
	if pp := c.Query("per_page"); pp != "" {
		if parsed, err := parsePositiveInt(pp); err == nil {
			perPage = parsed
		}
	}

	params := &repository.SubmissionFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		TerminalCode: GetTerminalCode(c),
	}

	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			status := enum.SubmissionStatus(parsed)
			params.Status = &status
		}
	}
	if s := c.Query("start_date"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			params.StartDate = &t
		}
	}
	if s := c.Query("end_date"); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			params.EndDate = &t
		}
	}

	records, total, err := h.checkoutService.ListSubmissions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(records, pagination.NewPagination(page, perPage, total))
	response.SuccessWithPagination(c, 200, "Submissions retrieved", result)
}

// Get handles getting a single submission
// @Summary Get Submission
// @Description Get a pending submission by ID
// @Tags submissions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} response.APIResponse
// @Router /submissions/{id} [get]
func (h *SubmissionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid submission ID")
		return
	}
	record, err := h.checkoutService.GetSubmission(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Submission retrieved", record)
}

// Retry handles forcing a dispatch attempt
// @Summary Retry Submission
// @Description Force an immediate delivery attempt for a failed or dead submission
// @Tags submissions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} response.APIResponse
// @Router /submissions/{id}/retry [post]
func (h *SubmissionHandler) Retry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid submission ID")
		return
	}
	record, err := h.checkoutService.RetrySubmission(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Retry dispatched", record)
}

// PrintReceipt handles printing a receipt for a recorded sale
// @Summary Print Receipt
// @Description Render and print the receipt for a recorded sale
// @Tags submissions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} response.APIResponse
// @Router /submissions/{id}/receipt [post]
func (h *SubmissionHandler) PrintReceipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid submission ID")
		return
	}
	if err := h.receiptService.PrintReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt printed", nil)
}
