package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/application/service"
	"github.com/restodesk/pos-api/internal/domain/entity"
	"github.com/restodesk/pos-api/internal/presentation/http/dto/request"
	"github.com/restodesk/pos-api/internal/presentation/http/dto/response"
)

// SessionHandler handles order-composition session HTTP requests
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// sessionView flattens a session for API responses. The cart is rendered as
// its lines plus the recomputed total.
func sessionView(session *entity.Session) gin.H {
	return gin.H{
		"id":         session.ID,
		"context":    session.Context,
		"items":      session.Cart.Items(),
		"cart_total": session.Cart.Total(),
		"payment":    session.Payment,
		"created_at": session.CreatedAt,
		"updated_at": session.UpdatedAt,
	}
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

// Start handles creating a session
// @Summary Start Session
// @Description Create a new order-composition session for the terminal
// @Tags sessions
// @Security BearerAuth
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /sessions [post]
func (h *SessionHandler) Start(c *gin.Context) {
	session, err := h.sessionService.StartSession(c.Request.Context(), GetTerminalCode(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Session started", sessionView(session))
}

// Get handles getting a session
// @Summary Get Session
// @Description Get a session's cart, context and payment state
// @Tags sessions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.APIResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	session, err := h.sessionService.GetSession(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Session retrieved", sessionView(session))
}

// End handles discarding a session
// @Summary End Session
// @Description Discard a session and its cart
// @Tags sessions
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 204
// @Router /sessions/{id} [delete]
func (h *SessionHandler) End(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	h.sessionService.EndSession(id)
	response.NoContent(c)
}

// AddItem handles adding an item to the cart
// @Summary Add Item
// @Description Add an item to the session's cart, merging with an existing line
// @Tags sessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request.AddItemRequest true "Item"
// @Success 200 {object} response.APIResponse
// @Router /sessions/{id}/items [post]
func (h *SessionHandler) AddItem(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := h.sessionService.AddItem(id, req.Normalize()); err != nil {
		response.Error(c, err)
		return
	}
	session, err := h.sessionService.GetSession(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added", sessionView(session))
}

// UpdateItem handles updating a cart line
// @Summary Update Item
// @Description Update a cart line's quantity, price or remark
// @Tags sessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param identifier path string true "Item identifier"
// @Param request body request.UpdateItemRequest true "Fields to update"
// @Success 200 {object} response.APIResponse
// @Router /sessions/{id}/items/{identifier} [patch]
func (h *SessionHandler) UpdateItem(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := h.sessionService.UpdateItem(id, c.Param("identifier"), req.Patch()); err != nil {
		response.Error(c, err)
		return
	}
	session, err := h.sessionService.GetSession(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item updated", sessionView(session))
}

// RemoveItem handles removing a cart line
// @Summary Remove Item
// @Description Remove a line from the cart
// @Tags sessions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Param identifier path string true "Item identifier"
// @Success 200 {object} response.APIResponse
// @Router /sessions/{id}/items/{identifier} [delete]
func (h *SessionHandler) RemoveItem(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.sessionService.RemoveItem(id, c.Param("identifier")); err != nil {
		response.Error(c, err)
		return
	}
	session, err := h.sessionService.GetSession(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed", sessionView(session))
}

// ClearCart handles emptying the cart
// @Summary Clear Cart
// @Description Remove all lines from the cart
// @Tags sessions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.APIResponse
// @Router /sessions/{id}/items [delete]
func (h *SessionHandler) ClearCart(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.sessionService.ClearCart(id); err != nil {
		response.Error(c, err)
		return
	}
	session, err := h.sessionService.GetSession(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart cleared", sessionView(session))
}

// StartTakeAway handles switching the session to a take-away order
// @Summary Start Take-Away
// @Description Switch the session to a new take-away order
// @Tags sessions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.APIResponse
// @Router /sessions/{id}/context/take-away [post]
func (h *SessionHandler) StartTakeAway(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.sessionService.StartTakeAway(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	session, err := h.sessionService.GetSession(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Context switched to take-away", sessionView(session))
}

// StartDineIn handles binding the session to a table
// @Summary Start Dine-In
// @Description Bind the session to a table and waiter, optionally editing an existing order
// @Tags sessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request.StartDineInRequest true "Table binding"
// @Success 200 {object} response.APIResponse
// @Router /sessions/{id}/context/dine-in [post]
func (h *SessionHandler) StartDineIn(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request.StartDineInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := h.sessionService.StartDineIn(id, req.TableID, req.WaiterID, req.ExistingOrderID, req.CustomerName); err != nil {
		response.Error(c, err)
		return
	}
	session, err := h.sessionService.GetSession(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Context switched to dine-in", sessionView(session))
}

// StartQuotationEdit handles loading a quotation into the session
// @Summary Edit Quotation
// @Description Load an existing quotation's items and customer into the session
// @Tags sessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request.StartQuotationRequest true "Quotation"
// @Success 200 {object} response.APIResponse
// @Router /sessions/{id}/context/quotation [post]
func (h *SessionHandler) StartQuotationEdit(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request.StartQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	items := make([]entity.ItemCandidate, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, item.Normalize())
	}
	ref := entity.DocumentRef{Doctype: req.Ref.Doctype, Name: req.Ref.Name}
	if err := h.sessionService.StartQuotationEdit(id, ref, req.CustomerID, req.CustomerName, items); err != nil {
		response.Error(c, err)
		return
	}
	session, err := h.sessionService.GetSession(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quotation loaded", sessionView(session))
}

// StartConversion handles binding a quotation for invoice conversion
// @Summary Convert Quotation
// @Description Bind the session to a quotation being converted into a sales invoice
// @Tags sessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request.StartQuotationRequest true "Quotation"
// @Success 200 {object} response.APIResponse
// @Router /sessions/{id}/context/conversion [post]
func (h *SessionHandler) StartConversion(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request.StartQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	items := make([]entity.ItemCandidate, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, item.Normalize())
	}
	ref := entity.DocumentRef{Doctype: req.Ref.Doctype, Name: req.Ref.Name}
	if err := h.sessionService.StartConversion(id, ref, req.CustomerID, req.CustomerName, items); err != nil {
		response.Error(c, err)
		return
	}
	session, err := h.sessionService.GetSession(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quotation bound for conversion", sessionView(session))
}

// SetCustomer handles binding a customer to the session
// @Summary Set Customer
// @Description Bind a customer to the session
// @Tags sessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body request.SetCustomerRequest true "Customer"
// @Success 200 {object} response.APIResponse
// @Router /sessions/{id}/customer [put]
func (h *SessionHandler) SetCustomer(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request.SetCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := h.sessionService.SetCustomer(id, req.CustomerID, req.CustomerName); err != nil {
		response.Error(c, err)
		return
	}
	session, err := h.sessionService.GetSession(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer set", sessionView(session))
}

// Validate handles checking submission preconditions
// @Summary Validate Session
// @Description List the preconditions currently blocking submission
// @Tags sessions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.APIResponse
// @Router /sessions/{id}/validate [get]
func (h *SessionHandler) Validate(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	fieldErrors, err := h.sessionService.Validate(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Validation complete", gin.H{
		"valid":  len(fieldErrors) == 0,
		"errors": fieldErrors,
	})
}

// CheckStock handles a stock lookup
// @Summary Check Stock
// @Description Get the available stock for an item from the backend
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Param item_code query string true "Item code"
// @Success 200 {object} response.APIResponse
// @Router /catalog/stock [get]
func (h *SessionHandler) CheckStock(c *gin.Context) {
	itemCode := c.Query("item_code")
	if itemCode == "" {
		response.BadRequest(c, "item_code is required")
		return
	}
	qty, err := h.sessionService.CheckStock(c.Request.Context(), itemCode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock retrieved", gin.H{"item_code": itemCode, "available_qty": qty})
}

// UnitsOfMeasure handles a unit-of-measure lookup
// @Summary Units of Measure
// @Description Get the units of measure configured for an item
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Param item_code query string true "Item code"
// @Success 200 {object} response.APIResponse
// @Router /catalog/uoms [get]
func (h *SessionHandler) UnitsOfMeasure(c *gin.Context) {
	itemCode := c.Query("item_code")
	if itemCode == "" {
		response.BadRequest(c, "item_code is required")
		return
	}
	uoms, err := h.sessionService.UnitsOfMeasure(c.Request.Context(), itemCode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Units of measure retrieved", gin.H{"item_code": itemCode, "uoms": uoms})
}
