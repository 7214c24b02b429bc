package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/restodesk/pos-api/internal/application/service"
	"github.com/restodesk/pos-api/internal/presentation/http/dto/request"
	"github.com/restodesk/pos-api/internal/presentation/http/dto/response"
)

// AuthHandler handles terminal authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles terminal login
// @Summary Terminal Login
// @Description Authenticate a terminal with the provisioning secret
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.TerminalLoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.TerminalLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	token, err := h.authService.Login(req.TerminalCode, req.Cashier, req.Secret)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"access_token":  token,
		"terminal_code": req.TerminalCode,
	})
}
