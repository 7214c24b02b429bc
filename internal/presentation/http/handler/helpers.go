package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetTerminalCode extracts the terminal code from the Gin context
func GetTerminalCode(c *gin.Context) string {
	code, exists := c.Get("terminal_code")
	if !exists {
		return ""
	}
	return code.(string)
}

// GetCashier extracts the cashier name from the Gin context
func GetCashier(c *gin.Context) string {
	cashier, exists := c.Get("cashier")
	if !exists {
		return ""
	}
	return cashier.(string)
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

func parseNonNegativeInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
