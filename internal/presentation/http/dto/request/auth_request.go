package request

// TerminalLoginRequest represents a terminal login request
type TerminalLoginRequest struct {
	TerminalCode string `json:"terminal_code" binding:"required,min=1,max=100"`
	Cashier      string `json:"cashier"`
	Secret       string `json:"secret" binding:"required"`
}
