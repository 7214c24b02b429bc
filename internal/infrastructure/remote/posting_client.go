package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/restodesk/pos-api/internal/config"
	"github.com/restodesk/pos-api/internal/domain/entity"
	"github.com/restodesk/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// envelope mirrors the backend's response shape. The backend reports domain
// failures with success=false and a 200 status, so both paths are handled.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
	OrderID string `json:"order_id,omitempty"`
	Name    string `json:"name,omitempty"`
}

func (e *envelope) result() *entity.SubmissionResult {
	ref := e.OrderID
	if ref == "" {
		ref = e.Name
	}
	return &entity.SubmissionResult{
		Success:   e.Success,
		RemoteRef: ref,
		Message:   e.Message,
		Details:   e.Details,
	}
}

// PostingClient talks to the document-store backend that records orders,
// invoices and payment entries.
type PostingClient struct {
	http   *resty.Client
	logger *logrus.Logger
}

// NewPostingClient creates a posting client for the configured backend
func NewPostingClient(cfg config.BackendConfig, logger *logrus.Logger) *PostingClient {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	if cfg.APIKey != "" {
		httpClient.SetHeader("Authorization", fmt.Sprintf("token %s:%s", cfg.APIKey, cfg.APISecret))
	}

	return &PostingClient{http: httpClient, logger: logger}
}

// orderRequest is the wire shape of an order submission
type orderRequest struct {
	OrderType    string          `json:"order_type"`
	CustomerName string          `json:"customer_name,omitempty"`
	Table        string          `json:"table,omitempty"`
	Waiter       string          `json:"waiter,omitempty"`
	OrderID      string          `json:"order_id,omitempty"`
	OrderItems   []orderItemWire `json:"order_items"`
}

type orderItemWire struct {
	Name     string          `json:"name"`
	ItemName string          `json:"item_name,omitempty"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Remark   string          `json:"remark,omitempty"`
}

func orderItems(items []entity.SubmissionItem) []orderItemWire {
	wire := make([]orderItemWire, len(items))
	for i, item := range items {
		wire[i] = orderItemWire{
			Name:     item.Code,
			ItemName: item.Name,
			Quantity: item.Quantity,
			Price:    item.Rate,
			Remark:   item.Remark,
		}
	}
	return wire
}

// SubmitOrder creates or updates an order document. An existing ref in the
// payload makes this an update.
func (c *PostingClient) SubmitOrder(ctx context.Context, payload *entity.SubmissionPayload) (*entity.SubmissionResult, error) {
	req := orderRequest{
		OrderType:    payload.Kind.String(),
		CustomerName: payload.CustomerName,
		Table:        payload.Table,
		Waiter:       payload.Waiter,
		OrderItems:   orderItems(payload.Items),
	}

	path := "/api/pos/orders"
	if payload.ExistingRef != nil {
		req.OrderID = payload.ExistingRef.Name
		path = "/api/pos/orders/update"
	}

	return c.post(ctx, path, map[string]interface{}{"payload": req})
}

// paymentRequest is the wire shape of a payment submission. RawTender carries
// the per-currency entered amounts for multi-currency flows.
type paymentRequest struct {
	Customer  string                 `json:"customer,omitempty"`
	Doctype   string                 `json:"doctype,omitempty"`
	Docname   string                 `json:"docname,omitempty"`
	Amount    *decimal.Decimal       `json:"amount,omitempty"`
	Method    string                 `json:"payment_method,omitempty"`
	Breakdown []entity.BreakdownLine `json:"payment_breakdown,omitempty"`
	RawTender map[string]string      `json:"multi_currency_payments,omitempty"`
	Note      string                 `json:"note,omitempty"`
}

// SubmitInvoiceAndPayment creates a sales invoice from the cart items and the
// corresponding payment entries in a single backend call.
func (c *PostingClient) SubmitInvoiceAndPayment(ctx context.Context, payload *entity.SubmissionPayload) (*entity.SubmissionResult, error) {
	body := map[string]interface{}{
		"customer":   payload.Customer,
		"cart_items": orderItems(payload.Items),
		"payment": paymentRequest{
			Customer:  payload.Customer,
			Amount:    payload.Amount,
			Method:    payload.Label,
			Breakdown: payload.Breakdown,
			RawTender: payload.RawTender,
			Note:      payload.Note,
		},
	}
	if payload.Kind == enum.TransactionKindDineIn || payload.Kind == enum.TransactionKindTakeAway {
		body["order_payload"] = orderRequest{
			OrderType:    payload.Kind.String(),
			CustomerName: payload.CustomerName,
			Table:        payload.Table,
			Waiter:       payload.Waiter,
			OrderItems:   orderItems(payload.Items),
		}
	}
	return c.post(ctx, "/api/pos/invoice-and-payment", body)
}

// SubmitPaymentForDocument records a payment against an existing document
func (c *PostingClient) SubmitPaymentForDocument(ctx context.Context, payload *entity.SubmissionPayload) (*entity.SubmissionResult, error) {
	req := paymentRequest{
		Customer:  payload.Customer,
		Amount:    payload.Amount,
		Method:    payload.Label,
		Breakdown: payload.Breakdown,
		RawTender: payload.RawTender,
		Note:      payload.Note,
	}
	if payload.ExistingRef != nil {
		req.Doctype = payload.ExistingRef.Doctype
		req.Docname = payload.ExistingRef.Name
	}
	return c.post(ctx, "/api/pos/payments", req)
}

// SubmitQuotation creates a quotation document from the cart
func (c *PostingClient) SubmitQuotation(ctx context.Context, payload *entity.SubmissionPayload) (*entity.SubmissionResult, error) {
	body := map[string]interface{}{
		"customer":      payload.Customer,
		"customer_name": payload.CustomerName,
		"items":         orderItems(payload.Items),
	}
	if payload.ExistingRef != nil {
		body["quotation_name"] = payload.ExistingRef.Name
	}
	return c.post(ctx, "/api/pos/quotations", body)
}

// ConvertQuotation converts a quotation into a payable sales invoice using
// the current cart items
func (c *PostingClient) ConvertQuotation(ctx context.Context, payload *entity.SubmissionPayload) (*entity.SubmissionResult, error) {
	body := map[string]interface{}{
		"customer":      payload.Customer,
		"customer_name": payload.CustomerName,
		"items":         orderItems(payload.Items),
	}
	if payload.ExistingRef != nil {
		body["quotation_name"] = payload.ExistingRef.Name
	}
	return c.post(ctx, "/api/pos/quotations/convert", body)
}

func (c *PostingClient) post(ctx context.Context, path string, body interface{}) (*entity.SubmissionResult, error) {
	var env envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&env).
		Post(path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"path":   path,
			"status": resp.StatusCode(),
		}).Error("posting backend returned non-200")
		return nil, fmt.Errorf("posting backend: %s: %s", resp.Status(), resp.String())
	}
	return env.result(), nil
}
