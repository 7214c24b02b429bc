package service

import (
	"context"

	"github.com/restodesk/pos-api/internal/domain/entity"
)

// PostingGateway is the opaque backend that records orders, invoices,
// quotations and payment entries. Failures carry the backend's message and
// details verbatim.
type PostingGateway interface {
	SubmitOrder(ctx context.Context, payload *entity.SubmissionPayload) (*entity.SubmissionResult, error)
	SubmitInvoiceAndPayment(ctx context.Context, payload *entity.SubmissionPayload) (*entity.SubmissionResult, error)
	SubmitPaymentForDocument(ctx context.Context, payload *entity.SubmissionPayload) (*entity.SubmissionResult, error)
	SubmitQuotation(ctx context.Context, payload *entity.SubmissionPayload) (*entity.SubmissionResult, error)
	ConvertQuotation(ctx context.Context, payload *entity.SubmissionPayload) (*entity.SubmissionResult, error)
}

// CatalogGateway resolves stock levels and units of measure before items are
// added to a cart
type CatalogGateway interface {
	CheckStock(ctx context.Context, itemCode string) (float64, error)
	UnitsOfMeasure(ctx context.Context, itemCode string) ([]string, error)
}
