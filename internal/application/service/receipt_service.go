package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/domain/entity"
	"github.com/restodesk/pos-api/internal/domain/repository"
	"github.com/restodesk/pos-api/pkg/apperror"
	"github.com/restodesk/pos-api/pkg/printer"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ReceiptService renders recorded sales as ESC/POS receipts and sends them
// to the configured thermal printer
type ReceiptService struct {
	printer      printer.Printer
	subRepo      repository.PendingSubmissionRepository
	settingsRepo repository.SettingsRepository
	charWidth    int
	shopName     string
	logger       *logrus.Logger
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	p printer.Printer,
	subRepo repository.PendingSubmissionRepository,
	settingsRepo repository.SettingsRepository,
	charWidth int,
	shopName string,
	logger *logrus.Logger,
) *ReceiptService {
	if charWidth <= 0 {
		charWidth = 32
	}
	return &ReceiptService{
		printer:      p,
		subRepo:      subRepo,
		settingsRepo: settingsRepo,
		charWidth:    charWidth,
		shopName:     shopName,
		logger:       logger,
	}
}

// PrintReceipt renders and prints the receipt for a recorded sale
func (s *ReceiptService) PrintReceipt(ctx context.Context, submissionID uuid.UUID) error {
	record, err := s.subRepo.GetByID(ctx, submissionID)
	if err != nil {
		return apperror.ErrInternalServer
	}
	if record == nil {
		return apperror.NewNotFoundError("Submission")
	}
	payload, err := record.GetPayload()
	if err != nil {
		return apperror.ErrInternalServer
	}

	baseCurrency := ""
	if settings, err := s.settingsRepo.Get(ctx); err == nil {
		baseCurrency = settings.BaseCurrency
	}

	data := s.render(record, payload, baseCurrency)
	if err := s.printer.Print(data); err != nil {
		s.logger.WithError(err).WithField("reference", record.Reference).
			Error("failed to print receipt")
		return apperror.NewAppError(503, "Printer is not available")
	}
	return nil
}

func (s *ReceiptService) render(record *entity.PendingSubmission, payload *entity.SubmissionPayload, baseCurrency string) []byte {
	doc := printer.NewDocument(s.charWidth)

	doc.SetAlign(printer.AlignCenter).
		SetFontSize(printer.FontDouble).
		Text(s.shopName).
		SetFontSize(printer.FontNormal).
		Text(record.Reference).
		Text(record.CreatedAt.Format("2006-01-02 15:04")).
		LineFeed()

	doc.SetAlign(printer.AlignLeft)
	if payload.CustomerName != "" {
		doc.Text("Customer: " + payload.CustomerName)
	}
	if payload.Table != "" {
		doc.Text("Table: " + payload.Table)
	}
	doc.Separator('-')

	for _, item := range payload.Items {
		doc.ItemLine(item.Quantity, item.Name, item.Rate.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2))
		if item.Remark != "" {
			doc.Remark(item.Remark)
		}
	}
	doc.Separator('-')

	if payload.Amount != nil {
		doc.SetBold(true)
		doc.KeyValue("Total", payload.Amount.StringFixed(2)+" "+baseCurrency)
		doc.SetBold(false)
	}
	for _, line := range payload.Breakdown {
		doc.KeyValue(line.Mode+" ("+line.Currency+")", line.Amount.StringFixed(2))
	}
	for key, raw := range payload.RawTender {
		doc.KeyValue("Tendered "+key, raw)
	}

	doc.LineFeed().
		SetAlign(printer.AlignCenter).
		Text("Thank you!").
		FeedLines(3).
		Cut()

	return doc.Bytes()
}
