package service

import (
	"context"
	"testing"

	"github.com/restodesk/pos-api/internal/domain/entity"
	"github.com/restodesk/pos-api/internal/domain/enum"
	"github.com/restodesk/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

func TestOpenShiftRejectsSecondOpen(t *testing.T) {
	svc := NewShiftService(newFakeShiftRepo(), testLogger())

	if _, err := svc.OpenShift(context.Background(), "POS-1", "alice"); err != nil {
		t.Fatalf("OpenShift: %v", err)
	}
	if _, err := svc.OpenShift(context.Background(), "POS-1", "bob"); err != apperror.ErrShiftAlreadyOpen {
		t.Fatalf("expected ErrShiftAlreadyOpen, got %v", err)
	}
}

func TestRecordExpectedAccumulates(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo, testLogger())
	ctx := context.Background()

	if _, err := svc.OpenShift(ctx, "POS-1", "alice"); err != nil {
		t.Fatalf("OpenShift: %v", err)
	}

	lines := []entity.BreakdownLine{{Mode: "Cash", Currency: "USD", Amount: decimal.NewFromInt(30)}}
	if err := svc.RecordExpected(ctx, "POS-1", lines); err != nil {
		t.Fatalf("RecordExpected: %v", err)
	}
	if err := svc.RecordExpected(ctx, "POS-1", lines); err != nil {
		t.Fatalf("RecordExpected: %v", err)
	}

	shift, err := svc.CurrentShift(ctx, "POS-1")
	if err != nil {
		t.Fatalf("CurrentShift: %v", err)
	}
	if len(shift.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(shift.Lines))
	}
	if !shift.Lines[0].Expected.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected accumulated 60, got %s", shift.Lines[0].Expected)
	}
}

func TestRecordExpectedWithoutOpenShiftIsNoop(t *testing.T) {
	svc := NewShiftService(newFakeShiftRepo(), testLogger())

	err := svc.RecordExpected(context.Background(), "POS-1", []entity.BreakdownLine{
		{Mode: "Cash", Currency: "USD", Amount: decimal.NewFromInt(10)},
	})
	if err != nil {
		t.Fatalf("expected nil error when no shift is open, got %v", err)
	}
}

func TestCloseShiftComputesVariance(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo, testLogger())
	ctx := context.Background()

	if _, err := svc.OpenShift(ctx, "POS-1", "alice"); err != nil {
		t.Fatalf("OpenShift: %v", err)
	}
	if err := svc.RecordExpected(ctx, "POS-1", []entity.BreakdownLine{
		{Mode: "Cash", Currency: "USD", Amount: decimal.NewFromInt(100)},
	}); err != nil {
		t.Fatalf("RecordExpected: %v", err)
	}

	shift, err := svc.CloseShift(ctx, "POS-1", map[string]decimal.Decimal{
		"Cash_USD": decimal.NewFromFloat(97.50),
	})
	if err != nil {
		t.Fatalf("CloseShift: %v", err)
	}

	if shift.Status != enum.ShiftStatusClosed {
		t.Fatalf("expected closed, got %v", shift.Status)
	}
	if shift.ClosedAt == nil {
		t.Error("expected close timestamp")
	}
	line := shift.Lines[0]
	if !line.Variance.Equal(decimal.NewFromFloat(-2.50)) {
		t.Errorf("expected variance -2.50, got %s", line.Variance)
	}

	if _, err := svc.CloseShift(ctx, "POS-1", nil); err != apperror.ErrNoOpenShift {
		t.Fatalf("expected ErrNoOpenShift after close, got %v", err)
	}
}
