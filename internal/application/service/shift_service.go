package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/domain/entity"
	"github.com/restodesk/pos-api/internal/domain/enum"
	"github.com/restodesk/pos-api/internal/domain/repository"
	"github.com/restodesk/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ShiftService manages cashier shifts and till reconciliation: expected
// per-method totals accumulate from finalized payments while the shift is
// open, and closing the shift records counted amounts and the variance.
type ShiftService struct {
	shiftRepo repository.ShiftRepository
	logger    *logrus.Logger
}

// NewShiftService creates a new shift service
func NewShiftService(shiftRepo repository.ShiftRepository, logger *logrus.Logger) *ShiftService {
	return &ShiftService{
		shiftRepo: shiftRepo,
		logger:    logger,
	}
}

// OpenShift opens a shift for a terminal. Only one shift may be open per
// terminal at a time.
func (s *ShiftService) OpenShift(ctx context.Context, terminalCode, cashier string) (*entity.Shift, error) {
	existing, err := s.shiftRepo.GetOpenByTerminal(ctx, terminalCode)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	if existing != nil {
		return nil, apperror.ErrShiftAlreadyOpen
	}

	shift := &entity.Shift{
		TerminalCode: terminalCode,
		Cashier:      cashier,
		Status:       enum.ShiftStatusOpen,
		OpenedAt:     time.Now(),
	}
	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		s.logger.WithError(err).Error("failed to open shift")
		return nil, apperror.ErrInternalServer
	}
	return shift, nil
}

// RecordExpected accumulates a finalized payment breakdown onto the open
// shift for the terminal. When no shift is open the payment is simply not
// tracked; sales do not require a shift.
func (s *ShiftService) RecordExpected(ctx context.Context, terminalCode string, lines []entity.BreakdownLine) error {
	shift, err := s.shiftRepo.GetOpenByTerminal(ctx, terminalCode)
	if err != nil {
		return err
	}
	if shift == nil {
		return nil
	}

	for _, line := range lines {
		shiftLine := &entity.ShiftLine{
			ShiftID:   shift.ID,
			MethodKey: entity.MethodKey(line.Mode, line.Currency),
			Mode:      line.Mode,
			Currency:  line.Currency,
			Expected:  line.Amount,
		}
		if err := s.shiftRepo.UpsertLine(ctx, shiftLine); err != nil {
			return err
		}
	}
	return nil
}

// CloseShift closes the terminal's open shift. counted maps method key to
// the counted amount; methods missing from the map count as zero.
func (s *ShiftService) CloseShift(ctx context.Context, terminalCode string, counted map[string]decimal.Decimal) (*entity.Shift, error) {
	shift, err := s.shiftRepo.GetOpenByTerminal(ctx, terminalCode)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	if shift == nil {
		return nil, apperror.ErrNoOpenShift
	}

	lines, err := s.shiftRepo.GetLines(ctx, shift.ID)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	for i := range lines {
		line := &lines[i]
		if amount, ok := counted[line.MethodKey]; ok {
			line.Counted = amount
		}
		line.Variance = line.Counted.Sub(line.Expected)
		if err := s.shiftRepo.UpsertLine(ctx, line); err != nil {
			return nil, apperror.ErrInternalServer
		}
	}

	now := time.Now()
	shift.Status = enum.ShiftStatusClosed
	shift.ClosedAt = &now
	if err := s.shiftRepo.Update(ctx, shift); err != nil {
		s.logger.WithError(err).Error("failed to close shift")
		return nil, apperror.ErrInternalServer
	}
	shift.Lines = lines
	return shift, nil
}

// CurrentShift returns the terminal's open shift with its lines, or a not
// found error when no shift is open
func (s *ShiftService) CurrentShift(ctx context.Context, terminalCode string) (*entity.Shift, error) {
	shift, err := s.shiftRepo.GetOpenByTerminal(ctx, terminalCode)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	if shift == nil {
		return nil, apperror.ErrNoOpenShift
	}
	lines, err := s.shiftRepo.GetLines(ctx, shift.ID)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	shift.Lines = lines
	return shift, nil
}

// GetShift retrieves a shift by ID with its lines
func (s *ShiftService) GetShift(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	shift, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Shift")
	}
	lines, err := s.shiftRepo.GetLines(ctx, id)
	if err != nil {
		return nil, apperror.ErrInternalServer
	}
	shift.Lines = lines
	return shift, nil
}

// ListShifts returns the most recent shifts for a terminal
func (s *ShiftService) ListShifts(ctx context.Context, terminalCode string, limit int) ([]entity.Shift, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.shiftRepo.ListByTerminal(ctx, terminalCode, limit)
}
