package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/domain/entity"
	"github.com/restodesk/pos-api/internal/domain/enum"
	domainRepo "github.com/restodesk/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type shiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *gorm.DB) domainRepo.ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Create(ctx context.Context, shift *entity.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&shift, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

func (r *shiftRepository) GetOpenByTerminal(ctx context.Context, terminalCode string) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("terminal_code = ? AND status = ?", terminalCode, enum.ShiftStatusOpen).
		Order("opened_at DESC").
		First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

func (r *shiftRepository) Update(ctx context.Context, shift *entity.Shift) error {
	return r.db.WithContext(ctx).Save(shift).Error
}

// UpsertLine creates the shift line or adds to its expected amount when a
// line for the same method already exists.
func (r *shiftRepository) UpsertLine(ctx context.Context, line *entity.ShiftLine) error {
	var existing entity.ShiftLine
	err := r.db.WithContext(ctx).
		Where("shift_id = ? AND method_key = ?", line.ShiftID, line.MethodKey).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(line).Error
	}
	if err != nil {
		return err
	}
	existing.Expected = existing.Expected.Add(line.Expected)
	return r.db.WithContext(ctx).Save(&existing).Error
}

func (r *shiftRepository) GetLines(ctx context.Context, shiftID uuid.UUID) ([]entity.ShiftLine, error) {
	var lines []entity.ShiftLine
	err := r.db.WithContext(ctx).
		Where("shift_id = ?", shiftID).
		Order("method_key ASC").
		Find(&lines).Error
	return lines, err
}

func (r *shiftRepository) ListByTerminal(ctx context.Context, terminalCode string, limit int) ([]entity.Shift, error) {
	var shifts []entity.Shift
	err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("terminal_code = ?", terminalCode).
		Order("opened_at DESC").
		Limit(limit).
		Find(&shifts).Error
	return shifts, err
}
