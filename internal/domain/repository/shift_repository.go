package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/domain/entity"
)

// ShiftRepository defines the interface for cashier shift data operations
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error)
	GetOpenByTerminal(ctx context.Context, terminalCode string) (*entity.Shift, error)
	Update(ctx context.Context, shift *entity.Shift) error
	UpsertLine(ctx context.Context, line *entity.ShiftLine) error
	GetLines(ctx context.Context, shiftID uuid.UUID) ([]entity.ShiftLine, error)
	ListByTerminal(ctx context.Context, terminalCode string, limit int) ([]entity.Shift, error)
}
