package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/domain/entity"
	"github.com/restodesk/pos-api/internal/domain/enum"
	"github.com/restodesk/pos-api/pkg/pagination"
)

// PendingSubmissionRepository defines the interface for durable submission records
type PendingSubmissionRepository interface {
	Create(ctx context.Context, sub *entity.PendingSubmission) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PendingSubmission, error)
	Update(ctx context.Context, sub *entity.PendingSubmission) error
	List(ctx context.Context, params *SubmissionFilterParams) ([]entity.PendingSubmission, int64, error)
	// Due returns records that are pending or failed and whose next attempt
	// time has passed, oldest first, up to limit.
	Due(ctx context.Context, now time.Time, limit int) ([]entity.PendingSubmission, error)
}

// SubmissionFilterParams contains filtering parameters for submission queries
type SubmissionFilterParams struct {
	Pagination   *pagination.PaginationParams
	Status       *enum.SubmissionStatus
	TerminalCode string
	StartDate    *time.Time
	EndDate      *time.Time
}
