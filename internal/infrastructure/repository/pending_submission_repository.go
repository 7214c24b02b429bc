package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/domain/entity"
	"github.com/restodesk/pos-api/internal/domain/enum"
	domainRepo "github.com/restodesk/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type pendingSubmissionRepository struct {
	db *gorm.DB
}

// NewPendingSubmissionRepository creates a new pending submission repository
func NewPendingSubmissionRepository(db *gorm.DB) domainRepo.PendingSubmissionRepository {
	return &pendingSubmissionRepository{db: db}
}

func (r *pendingSubmissionRepository) Create(ctx context.Context, sub *entity.PendingSubmission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *pendingSubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PendingSubmission, error) {
	var sub entity.PendingSubmission
	err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sub, err
}

func (r *pendingSubmissionRepository) Update(ctx context.Context, sub *entity.PendingSubmission) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

func (r *pendingSubmissionRepository) List(ctx context.Context, params *domainRepo.SubmissionFilterParams) ([]entity.PendingSubmission, int64, error) {
	var subs []entity.PendingSubmission
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PendingSubmission{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.TerminalCode != "" {
		query = query.Where("terminal_code = ?", params.TerminalCode)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Order("created_at DESC").
		Offset(params.Pagination.Offset()).
		Limit(params.Pagination.PerPage).
		Find(&subs).Error

	return subs, total, err
}

func (r *pendingSubmissionRepository) Due(ctx context.Context, now time.Time, limit int) ([]entity.PendingSubmission, error) {
	var subs []entity.PendingSubmission
	err := r.db.WithContext(ctx).
		Where("status IN ?", []enum.SubmissionStatus{enum.SubmissionStatusPending, enum.SubmissionStatusFailed}).
		Where("next_attempt_at IS NULL OR next_attempt_at <= ?", now).
		Order("created_at ASC").
		Limit(limit).
		Find(&subs).Error
	return subs, err
}
