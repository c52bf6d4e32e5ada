package shiftrepo

import (
	"context"
	"errors"
	"time"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/domain/model/shift"
	"geodispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShiftRepository implements ShiftRepository using GORM.
type GormShiftRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShiftRepository creates a new GORM shift repository.
func NewGormShiftRepository(db *gorm.DB, tracker aggregateTracker) *GormShiftRepository {
	return &GormShiftRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shift to the database.
func (r *GormShiftRepository) Add(ctx context.Context, aggregate *shift.Shift) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shift to the database.
func (r *GormShiftRepository) Update(ctx context.Context, aggregate *shift.Shift) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ShiftDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"is_open":   dto.IsOpen,
			"closed_at": dto.ClosedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a shift by ID.
func (r *GormShiftRepository) Get(ctx context.Context, id kernel.UUID) (*shift.Shift, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShiftDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shift", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllOpen retrieves every open shift.
func (r *GormShiftRepository) GetAllOpen(ctx context.Context) ([]*shift.Shift, error) {
	var dtos []ShiftDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "is_open").Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetOverdueOpen retrieves open shifts whose expected end lies before now.
func (r *GormShiftRepository) GetOverdueOpen(ctx context.Context, now time.Time) ([]*shift.Shift, error) {
	var dtos []ShiftDTO
	err := r.db.WithContext(ctx).
		Where("is_open AND expected_end_at < ?", now).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []ShiftDTO) ([]*shift.Shift, error) {
	shifts := make([]*shift.Shift, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}

	return shifts, nil
}
