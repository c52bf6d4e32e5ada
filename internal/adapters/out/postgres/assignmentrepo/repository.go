package assignmentrepo

import (
	"context"
	"errors"
	"time"

	"geodispatch/internal/core/domain/model/assignment"
	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/core/ports"
	"geodispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

func liveStatusStrings() []string {
	return []string{
		assignment.Offered.String(),
		assignment.Accepted.String(),
		assignment.InTransit.String(),
	}
}

// Add saves a new assignment to the database.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
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

// UpdateWithExpectedStatus saves the assignment only if its stored status
// still matches the status it was read with. The zero-row case means the
// acceptance/expiry race was lost and is reported as
// ports.ErrConcurrentUpdate.
func (r *GormAssignmentRepository) UpdateWithExpectedStatus(
	ctx context.Context, aggregate *assignment.Assignment, expected assignment.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Updates(map[string]any{
			"status":      dto.Status,
			"accepted_at": dto.AcceptedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrConcurrentUpdate
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an assignment by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetLiveByOrder retrieves the order's live assignment (offered, accepted or
// in transit). At most one can exist at a time.
func (r *GormAssignmentRepository) GetLiveByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND status IN ?", orderID.Bytes(), liveStatusStrings()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("live assignment", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetExpiredOffered retrieves offers whose acceptance deadline lies before now.
func (r *GormAssignmentRepository) GetExpiredOffered(ctx context.Context, now time.Time) ([]*assignment.Assignment, error) {
	var dtos []AssignmentDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", assignment.Offered.String(), now).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	assignments := make([]*assignment.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		assignments = append(assignments, a)
	}

	return assignments, nil
}

// GetOfferedCourierIDs retrieves the IDs of every courier the order was ever
// offered to, regardless of how those offers ended.
func (r *GormAssignmentRepository) GetOfferedCourierIDs(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var raw []uuid.UUID
	err := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Distinct("courier_id").
		Where("order_id = ?", orderID.Bytes()).
		Pluck("courier_id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, b := range raw {
		id, idErr := kernel.UUIDFromBytes(b[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// CountByOrder counts every assignment ever created for the order.
func (r *GormAssignmentRepository) CountByOrder(ctx context.Context, orderID kernel.UUID) (int, error) {
	if err := orderID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("order_id = ?", orderID.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}
