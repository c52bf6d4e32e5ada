package courierrepo

import (
	"context"
	"errors"

	"geodispatch/internal/core/domain/model/courier"
	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// projectionSelect pulls the courier columns together with the open-shift
// flag and the live-assignment count in one round trip.
const projectionSelect = `
	couriers.*,
	EXISTS (
		SELECT 1 FROM shifts
		WHERE shifts.courier_id = couriers.id AND shifts.is_open
	) AS has_open_shift,
	(
		SELECT COUNT(*) FROM assignments
		WHERE assignments.courier_id = couriers.id
		  AND assignments.status IN ('offered', 'accepted', 'in_transit')
	) AS active_assignments`

// GormCourierRepository implements CourierRepository using GORM.
type GormCourierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
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

// Update saves an existing courier to the database. Only courier-owned
// columns are written; the shift and assignment projections live in their
// own tables.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CourierDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":                   dto.Name,
			"online":                 dto.Online,
			"location_lat":           dto.LocationLat,
			"location_lon":           dto.LocationLon,
			"last_active_at":         dto.LastActiveAt,
			"max_active_assignments": dto.MaxActiveAssignments,
			"device_token":           dto.DeviceToken,
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

// Get retrieves a courier by ID, including the availability projections.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var row courierRow
	err := r.db.WithContext(ctx).Model(&CourierDTO{}).
		Select(projectionSelect).
		Where("couriers.id = ?", id.Bytes()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return toDomain(row)
}

// GetAllAvailable retrieves couriers that are dispatch candidates: online,
// on an open shift, with a reported location and spare assignment capacity.
// The same availability rule lives on the aggregate; the SQL filter just
// keeps the result set small.
func (r *GormCourierRepository) GetAllAvailable(ctx context.Context) ([]*courier.Courier, error) {
	var rows []courierRow
	err := r.db.WithContext(ctx).Model(&CourierDTO{}).
		Select(projectionSelect).
		Where("couriers.online AND couriers.location_lat IS NOT NULL").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	couriers := make([]*courier.Courier, 0, len(rows))
	for _, row := range rows {
		c, domainErr := toDomain(row)
		if domainErr != nil {
			return nil, domainErr
		}
		if !c.IsAvailable() {
			continue
		}
		couriers = append(couriers, c)
	}

	return couriers, nil
}
