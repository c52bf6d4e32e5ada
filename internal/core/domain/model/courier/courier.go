package courier

import (
	"errors"
	"time"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/pkg/errs"
	"geodispatch/internal/pkg/guard"
)

const (
	// defaultMaxActiveAssignments caps concurrent live assignments per courier
	// when no explicit limit is configured.
	defaultMaxActiveAssignments = 1
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery courier available for dispatch.
// It is an aggregate root that manages courier identity, presence, and the
// last reported location used for distance ranking.
//
// Key responsibilities:
//   - Managing courier identity (ID, name, device token for push delivery)
//   - Tracking online presence and the last reported location
//   - Exposing dispatch eligibility: online, on an open shift, and under
//     the concurrent-assignment limit
//
// Business rules:
//   - Courier must have a valid UUID and a non-empty name
//   - Reporting a location refreshes the last-active timestamp
//   - The shift and active-assignment fields are projections populated at
//     restore time; the selector filters on them without extra queries
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// online reports whether the courier's app session is active
	online bool
	// location is the last reported position, nil before the first report
	location *kernel.GeoPoint
	// lastActiveAt is when the courier last reported in
	lastActiveAt time.Time
	// maxActiveAssignments caps concurrent live assignments
	maxActiveAssignments int
	// deviceToken targets push notifications, empty when unregistered
	deviceToken string
	// hasOpenShift is a projection of the courier's current shift state
	hasOpenShift bool
	// activeAssignments is a projection of the courier's live assignment count
	activeAssignments int
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier with the specified parameters.
// New couriers start offline, without a reported location and without an
// open shift; they become dispatchable only after going online on a shift.
//
// Parameters:
//   - id: Unique identifier for the courier (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - maxActiveAssignments: Concurrent live assignment cap, 0 means the default of 1
//   - deviceToken: Push notification target, may be empty
//
// Returns the courier, or an aggregated validation error.
func NewCourier(id kernel.UUID, name string, maxActiveAssignments int, deviceToken string) (*Courier, error) {
	c := &Courier{
		deviceToken: deviceToken,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setMaxActiveAssignments(maxActiveAssignments),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier from persistent storage, including
// the shift and live-assignment projections the candidate selector filters on.
func RestoreCourier(
	id kernel.UUID,
	name string,
	online bool,
	location *kernel.GeoPoint,
	lastActiveAt time.Time,
	maxActiveAssignments int,
	deviceToken string,
	hasOpenShift bool,
	activeAssignments int,
) (*Courier, error) {
	c, err := NewCourier(id, name, maxActiveAssignments, deviceToken)
	if err != nil {
		return nil, err
	}

	if location != nil {
		if err = location.Validate(); err != nil {
			return nil, err
		}
		p := *location
		c.location = &p
	}

	if activeAssignments < 0 {
		return nil, errs.NewValueIsOutOfRangeError("active assignments", activeAssignments, 0, c.maxActiveAssignments)
	}

	c.online = online
	c.lastActiveAt = lastActiveAt
	c.hasOpenShift = hasOpenShift
	c.activeAssignments = activeAssignments
	return c, nil
}

// Validate ensures the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}

	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's name.
func (c *Courier) Name() string {
	return c.name
}

// IsOnline reports whether the courier's app session is active.
func (c *Courier) IsOnline() bool {
	return c.online
}

// Location returns the last reported position, or nil before the first report.
func (c *Courier) Location() *kernel.GeoPoint {
	if c.location == nil {
		return nil
	}
	p := *c.location
	return &p
}

// LastActiveAt returns the time of the courier's last report.
func (c *Courier) LastActiveAt() time.Time {
	return c.lastActiveAt
}

// MaxActiveAssignments returns the concurrent live assignment cap.
func (c *Courier) MaxActiveAssignments() int {
	return c.maxActiveAssignments
}

// DeviceToken returns the push notification target, empty when unregistered.
func (c *Courier) DeviceToken() string {
	return c.deviceToken
}

// HasOpenShift reports whether the courier currently has an open shift.
func (c *Courier) HasOpenShift() bool {
	return c.hasOpenShift
}

// ActiveAssignments returns the courier's current live assignment count.
func (c *Courier) ActiveAssignments() int {
	return c.activeAssignments
}

// IsAvailable reports dispatch eligibility: the courier is online, on an
// open shift, has reported a location, and is under the assignment cap.
func (c *Courier) IsAvailable() bool {
	return c.online &&
		c.hasOpenShift &&
		c.location != nil &&
		c.activeAssignments < c.maxActiveAssignments
}

// DistanceTo returns the great-circle distance in meters from the courier's
// last reported location to the given point.
func (c *Courier) DistanceTo(point kernel.GeoPoint) (float64, error) {
	if c.location == nil {
		return 0, errs.NewValueIsRequiredError("courier location")
	}

	return c.location.DistanceTo(point)
}

// GoOnline marks the courier's session active and refreshes last activity.
func (c *Courier) GoOnline(now time.Time) {
	c.online = true
	c.lastActiveAt = now
}

// GoOffline marks the courier's session inactive.
func (c *Courier) GoOffline() {
	c.online = false
}

// ReportLocation stores a newly reported position and refreshes the
// last-active timestamp used by the tie-break ranking.
func (c *Courier) ReportLocation(point kernel.GeoPoint, now time.Time) error {
	if err := point.Validate(); err != nil {
		return err
	}

	c.location = &point
	c.lastActiveAt = now
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setMaxActiveAssignments(limit int) error {
	if limit < 0 {
		return errs.NewValueIsOutOfRangeError("max active assignments", limit, 0, 100)
	}
	if limit == 0 {
		limit = defaultMaxActiveAssignments
	}
	c.maxActiveAssignments = limit
	return nil
}
