package store

import (
	"errors"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/pkg/errs"
	"geodispatch/internal/pkg/guard"
)

var (
	// ErrStoreIsNotConstructed is returned when using an improperly initialized Store.
	ErrStoreIsNotConstructed = errors.New("Store must be created via NewStore constructor")
	// ErrNameIsRequired is returned when attempting to create a store without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Store represents an order origin: the pickup side of every dispatch.
// Dispatch only needs the store's identity and pickup coordinates.
type Store struct {
	// id uniquely identifies the store
	id kernel.UUID
	// name is the human-readable name of the store
	name string
	// location is the pickup point used for candidate ranking
	location kernel.GeoPoint
	// guard ensures the store was properly constructed
	guard guard.ConstructorGuard
}

// NewStore creates a new Store with a validated pickup location.
func NewStore(id kernel.UUID, name string, location kernel.GeoPoint) (*Store, error) {
	s := &Store{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setName(name),
		s.setLocation(location),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Store was created through a constructor.
func (s *Store) Validate() error {
	if s == nil {
		return ErrStoreIsNotConstructed
	}

	return s.guard.Validate(ErrStoreIsNotConstructed)
}

// ID returns the store's unique identifier.
func (s *Store) ID() kernel.UUID {
	return s.id
}

// Name returns the store's name.
func (s *Store) Name() string {
	return s.name
}

// Location returns the pickup point.
func (s *Store) Location() kernel.GeoPoint {
	return s.location
}

func (s *Store) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Store) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}

func (s *Store) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	s.location = location
	return nil
}
