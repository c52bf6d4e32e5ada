package address

import (
	"fmt"

	"geodispatch/internal/core/domain/model/kernel"
	"geodispatch/internal/pkg/errs"
)

// OwnerKind discriminates the entity type an address is attached to.
// It replaces an untyped polymorphic foreign key with an explicit tagged
// reference; adapters map the discriminator to the matching loader.
type OwnerKind string

const (
	// OwnerKindUser marks an address belonging to an end user.
	OwnerKindUser OwnerKind = "user"
	// OwnerKindStore marks an address belonging to a store.
	OwnerKindStore OwnerKind = "store"
	// OwnerKindCourier marks an address belonging to a courier.
	OwnerKindCourier OwnerKind = "courier"
)

// getValidOwnerKinds returns the set of valid discriminator values.
func getValidOwnerKinds() map[OwnerKind]struct{} {
	return map[OwnerKind]struct{}{
		OwnerKindUser:    {},
		OwnerKindStore:   {},
		OwnerKindCourier: {},
	}
}

// ParseOwnerKind converts a raw discriminator string to an OwnerKind.
// Returns an error for unknown values.
func ParseOwnerKind(raw string) (OwnerKind, error) {
	kind := OwnerKind(raw)
	if err := kind.Validate(); err != nil {
		return "", err
	}
	return kind, nil
}

// Validate checks the OwnerKind against the known discriminator values.
func (k OwnerKind) Validate() error {
	if _, ok := getValidOwnerKinds()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("owner kind",
			fmt.Errorf("%q is not a valid owner kind", string(k)))
	}
	return nil
}

// String returns the raw discriminator value.
func (k OwnerKind) String() string {
	return string(k)
}

// OwnerRef is the tagged reference to the entity owning an address.
type OwnerRef struct {
	kind OwnerKind
	id   kernel.UUID
}

// NewOwnerRef creates a validated owner reference.
func NewOwnerRef(kind OwnerKind, id kernel.UUID) (OwnerRef, error) {
	if err := kind.Validate(); err != nil {
		return OwnerRef{}, err
	}
	if err := id.Validate(); err != nil {
		return OwnerRef{}, err
	}

	return OwnerRef{kind: kind, id: id}, nil
}

// Kind returns the discriminator value.
func (r OwnerRef) Kind() OwnerKind {
	return r.kind
}

// ID returns the owning entity's identifier.
func (r OwnerRef) ID() kernel.UUID {
	return r.id
}

// Validate checks both the discriminator and the identifier.
func (r OwnerRef) Validate() error {
	if err := r.kind.Validate(); err != nil {
		return err
	}
	return r.id.Validate()
}

// String returns the "kind:id" form used in logs.
func (r OwnerRef) String() string {
	return fmt.Sprintf("%s:%s", r.kind, r.id)
}
