package commands

import (
	"context"
	"errors"

	"geodispatch/internal/core/domain/services"
)

// UpdateAddressCoordinatesCommandHandler handles coordinate changes on an
// address. Resolution runs synchronously: the point and the full
// zone/locality cache are rewritten in the same update, or the cache is
// cleared when the point falls outside every active zone. The address row
// never carries coordinates with a stale resolution.
type UpdateAddressCoordinatesCommandHandler struct {
	uowFactory AddressUoWFactory
	resolver   services.ZoneResolver
}

// NewUpdateAddressCoordinatesCommandHandler creates a handler for address
// coordinate updates.
func NewUpdateAddressCoordinatesCommandHandler(uowFactory AddressUoWFactory) UpdateAddressCoordinatesCommandHandler {
	return UpdateAddressCoordinatesCommandHandler{
		uowFactory: uowFactory,
		resolver:   services.NewZoneResolver(),
	}
}

// Handle processes the coordinate update command.
func (h *UpdateAddressCoordinatesCommandHandler) Handle(ctx context.Context, cmd UpdateAddressCoordinatesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	addressRepo := uow.AddressRepository()
	addr, err := addressRepo.Get(ctx, cmd.AddressID())
	if err != nil {
		return err
	}

	zones, err := uow.ZoneRepository().GetAllActive(ctx)
	if err != nil {
		return err
	}

	resolved, err := h.resolver.Resolve(cmd.Point(), zones)
	switch {
	case errors.Is(err, services.ErrNoZoneFound):
		err = addr.RelocateUnresolved(cmd.Point())
	case err != nil:
		return err
	default:
		err = addr.Relocate(cmd.Point(), resolved.ID(), resolved.Locality())
	}
	if err != nil {
		return err
	}

	if err = addressRepo.Update(ctx, addr); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
