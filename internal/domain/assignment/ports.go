package assignment

import "context"

// Repository is the persistence port for voyage assignments. Implementations
// must make Move atomic: the shipment is never observable as unassigned
// between the delete of its prior assignment and the insert of the new one.
type Repository interface {
	// Move assigns the shipment to the voyage, replacing any existing
	// assignment for the shipment, all inside one transaction.
	Move(ctx context.Context, shipmentCode, voyageCode string) error

	// Delete removes the assignment for the (voyage, shipment) pair
	Delete(ctx context.Context, voyageCode, shipmentCode string) error

	// ListForVoyage returns the current assignments on a voyage
	ListForVoyage(ctx context.Context, voyageCode string) ([]*Assignment, error)

	// ActiveVoyageCode returns the voyage a shipment is currently assigned
	// to, or ok=false when the shipment is unassigned.
	ActiveVoyageCode(ctx context.Context, shipmentCode string) (code string, ok bool, err error)

	// ListLoads returns one Load per committed assignment across all
	// voyages, for ledger construction at the start of a batch run.
	ListLoads(ctx context.Context) ([]Load, error)
}
