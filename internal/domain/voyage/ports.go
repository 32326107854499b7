package voyage

import "context"

// Repository is the persistence port for voyages
type Repository interface {
	// Save creates or updates a voyage, keyed by its external code
	Save(ctx context.Context, v *Voyage) error

	// FindByCode retrieves a voyage by its external code.
	// Returns a VoyageNotFoundError when no such voyage exists.
	FindByCode(ctx context.Context, code string) (*Voyage, error)

	// List returns up to limit voyages ordered by departure time ascending
	List(ctx context.Context, limit int) ([]*Voyage, error)

	// Delete removes a voyage and its assignments
	Delete(ctx context.Context, code string) error
}
