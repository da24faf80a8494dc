package wishlist

import "context"

type Repository interface {
	// Add es idempotente: devuelve false si ya existía.
	Add(ctx context.Context, it Item) (bool, error)
	// Remove es idempotente: devuelve false si no existía.
	Remove(ctx context.Context, userID, petID string) (bool, error)
	Has(ctx context.Context, userID, petID string) (bool, error)

	// ListPetIDs devuelve los pets guardados, más recientes primero.
	ListPetIDs(ctx context.Context, userID string) ([]string, error)
}
