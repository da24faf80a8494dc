package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)

	// List ordena por CreatedAt desc (lo más nuevo arriba en el catálogo).
	List(ctx context.Context, f Filter) ([]Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)
}
