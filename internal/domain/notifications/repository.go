package notifications

import "context"

type Repository interface {
	// Create falla con apperr.ErrConflict si ya existe un interest sin leer
	// para el mismo (PetID, FromUserID).
	Create(ctx context.Context, n Notification) error
	GetByID(ctx context.Context, id string) (Notification, error)

	// ListByRecipient ordena por CreatedAt desc.
	ListByRecipient(ctx context.Context, userID string) ([]Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)

	// MarkRead devuelve true si cambió el flag. apperr.ErrNotFound si no existe.
	MarkRead(ctx context.Context, id string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) (int, error)

	// Respond crea reply y marca originalID como leído en una sola unidad atómica.
	// apperr.ErrConflict si el original ya estaba leído.
	Respond(ctx context.Context, originalID string, reply Notification) error
}
