package messages

import "context"

type Repository interface {
	Create(ctx context.Context, m Message) error

	// Conversation devuelve ambos sentidos ordenados por CreatedAt asc (desempate: orden de inserción).
	Conversation(ctx context.Context, userA, userB string) ([]Message, error)

	// Counterparts devuelve un Thread por contraparte (sin nombre/imagen), actividad más reciente primero.
	Counterparts(ctx context.Context, userID string) ([]Thread, error)
}
