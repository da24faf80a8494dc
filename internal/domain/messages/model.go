package messages

import "time"

// Message es inmutable una vez creado.
type Message struct {
	ID         string
	SenderID   string
	ReceiverID string
	Content    string
	CreatedAt  time.Time
}

// Thread es una proyección: un registro por contraparte con la que userID intercambió mensajes.
// No se persiste.
type Thread struct {
	CounterpartID string
	Name          string
	ProfileImage  string
	LastMessageAt time.Time
}

// ConversationKey identifica el par no ordenado {a, b}.
func ConversationKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}
