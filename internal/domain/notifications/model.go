package notifications

import "time"

// Type clasifica la notificación. No transiciona: una decisión genera una notificación nueva.
// @Enum interest, adoption, confirmation, rejection, system
type Type string

const (
	TypeInterest     Type = "interest"
	TypeAdoption     Type = "adoption"
	TypeConfirmation Type = "confirmation"
	TypeRejection    Type = "rejection"
	TypeSystem       Type = "system"
)

// DefaultType se usa cuando el caller omite type.
const DefaultType = TypeInterest

func (t Type) Valid() bool {
	switch t {
	case TypeInterest, TypeAdoption, TypeConfirmation, TypeRejection, TypeSystem:
		return true
	}
	return false
}

// Decision es la respuesta del dueño a un interest.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// Notification pertenece a ToUserID (destinatario). Solo muta IsRead (unread -> read).
type Notification struct {
	ID      string
	Type    Type
	Message string

	PetID      string // opcional
	FromUserID string // opcional
	ToUserID   string

	IsRead    bool
	CreatedAt time.Time
}

// PetRef y UserRef son lo mínimo que necesita ExpressInterest.
// Evitan importar pets/users desde este paquete.
type PetRef struct {
	ID      string
	Name    string
	OwnerID string
}

type UserRef struct {
	ID   string
	Name string
}
