package pets

import (
	"strings"
	"time"
)

// Type define los tipos de mascota publicables.
// @Enum dog, cat, bird, rabbit, other
type Type string

const (
	TypeDog    Type = "dog"
	TypeCat    Type = "cat"
	TypeBird   Type = "bird"
	TypeRabbit Type = "rabbit"
	TypeOther  Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeDog, TypeCat, TypeBird, TypeRabbit, TypeOther:
		return true
	}
	return false
}

// Pet es una publicación de adopción. Solo su dueño (OwnerID) la modifica o elimina.
type Pet struct {
	ID      string
	OwnerID string

	Name        string
	Age         string // texto libre ("2 years", "6 months")
	Breed       string
	Type        Type
	Description string
	Location    string
	Image       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter para el listado del catálogo. Campos vacíos = sin filtro.
type Filter struct {
	Query string // nombre, raza o ubicación (case-insensitive)
	Type  Type
}

// Matches aplica el filtro en memoria.
func (f Filter) Matches(p Pet) bool {
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Breed), q) ||
		strings.Contains(strings.ToLower(p.Location), q)
}
