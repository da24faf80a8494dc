package users

import "time"

// User es la identidad pública de un usuario del marketplace.
// Password se guarda en claro (login por comparación simple, sin diseño criptográfico).
type User struct {
	ID           string
	Name         string
	Email        string
	ProfileImage string
	Password     string

	CreatedAt time.Time
}

// Profile es la proyección pública (sin password) que consumen otros módulos.
type Profile struct {
	ID           string
	Name         string
	ProfileImage string
}

func (u User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, ProfileImage: u.ProfileImage}
}
