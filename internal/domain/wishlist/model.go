package wishlist

import "time"

// Item marca una mascota guardada por un usuario. El par (UserID, PetID) es único.
type Item struct {
	UserID    string
	PetID     string
	CreatedAt time.Time
}
