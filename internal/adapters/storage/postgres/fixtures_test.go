package postgres

import (
	"pet-adoption-marketplace/internal/domain/users"
	"pet-adoption-marketplace/internal/domain/wishlist"
)

func wishlistItem(userID, petID string) wishlist.Item {
	return wishlist.Item{UserID: userID, PetID: petID, CreatedAt: t0}
}

func userFixture() users.User {
	return users.User{ID: "u1", Name: "John", Email: "john@gmail.com", Password: "password", CreatedAt: t0}
}
