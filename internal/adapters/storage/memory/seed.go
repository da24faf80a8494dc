package memory

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"pet-adoption-marketplace/internal/domain/notifications"
	"pet-adoption-marketplace/internal/domain/pets"
	"pet-adoption-marketplace/internal/domain/users"
)

// SeedDemo carga los datos de demo (usuarios, mascotas y dos notificaciones) en repos vacíos.
// Solo para dev: las passwords van en claro.
func SeedDemo(ctx context.Context, ur users.Repository, pr pets.Repository, nr notifications.Repository, now time.Time) error {
	demoUsers := []struct{ id, name, email string }{
		{"1", "John Doe", "john@gmail.com"},
		{"2", "Jane Smith", "jane@gmail.com"},
		{"3", "Ajay", "ajay@gmail.com"},
	}
	for _, du := range demoUsers {
		u := users.User{
			ID:           du.id,
			Name:         du.name,
			Email:        du.email,
			Password:     "password",
			ProfileImage: "https://ui-avatars.com/api/?name=" + url.QueryEscape(du.name) + "&background=FFD700&color=000",
			CreatedAt:    now.Add(-30 * 24 * time.Hour),
		}
		if err := ur.Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", du.id, err)
		}
	}

	days := func(n int) time.Time { return now.Add(-time.Duration(n) * 24 * time.Hour) }
	demoPets := []pets.Pet{
		{
			ID: "1", OwnerID: "1", Name: "Buddy", Age: "3", Breed: "Golden Retriever", Type: pets.TypeDog,
			Description: "Friendly and energetic, great with children and other pets.",
			Location:    "New York, NY",
			Image:       "https://images.unsplash.com/photo-1543466835-00a7907e9de1?w=500",
			CreatedAt:   days(7),
		},
		{
			ID: "2", OwnerID: "2", Name: "Whiskers", Age: "2", Breed: "Siamese", Type: pets.TypeCat,
			Description: "Curious and affectionate, fully litter trained and vaccinated.",
			Location:    "Boston, MA",
			Image:       "https://images.unsplash.com/photo-1535268647677-300dbf3d78d1?w=500",
			CreatedAt:   days(3),
		},
		{
			ID: "3", OwnerID: "2", Name: "Max", Age: "1", Breed: "Beagle", Type: pets.TypeDog,
			Description: "Playful puppy who loves runs and fetch. Knows basic commands.",
			Location:    "San Francisco, CA",
			Image:       "https://images.unsplash.com/photo-1582562124811-c09040d0a901?w=500",
			CreatedAt:   days(5),
		},
		{
			ID: "4", OwnerID: "1", Name: "Daisy", Age: "4", Breed: "Persian", Type: pets.TypeCat,
			Description: "Gentle and calm, ideal for a peaceful home.",
			Location:    "Chicago, IL",
			Image:       "https://images.unsplash.com/photo-1596854372407-baba7fef6e51?w=500",
			CreatedAt:   days(2),
		},
	}
	for _, p := range demoPets {
		p.UpdatedAt = p.CreatedAt
		if err := pr.Create(ctx, p); err != nil {
			return fmt.Errorf("seed pet %s: %w", p.ID, err)
		}
	}

	demoNotifications := []notifications.Notification{
		{
			ID: "1", Type: notifications.TypeInterest,
			Message: "Jane Smith is interested in adopting Buddy.",
			PetID:   "1", FromUserID: "2", ToUserID: "1",
			CreatedAt: now.Add(-12 * time.Hour),
		},
		{
			ID: "2", Type: notifications.TypeSystem,
			Message:   "Welcome to PetMagic! Start by adding a pet or browsing available pets.",
			ToUserID:  "1",
			IsRead:    true,
			CreatedAt: days(2),
		},
	}
	for _, n := range demoNotifications {
		if err := nr.Create(ctx, n); err != nil {
			return fmt.Errorf("seed notification %s: %w", n.ID, err)
		}
	}
	return nil
}
