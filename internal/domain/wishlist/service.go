package wishlist

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-marketplace/internal/domain/apperr"
	"pet-adoption-marketplace/internal/domain/pets"
)

// PetLookup lo implementa pets.Service.
type PetLookup interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
}

type Service struct {
	repo Repository
	pets PetLookup
	now  func() time.Time
}

func NewService(repo Repository, petsLookup PetLookup) *Service {
	return &Service{
		repo: repo,
		pets: petsLookup,
		now:  time.Now,
	}
}

// authorize: cada usuario solo toca su propia wishlist.
func authorize(userID, actorID string) (string, error) {
	userID = strings.TrimSpace(userID)
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return "", apperr.ErrUnauthorized
	}
	if userID != actorID {
		return "", apperr.ErrForbidden
	}
	return userID, nil
}

func (s *Service) Add(ctx context.Context, userID, actorID, petID string) error {
	userID, err := authorize(userID, actorID)
	if err != nil {
		return err
	}

	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return err
	}

	if _, err := s.repo.Add(ctx, Item{UserID: userID, PetID: p.ID, CreatedAt: s.now()}); err != nil {
		return apperr.Store(err)
	}
	return nil
}

func (s *Service) Remove(ctx context.Context, userID, actorID, petID string) error {
	userID, err := authorize(userID, actorID)
	if err != nil {
		return err
	}
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return apperr.Validation("pet id required")
	}

	// Quitar algo que no está no es error (idempotente).
	if _, err := s.repo.Remove(ctx, userID, petID); err != nil {
		return apperr.Store(err)
	}
	return nil
}

// Toggle agrega o quita; devuelve si quedó en la wishlist.
func (s *Service) Toggle(ctx context.Context, userID, actorID, petID string) (bool, error) {
	userID, err := authorize(userID, actorID)
	if err != nil {
		return false, err
	}
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return false, apperr.Validation("pet id required")
	}

	removed, err := s.repo.Remove(ctx, userID, petID)
	if err != nil {
		return false, apperr.Store(err)
	}
	if removed {
		return false, nil
	}

	if err := s.Add(ctx, userID, actorID, petID); err != nil {
		return false, err
	}
	return true, nil
}

// List resuelve la wishlist a mascotas. Las mascotas eliminadas se omiten.
func (s *Service) List(ctx context.Context, userID, actorID string) ([]pets.Pet, error) {
	userID, err := authorize(userID, actorID)
	if err != nil {
		return nil, err
	}

	ids, err := s.repo.ListPetIDs(ctx, userID)
	if err != nil {
		return nil, apperr.Store(err)
	}

	out := make([]pets.Pet, 0, len(ids))
	for _, id := range ids {
		p, err := s.pets.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
