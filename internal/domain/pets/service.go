package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"pet-adoption-marketplace/internal/domain/apperr"
	"pet-adoption-marketplace/internal/domain/users"

	"github.com/google/uuid"
)

// OwnerLookup confirma que el dueño exista. users.Service lo implementa.
type OwnerLookup interface {
	GetByID(ctx context.Context, id string) (users.User, error)
}

type Service struct {
	repo   Repository
	owners OwnerLookup
	now    func() time.Time
}

// NewService: owners nil omite el chequeo de dueño (solo tests).
func NewService(repo Repository, owners OwnerLookup) *Service {
	return &Service{
		repo:   repo,
		owners: owners,
		now:    time.Now,
	}
}

type CreateInput struct {
	Name        string
	Age         string
	Breed       string
	Type        string
	Description string
	Location    string
	Image       string
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Pet{}, apperr.ErrUnauthorized
	}

	p := Pet{
		ID:          uuid.NewString(),
		OwnerID:     strings.TrimSpace(ownerID),
		Name:        strings.TrimSpace(in.Name),
		Age:         strings.TrimSpace(in.Age),
		Breed:       strings.TrimSpace(in.Breed),
		Type:        Type(strings.ToLower(strings.TrimSpace(in.Type))),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Image:       strings.TrimSpace(in.Image),
	}
	if err := validate(p); err != nil {
		return Pet{}, err
	}
	if err := s.checkOwner(ctx, p.OwnerID); err != nil {
		return Pet{}, err
	}

	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, apperr.Store(err)
	}
	return p, nil
}

// checkOwner replica en memoria la FK owner_id -> users de postgres.
func (s *Service) checkOwner(ctx context.Context, ownerID string) error {
	if s.owners == nil {
		return nil
	}
	if _, err := s.owners.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Validation("owner does not exist")
		}
		return apperr.Store(err)
	}
	return nil
}

func validate(p Pet) error {
	required := []struct {
		field string
		value string
	}{
		{"name", p.Name},
		{"breed", p.Breed},
		{"age", p.Age},
		{"type", string(p.Type)},
		{"description", p.Description},
		{"location", p.Location},
	}
	for _, r := range required {
		if r.value == "" {
			return apperr.Validation("%s required", r.field)
		}
	}
	if !p.Type.Valid() {
		return apperr.Validation("type must be one of dog, cat, bird, rabbit, other")
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, apperr.Validation("pet id required")
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Pet{}, apperr.NotFound("pet")
		}
		return Pet{}, apperr.Store(err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Pet, error) {
	f.Query = strings.TrimSpace(f.Query)
	f.Type = Type(strings.ToLower(strings.TrimSpace(string(f.Type))))
	if f.Type != "" && !f.Type.Valid() {
		return nil, apperr.Validation("unknown pet type %q", f.Type)
	}

	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if items == nil {
		items = []Pet{}
	}
	return items, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	items, err := s.repo.ListByOwner(ctx, strings.TrimSpace(ownerID))
	if err != nil {
		return nil, apperr.Store(err)
	}
	if items == nil {
		items = []Pet{}
	}
	return items, nil
}

// OwnerOf expone el dueño de una mascota.
// Lo usan wishlist y el flujo de interés sin depender del modelo completo.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerID, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string
	Age         *string
	Breed       *string
	Type        *string
	Description *string
	Location    *string
	Image       *string
}

// Update aplica cambios parciales. Solo el dueño puede actualizar.
func (s *Service) Update(ctx context.Context, petID, actorID string, in UpdateInput) (Pet, error) {
	if strings.TrimSpace(actorID) == "" {
		return Pet{}, apperr.ErrUnauthorized
	}

	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerID != actorID {
		return Pet{}, apperr.ErrForbidden
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&p.Name, in.Name)
	set(&p.Age, in.Age)
	set(&p.Breed, in.Breed)
	set(&p.Description, in.Description)
	set(&p.Location, in.Location)
	set(&p.Image, in.Image)
	if in.Type != nil {
		p.Type = Type(strings.ToLower(strings.TrimSpace(*in.Type)))
	}

	if err := validate(p); err != nil {
		return Pet{}, err
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Pet{}, apperr.NotFound("pet")
		}
		return Pet{}, apperr.Store(err)
	}
	return p, nil
}

// Delete elimina la publicación. Solo el dueño.
func (s *Service) Delete(ctx context.Context, petID, actorID string) error {
	if strings.TrimSpace(actorID) == "" {
		return apperr.ErrUnauthorized
	}

	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return err
	}
	if p.OwnerID != actorID {
		return apperr.ErrForbidden
	}

	if err := s.repo.Delete(ctx, p.ID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound("pet")
		}
		return apperr.Store(err)
	}
	return nil
}
