package users

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"pet-adoption-marketplace/internal/domain/apperr"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthorized)
	ErrEmailTaken         = fmt.Errorf("%w: an account with this email already exists", apperr.ErrConflict)
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type SignupInput struct {
	Name         string
	Email        string
	Password     string
	ProfileImage string
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	if name == "" {
		return User{}, apperr.Validation("name required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return User{}, apperr.Validation("valid email required")
	}
	if in.Password == "" {
		return User{}, apperr.Validation("password required")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return User{}, apperr.Store(err)
	}

	img := strings.TrimSpace(in.ProfileImage)
	if img == "" {
		img = defaultAvatar(name)
	}

	u := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		ProfileImage: img,
		Password:     in.Password,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return User{}, ErrEmailTaken
		}
		return User{}, apperr.Store(err)
	}
	return u, nil
}

// Login compara la password en claro contra la guardada.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, apperr.Store(err)
	}
	if u.Password != password {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, apperr.Validation("user id required")
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return User{}, apperr.NotFound("user")
		}
		return User{}, apperr.Store(err)
	}
	return u, nil
}

type UpdateProfileInput struct {
	// nil = no tocar
	Name         *string
	ProfileImage *string
}

// UpdateProfile solo toca campos de perfil; id/email son inmutables.
func (s *Service) UpdateProfile(ctx context.Context, id, actorID string, in UpdateProfileInput) (User, error) {
	if strings.TrimSpace(actorID) == "" {
		return User{}, apperr.ErrUnauthorized
	}
	if id != actorID {
		return User{}, apperr.ErrForbidden
	}

	u, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return User{}, apperr.Validation("name cannot be empty")
		}
		u.Name = name
	}
	if in.ProfileImage != nil {
		u.ProfileImage = strings.TrimSpace(*in.ProfileImage)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, apperr.Store(err)
	}
	return u, nil
}

// Profiles resuelve perfiles públicos para un conjunto de ids.
// Ids desconocidos quedan fuera del mapa (no es error).
func (s *Service) Profiles(ctx context.Context, ids []string) (map[string]Profile, error) {
	out := make(map[string]Profile, len(ids))
	for _, id := range ids {
		if _, ok := out[id]; ok {
			continue
		}
		u, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				continue
			}
			return nil, apperr.Store(err)
		}
		out[id] = u.Profile()
	}
	return out, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func defaultAvatar(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=FFD700&color=000"
}
