package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption-marketplace/internal/domain/apperr"

	"github.com/google/uuid"
)

var (
	ErrAlreadyInterested = fmt.Errorf("%w: interest already sent for this pet", apperr.ErrConflict)
	ErrAlreadyAnswered   = fmt.Errorf("%w: adoption request already answered", apperr.ErrConflict)
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

type CreateInput struct {
	Type       string // vacío => DefaultType
	Message    string
	PetID      string
	FromUserID string
	ToUserID   string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Notification, error) {
	n, err := s.build(in)
	if err != nil {
		return Notification{}, err
	}

	if err := s.repo.Create(ctx, n); err != nil {
		if n.Type == TypeInterest && errors.Is(err, apperr.ErrConflict) {
			return Notification{}, ErrAlreadyInterested
		}
		return Notification{}, apperr.Store(err)
	}
	return n, nil
}

func (s *Service) build(in CreateInput) (Notification, error) {
	msg := strings.TrimSpace(in.Message)
	to := strings.TrimSpace(in.ToUserID)

	if msg == "" {
		return Notification{}, apperr.Validation("message required")
	}
	if to == "" {
		return Notification{}, apperr.Validation("toUserId required")
	}

	t := Type(strings.ToLower(strings.TrimSpace(in.Type)))
	if t == "" {
		t = DefaultType
	}
	if !t.Valid() {
		return Notification{}, apperr.Validation("unknown notification type %q", in.Type)
	}

	return Notification{
		ID:         uuid.NewString(),
		Type:       t,
		Message:    msg,
		PetID:      strings.TrimSpace(in.PetID),
		FromUserID: strings.TrimSpace(in.FromUserID),
		ToUserID:   to,
		IsRead:     false,
		CreatedAt:  s.now(),
	}, nil
}

// ListForUser devuelve las notificaciones recibidas por userID, más recientes primero.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Notification, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperr.Validation("user id required")
	}
	items, err := s.repo.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if items == nil {
		items = []Notification{}
	}
	return items, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, apperr.Validation("user id required")
	}
	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, apperr.Store(err)
	}
	return n, nil
}

// MarkRead es idempotente. Devuelve si hubo cambio (para métricas).
func (s *Service) MarkRead(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, apperr.Validation("notification id required")
	}
	changed, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return false, apperr.NotFound("notification")
		}
		return false, apperr.Store(err)
	}
	return changed, nil
}

// MarkAllRead es idempotente; devuelve cuántas pasaron a leídas.
func (s *Service) MarkAllRead(ctx context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, apperr.Validation("user id required")
	}
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, apperr.Store(err)
	}
	return n, nil
}

// ExpressInterest avisa al dueño de la mascota que from quiere adoptarla.
func (s *Service) ExpressInterest(ctx context.Context, pet PetRef, from UserRef) (Notification, error) {
	if strings.TrimSpace(from.ID) == "" {
		return Notification{}, apperr.ErrUnauthorized
	}
	if strings.TrimSpace(pet.ID) == "" {
		return Notification{}, apperr.Validation("pet id required")
	}
	if strings.TrimSpace(pet.OwnerID) == "" {
		return Notification{}, apperr.Validation("pet has no owner")
	}
	if from.ID == pet.OwnerID {
		return Notification{}, apperr.ErrSelfInterest
	}

	return s.Create(ctx, CreateInput{
		Type:       string(TypeInterest),
		Message:    interestMessage(pet, from),
		PetID:      pet.ID,
		FromUserID: from.ID,
		ToUserID:   pet.OwnerID,
	})
}

// Respond responde un interest: crea confirmation/rejection para el interesado
// y marca el original como leído, todo en una sola operación del repo.
func (s *Service) Respond(ctx context.Context, notificationID, responderID string, d Decision) (Notification, error) {
	responderID = strings.TrimSpace(responderID)
	if responderID == "" {
		return Notification{}, apperr.ErrUnauthorized
	}

	var (
		replyType Type
		verb      string
	)
	switch Decision(strings.ToLower(strings.TrimSpace(string(d)))) {
	case DecisionAccept:
		replyType, verb = TypeConfirmation, "accepted"
	case DecisionReject:
		replyType, verb = TypeRejection, "declined"
	default:
		return Notification{}, apperr.Validation("decision must be accept or reject")
	}

	notificationID = strings.TrimSpace(notificationID)
	if notificationID == "" {
		return Notification{}, apperr.Validation("notification id required")
	}

	orig, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Notification{}, apperr.NotFound("notification")
		}
		return Notification{}, apperr.Store(err)
	}

	if orig.Type != TypeInterest {
		return Notification{}, apperr.Validation("only interest notifications can be answered")
	}
	if orig.ToUserID != responderID {
		return Notification{}, apperr.ErrForbidden
	}
	if orig.IsRead {
		return Notification{}, ErrAlreadyAnswered
	}
	if orig.FromUserID == "" {
		return Notification{}, apperr.Validation("interest has no sender to answer")
	}

	reply := Notification{
		ID:         uuid.NewString(),
		Type:       replyType,
		Message:    fmt.Sprintf("Your adoption request was %s.", verb),
		PetID:      orig.PetID,
		FromUserID: responderID,
		ToUserID:   orig.FromUserID,
		IsRead:     false,
		CreatedAt:  s.now(),
	}

	if err := s.repo.Respond(ctx, orig.ID, reply); err != nil {
		switch {
		case errors.Is(err, apperr.ErrConflict):
			return Notification{}, ErrAlreadyAnswered
		case errors.Is(err, apperr.ErrNotFound):
			return Notification{}, apperr.NotFound("notification")
		}
		return Notification{}, apperr.Store(err)
	}
	return reply, nil
}

func interestMessage(pet PetRef, from UserRef) string {
	who := strings.TrimSpace(from.Name)
	if who == "" {
		who = "Someone"
	}
	what := strings.TrimSpace(pet.Name)
	if what == "" {
		what = "your pet"
	}
	return fmt.Sprintf("%s is interested in adopting %s.", who, what)
}
