package messages

import (
	"context"
	"strings"
	"time"

	"pet-adoption-marketplace/internal/domain/apperr"
	"pet-adoption-marketplace/internal/domain/users"

	"github.com/google/uuid"
)

// ProfileLookup resuelve nombre/avatar de las contrapartes. users.Service lo implementa.
type ProfileLookup interface {
	Profiles(ctx context.Context, ids []string) (map[string]users.Profile, error)
}

// Notifier recibe un aviso por cada mensaje persistido. Hub lo implementa.
type Notifier interface {
	Publish(userA, userB string)
}

type Service struct {
	repo     Repository
	profiles ProfileLookup
	notifier Notifier
	now      func() time.Time
}

// NewService: profiles y notifier pueden ser nil.
func NewService(repo Repository, profiles ProfileLookup, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		profiles: profiles,
		notifier: notifier,
		now:      time.Now,
	}
}

type SendInput struct {
	SenderID   string
	ReceiverID string
	Content    string
}

func (s *Service) Send(ctx context.Context, in SendInput) (Message, error) {
	sender := strings.TrimSpace(in.SenderID)
	receiver := strings.TrimSpace(in.ReceiverID)
	content := in.Content

	if sender == "" {
		return Message{}, apperr.Validation("senderId required")
	}
	if receiver == "" {
		return Message{}, apperr.Validation("receiverId required")
	}
	// se valida recortado pero se guarda tal cual se envió
	if strings.TrimSpace(content) == "" {
		return Message{}, apperr.Validation("content required")
	}
	if sender == receiver {
		return Message{}, apperr.Validation("cannot send a message to yourself")
	}

	m := Message{
		ID:         uuid.NewString(),
		SenderID:   sender,
		ReceiverID: receiver,
		Content:    content,
		CreatedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Message{}, apperr.Store(err)
	}

	if s.notifier != nil {
		s.notifier.Publish(sender, receiver)
	}
	return m, nil
}

// Conversation es simétrica: Conversation(a, b) == Conversation(b, a).
func (s *Service) Conversation(ctx context.Context, userA, userB string) ([]Message, error) {
	userA = strings.TrimSpace(userA)
	userB = strings.TrimSpace(userB)
	if userA == "" || userB == "" {
		return nil, apperr.Validation("both user ids required")
	}

	items, err := s.repo.Conversation(ctx, userA, userB)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if items == nil {
		items = []Message{}
	}
	return items, nil
}

// Threads lista una entrada por contraparte. Contrapartes sin usuario conocido quedan con nombre vacío.
func (s *Service) Threads(ctx context.Context, userID string) ([]Thread, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperr.Validation("user id required")
	}

	threads, err := s.repo.Counterparts(ctx, userID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if len(threads) == 0 {
		return []Thread{}, nil
	}
	if s.profiles == nil {
		return threads, nil
	}

	ids := make([]string, 0, len(threads))
	for _, t := range threads {
		ids = append(ids, t.CounterpartID)
	}
	profiles, err := s.profiles.Profiles(ctx, ids)
	if err != nil {
		return nil, apperr.Store(err)
	}

	for i := range threads {
		if p, ok := profiles[threads[i].CounterpartID]; ok {
			threads[i].Name = p.Name
			threads[i].ProfileImage = p.ProfileImage
		}
	}
	return threads, nil
}
