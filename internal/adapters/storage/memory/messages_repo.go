package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-marketplace/internal/domain/messages"
)

// messageRepo es append-only; el índice del slice es el orden de inserción.
type messageRepo struct {
	mu    sync.RWMutex
	items []messages.Message
}

func NewMessageRepo() messages.Repository {
	return &messageRepo{items: make([]messages.Message, 0)}
}

func (r *messageRepo) Create(ctx context.Context, m messages.Message) error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("message id required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, m)
	return nil
}

func (r *messageRepo) Conversation(ctx context.Context, userA, userB string) ([]messages.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]messages.Message, 0)
	for _, m := range r.items {
		if (m.SenderID == userA && m.ReceiverID == userB) ||
			(m.SenderID == userB && m.ReceiverID == userA) {
			out = append(out, m)
		}
	}
	// Stable: a igual CreatedAt se mantiene el orden de inserción.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *messageRepo) Counterparts(ctx context.Context, userID string) ([]messages.Thread, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byCounterpart := make(map[string]*messages.Thread)
	lastIdx := make(map[string]int)

	for i, m := range r.items {
		var other string
		switch userID {
		case m.SenderID:
			other = m.ReceiverID
		case m.ReceiverID:
			other = m.SenderID
		default:
			continue
		}

		t, ok := byCounterpart[other]
		if !ok {
			t = &messages.Thread{CounterpartID: other}
			byCounterpart[other] = t
		}
		if !m.CreatedAt.Before(t.LastMessageAt) {
			t.LastMessageAt = m.CreatedAt
		}
		lastIdx[other] = i
	}

	out := make([]messages.Thread, 0, len(byCounterpart))
	for _, t := range byCounterpart {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastMessageAt.Equal(out[j].LastMessageAt) {
			return out[i].LastMessageAt.After(out[j].LastMessageAt)
		}
		return lastIdx[out[i].CounterpartID] > lastIdx[out[j].CounterpartID]
	})
	return out, nil
}
