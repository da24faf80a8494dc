package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-marketplace/internal/domain/apperr"
	"pet-adoption-marketplace/internal/domain/notifications"
)

// notificationRepo usa un único lock para que el chequeo de duplicados
// y el respond (insert + mark read) sean atómicos.
type notificationRepo struct {
	mu   sync.RWMutex
	byID map[string]notifications.Notification
	seq  map[string]int
	next int
}

func NewNotificationRepo() notifications.Repository {
	return &notificationRepo{
		byID: make(map[string]notifications.Notification),
		seq:  make(map[string]int),
	}
}

func (r *notificationRepo) Create(ctx context.Context, n notifications.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(n)
}

func (r *notificationRepo) insertLocked(n notifications.Notification) error {
	if strings.TrimSpace(n.ID) == "" {
		return errors.New("notification id required")
	}
	if _, exists := r.byID[n.ID]; exists {
		return apperr.Conflict("notification already exists")
	}
	if r.hasUnreadInterestLocked(n) {
		return apperr.Conflict("unread interest already exists for pet %s from user %s", n.PetID, n.FromUserID)
	}

	r.byID[n.ID] = n
	r.next++
	r.seq[n.ID] = r.next
	return nil
}

// hasUnreadInterestLocked replica el índice único parcial de postgres.
func (r *notificationRepo) hasUnreadInterestLocked(n notifications.Notification) bool {
	if n.Type != notifications.TypeInterest || n.PetID == "" || n.FromUserID == "" {
		return false
	}
	for _, e := range r.byID {
		if e.Type == notifications.TypeInterest && !e.IsRead &&
			e.PetID == n.PetID && e.FromUserID == n.FromUserID {
			return true
		}
	}
	return false
}

func (r *notificationRepo) GetByID(ctx context.Context, id string) (notifications.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.byID[id]
	if !ok {
		return notifications.Notification{}, ErrNotFound
	}
	return n, nil
}

func (r *notificationRepo) ListByRecipient(ctx context.Context, userID string) ([]notifications.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]notifications.Notification, 0)
	for _, n := range r.byID {
		if n.ToUserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.seq[out[i].ID] > r.seq[out[j].ID]
	})
	return out, nil
}

func (r *notificationRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := 0
	for _, n := range r.byID {
		if n.ToUserID == userID && !n.IsRead {
			c++
		}
	}
	return c, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.byID[id]
	if !ok {
		return false, ErrNotFound
	}
	if n.IsRead {
		return false, nil
	}
	n.IsRead = true
	r.byID[id] = n
	return true, nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := 0
	for id, n := range r.byID {
		if n.ToUserID == userID && !n.IsRead {
			n.IsRead = true
			r.byID[id] = n
			c++
		}
	}
	return c, nil
}

func (r *notificationRepo) Respond(ctx context.Context, originalID string, reply notifications.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orig, ok := r.byID[originalID]
	if !ok {
		return ErrNotFound
	}
	if orig.IsRead {
		return apperr.Conflict("notification %s already read", originalID)
	}
	if err := r.insertLocked(reply); err != nil {
		return err
	}
	orig.IsRead = true
	r.byID[originalID] = orig
	return nil
}
