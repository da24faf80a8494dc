package memory

import (
	"context"
	"sort"
	"sync"

	"pet-adoption-marketplace/internal/domain/wishlist"
)

type wishlistKey struct {
	userID string
	petID  string
}

type wishlistRepo struct {
	mu    sync.RWMutex
	items map[wishlistKey]wishlist.Item
	seq   map[wishlistKey]int
	next  int
}

func NewWishlistRepo() wishlist.Repository {
	return &wishlistRepo{
		items: make(map[wishlistKey]wishlist.Item),
		seq:   make(map[wishlistKey]int),
	}
}

func (r *wishlistRepo) Add(ctx context.Context, it wishlist.Item) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := wishlistKey{it.UserID, it.PetID}
	if _, ok := r.items[k]; ok {
		return false, nil
	}
	r.items[k] = it
	r.next++
	r.seq[k] = r.next
	return true, nil
}

func (r *wishlistRepo) Remove(ctx context.Context, userID, petID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := wishlistKey{userID, petID}
	if _, ok := r.items[k]; !ok {
		return false, nil
	}
	delete(r.items, k)
	delete(r.seq, k)
	return true, nil
}

func (r *wishlistRepo) Has(ctx context.Context, userID, petID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[wishlistKey{userID, petID}]
	return ok, nil
}

func (r *wishlistRepo) ListPetIDs(ctx context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]wishlistKey, 0)
	for k := range r.items {
		if k.userID == userID {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := r.items[keys[i]], r.items[keys[j]]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return r.seq[keys[i]] > r.seq[keys[j]]
	})

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.petID)
	}
	return out, nil
}
