package messages

import (
	"sync"

	"pet-adoption-marketplace/internal/platform/logger"
	"pet-adoption-marketplace/internal/platform/metrics"
)

// Hub reparte avisos de "la conversación cambió" a los suscriptores de cada par.
// Cada suscriptor tiene un buffer de 1: si no consumió el aviso anterior, el nuevo se descarta
// porque el siguiente snapshot ya incluye todo.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan struct{}]struct{}
	log  logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		subs: make(map[string]map[chan struct{}]struct{}),
		log:  log.With(map[string]any{"component": "messages_hub"}),
	}
}

// Subscribe registra un suscriptor para {userA, userB}. cancel es idempotente.
func (h *Hub) Subscribe(userA, userB string) (<-chan struct{}, func()) {
	key := ConversationKey(userA, userB)
	ch := make(chan struct{}, 1)

	h.mu.Lock()
	if _, ok := h.subs[key]; !ok {
		h.subs[key] = make(map[chan struct{}]struct{})
	}
	h.subs[key][ch] = struct{}{}
	total := len(h.subs[key])
	h.mu.Unlock()

	metrics.SubscriberOpened()
	h.log.Debug("subscriber registered", map[string]any{"conversation": key, "subscribers": total})

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if set, ok := h.subs[key]; ok {
				delete(set, ch)
				if len(set) == 0 {
					delete(h.subs, key)
				}
			}
			h.mu.Unlock()
			close(ch)

			metrics.SubscriberClosed()
			h.log.Debug("subscriber removed", map[string]any{"conversation": key})
		})
	}
	return ch, cancel
}

// Publish avisa a todos los suscriptores del par sin bloquear.
func (h *Hub) Publish(userA, userB string) {
	key := ConversationKey(userA, userB)

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[key] {
		select {
		case ch <- struct{}{}:
		default:
			// ya tiene un aviso pendiente
		}
	}
}

// Subscribers devuelve cuántos suscriptores tiene el par.
func (h *Hub) Subscribers(userA, userB string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[ConversationKey(userA, userB)])
}
