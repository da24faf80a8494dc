package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"pet-adoption-marketplace/internal/client"
	"pet-adoption-marketplace/internal/platform/logger"

	"github.com/gorilla/websocket"
)

// Update es lo que entrega un Feed: un snapshot completo o un error transitorio.
type Update struct {
	Messages []client.Message
	Err      error
}

// Feed entrega la conversación {userA, userB} hasta que ctx se cancela; entonces cierra el canal.
type Feed interface {
	Subscribe(ctx context.Context, userA, userB string) (<-chan Update, error)
}

// ConversationFetcher lo implementa *client.Client.
type ConversationFetcher interface {
	Conversation(ctx context.Context, userA, userB string) ([]client.Message, error)
}

// -------------------------
// Polling
// -------------------------

type PollingFeed struct {
	Fetcher  ConversationFetcher
	Interval time.Duration
	Log      logger.Logger
}

func (f *PollingFeed) Subscribe(ctx context.Context, userA, userB string) (<-chan Update, error) {
	if f.Fetcher == nil {
		return nil, errors.New("chat: polling feed without fetcher")
	}

	out := make(chan Update, 1)
	var last string

	p := &Poller{
		Fetch: func(ctx context.Context) ([]client.Message, error) {
			return f.Fetcher.Conversation(ctx, userA, userB)
		},
		Interval: f.Interval,
		Log:      f.Log,
		OnSnapshot: func(msgs []client.Message) {
			// Solo emitimos cuando cambió algo.
			sig := signature(msgs)
			if sig == last {
				return
			}
			last = sig
			deliver(ctx, out, Update{Messages: msgs})
		},
		OnError: func(err error) {
			deliver(ctx, out, Update{Err: err})
		},
	}

	go func() {
		defer close(out)
		_ = p.Run(ctx)
	}()
	return out, nil
}

// -------------------------
// WebSocket push
// -------------------------

type WebSocketFeed struct {
	// URLFor arma la URL ws:// de la conversación (client.Client.ConversationWSURL).
	URLFor func(userA, userB string) string
	Header http.Header
	Dialer *websocket.Dialer
	Log    logger.Logger
}

type snapshotFrame struct {
	Type     string           `json:"type"`
	Messages []client.Message `json:"messages"`
}

func (f *WebSocketFeed) Subscribe(ctx context.Context, userA, userB string) (<-chan Update, error) {
	if f.URLFor == nil {
		return nil, errors.New("chat: websocket feed without url builder")
	}
	dialer := f.Dialer
	if dialer == nil {
		dialer = &websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	}
	log := f.Log
	if log == nil {
		log = logger.Nop()
	}

	conn, _, err := dialer.DialContext(ctx, f.URLFor(userA, userB), f.Header)
	if err != nil {
		return nil, fmt.Errorf("chat: websocket dial: %w", err)
	}

	out := make(chan Update, 1)
	var closeOnce sync.Once
	closeConn := func() {
		closeOnce.Do(func() {
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second),
			)
			_ = conn.Close()
		})
	}

	finished := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			closeConn()
		case <-finished:
		}
	}()

	go func() {
		defer close(out)
		defer close(finished)
		defer closeConn()

		for {
			var frame snapshotFrame
			if err := conn.ReadJSON(&frame); err != nil {
				if ctx.Err() == nil {
					log.Warn("websocket feed closed", map[string]any{"error": err.Error()})
					deliver(ctx, out, Update{Err: err})
				}
				return
			}
			if frame.Type != "snapshot" {
				continue
			}
			if !deliver(ctx, out, Update{Messages: frame.Messages}) {
				return
			}
		}
	}()

	return out, nil
}

// -------------------------
// Fallback
// -------------------------

// FallbackFeed intenta Primary (push) y si no puede suscribirse usa Secondary (polling).
type FallbackFeed struct {
	Primary   Feed
	Secondary Feed
	Log       logger.Logger
}

func (f *FallbackFeed) Subscribe(ctx context.Context, userA, userB string) (<-chan Update, error) {
	ch, err := f.Primary.Subscribe(ctx, userA, userB)
	if err == nil {
		return ch, nil
	}
	if f.Log != nil {
		f.Log.Info("push feed unavailable, falling back to polling", map[string]any{"error": err.Error()})
	}
	return f.Secondary.Subscribe(ctx, userA, userB)
}

// deliver entrega u salvo que ctx esté cancelado. Devuelve false si no entregó.
func deliver(ctx context.Context, out chan<- Update, u Update) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case out <- u:
		return true
	case <-ctx.Done():
		return false
	}
}

// signature identifica un snapshot por cantidad + último id (los mensajes son inmutables).
func signature(msgs []client.Message) string {
	if len(msgs) == 0 {
		return "0"
	}
	return fmt.Sprintf("%d:%s", len(msgs), msgs[len(msgs)-1].ID)
}
