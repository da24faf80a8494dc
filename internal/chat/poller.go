// Package chat mantiene una conversación actualizada del lado del consumidor.
// Poller es el mecanismo base (re-fetch cada Interval); Feed permite cambiarlo por push sin tocar al consumidor.
package chat

import (
	"context"
	"errors"
	"time"

	"pet-adoption-marketplace/internal/client"
	"pet-adoption-marketplace/internal/platform/logger"
)

const DefaultInterval = 3 * time.Second

// FetchFunc trae la conversación completa.
type FetchFunc func(ctx context.Context) ([]client.Message, error)

type Poller struct {
	Fetch    FetchFunc
	Interval time.Duration

	// OnSnapshot recibe cada resultado exitoso mientras Run no fue cancelado.
	OnSnapshot func([]client.Message)
	// OnError recibe errores de fetch. No hay reintento más allá del próximo tick.
	OnError func(error)

	Log logger.Logger
}

type fetchResult struct {
	msgs []client.Message
	err  error
}

// Run hace un fetch inmediato y luego uno por tick hasta que ctx se cancela.
// Un fetch en curso no se aborta: si termina después de la cancelación, su resultado se descarta.
// Siempre devuelve ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	if p.Fetch == nil {
		return errors.New("chat: poller without fetch func")
	}
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	log := p.Log
	if log == nil {
		log = logger.Nop()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := p.fetchOnce(ctx, log); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *Poller) fetchOnce(ctx context.Context, log logger.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// buffer 1: si abandonamos, la goroutine igual puede terminar.
	done := make(chan fetchResult, 1)
	go func() {
		msgs, err := p.Fetch(context.WithoutCancel(ctx))
		done <- fetchResult{msgs: msgs, err: err}
	}()

	select {
	case <-ctx.Done():
		log.Debug("poll cancelled with fetch in flight", nil)
		return ctx.Err()
	case res := <-done:
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if res.err != nil {
			log.Warn("poll fetch failed", map[string]any{"error": res.err.Error()})
			if p.OnError != nil {
				p.OnError(res.err)
			}
			return nil
		}
		if p.OnSnapshot != nil {
			p.OnSnapshot(res.msgs)
		}
		return nil
	}
}
