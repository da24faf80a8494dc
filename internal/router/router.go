package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	mem "pet-adoption-marketplace/internal/adapters/storage/memory"
	pg "pet-adoption-marketplace/internal/adapters/storage/postgres"
	"pet-adoption-marketplace/internal/config"
	_ "pet-adoption-marketplace/internal/docs"
	"pet-adoption-marketplace/internal/domain/messages"
	"pet-adoption-marketplace/internal/domain/notifications"
	"pet-adoption-marketplace/internal/domain/pets"
	"pet-adoption-marketplace/internal/domain/users"
	"pet-adoption-marketplace/internal/domain/wishlist"
	"pet-adoption-marketplace/internal/middleware"
	"pet-adoption-marketplace/internal/platform/logger"
	"pet-adoption-marketplace/internal/platform/metrics"
	"pet-adoption-marketplace/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres (schema ya migrado). Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger
	Config config.Config

	// Opcional: si es nil y Config.RateLimitRPS > 0 se crea uno.
	RateLimiter *middleware.RateLimiter
}

type repos struct {
	users         users.Repository
	pets          pets.Repository
	wishlist      wishlist.Repository
	notifications notifications.Repository
	messages      messages.Repository
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AuthContext(opts.AuthVerifier))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover)
	r.Use(metrics.InstrumentHandler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var rp repos
	if opts.DB != nil {
		rp = repos{
			users:         pg.NewUsersRepo(opts.DB),
			pets:          pg.NewPetsRepo(opts.DB),
			wishlist:      pg.NewWishlistRepo(opts.DB),
			notifications: pg.NewNotificationsRepo(opts.DB),
			messages:      pg.NewMessagesRepo(opts.DB),
		}
	} else {
		rp = repos{
			users:         mem.NewUserRepo(),
			pets:          mem.NewPetRepo(),
			wishlist:      mem.NewWishlistRepo(),
			notifications: mem.NewNotificationRepo(),
			messages:      mem.NewMessageRepo(),
		}
		if opts.Config.SeedDemo {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := mem.SeedDemo(ctx, rp.users, rp.pets, rp.notifications, time.Now()); err != nil {
				log.Error("seed demo failed", map[string]any{"err": err.Error()})
			} else {
				log.Info("demo data seeded", nil)
			}
			cancel()
		}
	}

	// Services por módulo
	usersSvc := users.NewService(rp.users)
	petsSvc := pets.NewService(rp.pets, usersSvc)
	wishlistSvc := wishlist.NewService(rp.wishlist, petsSvc)
	notifSvc := notifications.NewService(rp.notifications)

	hub := messages.NewHub(log)
	messagesSvc := messages.NewService(rp.messages, usersSvc, hub)

	// Límite solo en endpoints de escritura de alto volumen.
	var writeLimit func(http.Handler) http.Handler
	limiter := opts.RateLimiter
	if limiter == nil && opts.Config.RateLimitRPS > 0 {
		limiter = middleware.NewRateLimiter(opts.Config.RateLimitRPS, opts.Config.RateLimitBurst)
	}
	if limiter != nil {
		writeLimit = limiter.Handler
	}

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	pets.RegisterRoutes(r, petsSvc)
	pets.RegisterInterestRoutes(r, petsSvc, usersSvc, notifSvc)
	wishlist.RegisterRoutes(r, wishlistSvc)
	notifications.RegisterRoutes(r, notifSvc, writeLimit)
	messages.RegisterRoutes(r, messagesSvc, hub, writeLimit)

	return r
}
