package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPort             = "8080"
	DefaultChatPollInterval = 3 * time.Second
	DefaultRateLimitRPS     = 5
	DefaultRateLimitBurst   = 10
)

type Config struct {
	Env  string
	Port string

	// DB_DSN vacío => store in-memory.
	DBDSN string

	LogLevel  string
	LogFormat string
	AppName   string

	// SEED_DEMO=true carga usuarios/mascotas de demo (solo in-memory).
	SeedDemo bool

	ChatPollInterval time.Duration

	RateLimitRPS   int
	RateLimitBurst int

	// Verifier remoto opcional. Sin BaseURL => modo dev (X-Debug-User-ID).
	AuthBaseURL string
	AuthAPIKey  string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load lee la configuración del entorno.
// Fuera de producción intenta cargar un .env local (si no existe, se ignora).
func Load() Config {
	if os.Getenv("ENV") != "production" {
		_ = godotenv.Load()
	}

	return Config{
		Env:              getEnv("ENV", "development"),
		Port:             getEnv("PORT", DefaultPort),
		DBDSN:            strings.TrimSpace(os.Getenv("DB_DSN")),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		LogFormat:        os.Getenv("LOG_FORMAT"),
		AppName:          getEnv("APP_NAME", "pet-adoption-marketplace"),
		SeedDemo:         getBool("SEED_DEMO", false),
		ChatPollInterval: getDuration("CHAT_POLL_INTERVAL", DefaultChatPollInterval),
		RateLimitRPS:     getInt("RATE_LIMIT_RPS", DefaultRateLimitRPS),
		RateLimitBurst:   getInt("RATE_LIMIT_BURST", DefaultRateLimitBurst),
		AuthBaseURL:      strings.TrimSpace(os.Getenv("AUTH_BASE_URL")),
		AuthAPIKey:       strings.TrimSpace(os.Getenv("AUTH_API_KEY")),
		ReadTimeout:      getDuration("HTTP_READ_TIMEOUT", 5*time.Second),
		// el websocket de conversación mantiene la conexión abierta; el timeout aplica al resto
		WriteTimeout: getDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	// 0 es válido (p.ej. RATE_LIMIT_RPS=0 desactiva el límite)
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
