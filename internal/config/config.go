package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// бэкенды хранения состояния
const (
	BackendMemory    = "memory"
	BackendPostgres  = "postgres"
	BackendRedis     = "redis"
	BackendMemcached = "memcached"
)

type Config struct {
	ServerPort    string
	SessionSecret string
	GinMode       string

	StateBackend  string
	DBDSN         string
	RedisURL      string
	MemcachedAddr string

	DataMode       string
	APIBaseURL     string
	APIToken       string
	GatewayTimeout time.Duration
	DemoDelay      time.Duration

	AdminUsername     string
	AdminPassword     string
	SeedDemoOperators bool

	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:        os.Getenv("SERVER_PORT"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		GinMode:           strings.TrimSpace(os.Getenv("GIN_MODE")),
		StateBackend:      strings.ToLower(strings.TrimSpace(os.Getenv("STATE_BACKEND"))),
		DBDSN:             os.Getenv("DB_DSN"),
		RedisURL:          os.Getenv("REDIS_URL"),
		MemcachedAddr:     os.Getenv("MEMCACHED_ADDR"),
		DataMode:          strings.ToLower(strings.TrimSpace(os.Getenv("DATA_MODE"))),
		APIBaseURL:        strings.TrimSpace(os.Getenv("API_BASE_URL")),
		APIToken:          strings.TrimSpace(os.Getenv("API_TOKEN")),
		AdminUsername:     os.Getenv("ADMIN_USERNAME"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		SeedDemoOperators: os.Getenv("SEED_DEMO_OPERATORS") == "true",
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is not set")
	}

	switch cfg.StateBackend {
	case "":
		cfg.StateBackend = BackendMemory
	case BackendMemory:
	case BackendPostgres:
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required for STATE_BACKEND=postgres")
		}
	case BackendRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for STATE_BACKEND=redis")
		}
	case BackendMemcached:
		if cfg.MemcachedAddr == "" {
			return nil, fmt.Errorf("MEMCACHED_ADDR is required for STATE_BACKEND=memcached")
		}
	default:
		return nil, fmt.Errorf("unknown STATE_BACKEND %q", cfg.StateBackend)
	}

	if cfg.DataMode == "" {
		cfg.DataMode = "demo"
	}
	if cfg.DataMode != "demo" && cfg.DataMode != "live" {
		return nil, fmt.Errorf("DATA_MODE must be demo or live, got %q", cfg.DataMode)
	}

	var err error
	if cfg.GatewayTimeout, err = durationEnv("GATEWAY_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.DemoDelay, err = durationEnv("DEMO_DELAY", 0); err != nil {
		return nil, err
	}

	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin@backoffice.local"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "Admin123!"
	}

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	} else {
		cfg.CORSAllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
