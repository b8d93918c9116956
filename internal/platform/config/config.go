package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	id "credipet/pkg/domain"
)

// Development defaults shared with cmd/tokengen.
const (
	DevSigningKey   = "dev-secret-key-change-in-production"
	DefaultIssuer   = "credipet"
	DefaultAudience = "credipet-api"
	DefaultTokenTTL = 15 * time.Minute
)

// Labels that derive the development addresses when the matching
// *_ADDRESS variable is unset.
const (
	OwnerLabel          = "credipet/owner"
	CreditRegistryLabel = "credipet/credit-registry"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	Environment string
	LogLevel    string

	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
	TokenTTL      time.Duration

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Registry RegistryConfig
}

// DatabaseConfig selects the Postgres backend when URL is set.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig enables the profile cache when URL is set.
type RedisConfig struct {
	URL             string
	PoolSize        int
	MinIdleConns    int
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ProfileCacheTTL time.Duration
}

// KafkaConfig enables the event relay when Brokers is set.
type KafkaConfig struct {
	Brokers       string
	EventsTopic   string
	RelayInterval time.Duration
	RelayBatch    int
}

// RegistryConfig holds the first-boot settings of both registries.
// Settings already persisted in the store take precedence.
type RegistryConfig struct {
	Owner            id.Principal
	CreditRegistry   id.Principal
	LendingAuthority id.Principal
	BadgeBaseURI     string
}

// FromEnv builds a Server config from environment variables so main stays lean.
// Malformed addresses and durations are reported instead of defaulted.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:          getEnv("CREDIPET_ADDR", ":8080"),
		Environment:   getEnv("CREDIPET_ENV", "local"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		JWTSigningKey: getEnv("JWT_SIGNING_KEY", DevSigningKey),
		JWTIssuer:     getEnv("JWT_ISSUER", DefaultIssuer),
		JWTAudience:   getEnv("JWT_AUDIENCE", DefaultAudience),
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:     os.Getenv("KAFKA_BROKERS"),
			EventsTopic: getEnv("KAFKA_EVENTS_TOPIC", "credipet.registry.events"),
			RelayBatch:  100,
		},
		Registry: RegistryConfig{
			BadgeBaseURI: getEnv("BADGE_BASE_URI", "https://credipet.io/api/badge/"),
		},
	}

	var err error
	if cfg.TokenTTL, err = durationEnv("TOKEN_TTL", DefaultTokenTTL); err != nil {
		return Server{}, err
	}
	if cfg.Kafka.RelayInterval, err = durationEnv("EVENT_RELAY_INTERVAL", time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.ProfileCacheTTL, err = durationEnv("PROFILE_CACHE_TTL", 5*time.Minute); err != nil {
		return Server{}, err
	}
	if cfg.Database.MaxOpenConns, err = intEnv("DATABASE_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns); err != nil {
		return Server{}, err
	}
	if cfg.Database.MaxIdleConns, err = intEnv("DATABASE_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns); err != nil {
		return Server{}, err
	}

	if cfg.Registry.Owner, err = principalEnv("OWNER_ADDRESS", id.DerivePrincipal(OwnerLabel)); err != nil {
		return Server{}, err
	}
	if cfg.Registry.CreditRegistry, err = principalEnv("CREDIT_REGISTRY_ADDRESS", id.DerivePrincipal(CreditRegistryLabel)); err != nil {
		return Server{}, err
	}
	// The lending authority is the owner until a pool is configured.
	if cfg.Registry.LendingAuthority, err = principalEnv("LENDING_AUTHORITY_ADDRESS", cfg.Registry.Owner); err != nil {
		return Server{}, err
	}
	if cfg.Registry.Owner.IsZero() {
		return Server{}, fmt.Errorf("OWNER_ADDRESS must not be the zero address")
	}
	return cfg, nil
}

// IsDevelopment reports whether dev-only defaults are acceptable.
func (s Server) IsDevelopment() bool {
	switch strings.ToLower(s.Environment) {
	case "local", "dev", "development", "test", "testing":
		return true
	}
	return false
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
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

func intEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func principalEnv(key string, def id.Principal) (id.Principal, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	p, err := id.ParsePrincipal(raw)
	if err != nil {
		return id.ZeroPrincipal, fmt.Errorf("%s: %w", key, err)
	}
	return p, nil
}
