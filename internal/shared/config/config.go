package config

import (
	"fmt"
	"solar-system-server/internal/shared/utils"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Session   SessionConfig
	Frontend  FrontendConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
	Scene     SceneConfig
	Catalog   CatalogConfig
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

type ServerConfig struct {
	Port            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type SessionConfig struct {
	Secret         string
	TTL            time.Duration
	CookieSecure   bool
	CookieSameSite string
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

type SceneConfig struct {
	Seed                 int64
	TickRate             int
	AnimationMaxDuration time.Duration
	TTL                  time.Duration
}

type CatalogConfig struct {
	Path  string
	Watch bool
}

// Defaults leave room for the page's own traffic: image refreshes at the
// animation tick rate plus one pointer inspect per frame.
const (
	DefaultRequestsPerSecond = 150
	DefaultBurstSize         = 300
)

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config, err := load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

func load() (*Config, error) {
	scene, err := loadSceneConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server:    loadServerConfig(),
		Redis:     loadRedisConfig(),
		Frontend:  loadFrontendConfig(),
		RateLimit: loadRateLimitConfig(),
		Scene:     scene,
		Catalog:   loadCatalogConfig(),
	}

	// Cookie security and log format follow the environment.
	config.Session = loadSessionConfig(config.IsProduction())
	config.Logging = loadLoggingConfig(config.IsProduction())

	return config, nil
}

func loadRedisConfig() RedisConfig {
	enabled := utils.GetEnv("REDIS_ENABLED", "false") == "true"
	redisURL := utils.GetEnv("REDIS_URL", "")

	db, _ := strconv.Atoi(utils.GetEnv("REDIS_DB", "0"))

	return RedisConfig{
		Enabled:  enabled,
		URL:      redisURL,
		Host:     utils.GetEnv("REDIS_HOST", "localhost"),
		Port:     utils.GetEnv("REDIS_PORT", "6379"),
		Password: utils.GetEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func loadServerConfig() ServerConfig {
	readTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_READ_TIMEOUT_SECONDS", "15"))
	writeTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_WRITE_TIMEOUT_SECONDS", "15"))
	idleTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_IDLE_TIMEOUT_SECONDS", "60"))
	shutdownTimeout, _ := strconv.Atoi(utils.GetEnv("SERVER_SHUTDOWN_TIMEOUT_SECONDS", "10"))

	return ServerConfig{
		Port:            utils.GetEnv("SERVER_PORT", "8080"),
		Environment:     utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:     time.Duration(readTimeout) * time.Second,
		WriteTimeout:    time.Duration(writeTimeout) * time.Second,
		IdleTimeout:     time.Duration(idleTimeout) * time.Second,
		ShutdownTimeout: time.Duration(shutdownTimeout) * time.Second,
	}
}

func loadSessionConfig(production bool) SessionConfig {
	ttlHours, _ := strconv.Atoi(utils.GetEnv("SESSION_TTL_HOURS", "24"))

	return SessionConfig{
		Secret:         utils.GetEnv("SESSION_SECRET", ""),
		TTL:            time.Duration(ttlHours) * time.Hour,
		CookieSecure:   production,
		CookieSameSite: utils.GetEnv("COOKIE_SAME_SITE", "lax"),
	}
}

func loadFrontendConfig() FrontendConfig {
	corsDebug := utils.GetEnv("CORS_DEBUG", "") == "true"

	return FrontendConfig{
		URL:       utils.GetEnv("FRONTEND_URL", "http://localhost:8080"),
		CORSDebug: corsDebug,
	}
}

func loadLoggingConfig(production bool) LoggingConfig {
	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		JSONFormat: production,
	}
}

func loadRateLimitConfig() RateLimitConfig {
	enabled := utils.GetEnv("RATE_LIMIT_ENABLED", "true") == "true"
	requestsPerSecond, _ := strconv.ParseFloat(utils.GetEnv("RATE_LIMIT_REQUESTS_PER_SECOND", strconv.Itoa(DefaultRequestsPerSecond)), 64)
	burstSize, _ := strconv.Atoi(utils.GetEnv("RATE_LIMIT_BURST_SIZE", strconv.Itoa(DefaultBurstSize)))

	return RateLimitConfig{
		Enabled:           enabled,
		RequestsPerSecond: requestsPerSecond,
		BurstSize:         burstSize,
		TrustProxy:        utils.GetEnv("RATE_LIMIT_TRUST_PROXY", "false") == "true",
	}
}

func loadSceneConfig() (SceneConfig, error) {
	seed, err := strconv.ParseInt(utils.GetEnv("SCENE_SEED", "0"), 10, 64)
	if err != nil {
		return SceneConfig{}, fmt.Errorf("SCENE_SEED must be an integer: %w", err)
	}
	tickRate, _ := strconv.Atoi(utils.GetEnv("SCENE_TICK_RATE", "30"))
	maxDuration, _ := strconv.Atoi(utils.GetEnv("SCENE_ANIMATION_MAX_DURATION_SECONDS", "600"))
	ttl, _ := strconv.Atoi(utils.GetEnv("SCENE_TTL_MINUTES", "60"))

	return SceneConfig{
		Seed:                 seed,
		TickRate:             tickRate,
		AnimationMaxDuration: time.Duration(maxDuration) * time.Second,
		TTL:                  time.Duration(ttl) * time.Minute,
	}, nil
}

func loadCatalogConfig() CatalogConfig {
	return CatalogConfig{
		Path:  utils.GetEnv("CATALOG_PATH", ""),
		Watch: utils.GetEnv("CATALOG_WATCH", "true") == "true",
	}
}

func (c *Config) validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}

	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters long")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Scene.TickRate <= 0 {
		return fmt.Errorf("SCENE_TICK_RATE must be positive")
	}

	if c.Scene.TTL <= 0 {
		return fmt.Errorf("SCENE_TTL_MINUTES must be positive")
	}

	if c.RateLimit.Enabled && c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS_PER_SECOND must be positive when rate limiting is enabled")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// RedisAddr returns the host:port pair used when no REDIS_URL is configured
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
