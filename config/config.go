package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Storage
	Database DatabaseConfig

	// Integration pipeline
	Webhook    WebhookConfig
	Auth       AuthConfig
	RateLimit  RateLimitConfig
	Quality    QualityConfig
	Similarity SimilarityConfig
	GitHub     GitHubConfig
	Encryption EncryptionConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
	TrustedProxies  []string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type DatabaseConfig struct {
	DSN             string
	AdminDSN        string // privileged role for config writes; defaults to DSN
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrateOnStart  bool
}

type WebhookConfig struct {
	Secret          string
	AllowedActions  []string
	Workers         int
	QueueSize       int
	RateLimitPerMin int
	ReplayOnStart   bool
}

type AuthConfig struct {
	JWTSecret    string
	AdminUserIDs []string
}

// RateLimitPolicy is one category's allowance.
type RateLimitPolicy struct {
	Requests int
	Window   time.Duration
}

type RateLimitConfig struct {
	ProposalCreate RateLimitPolicy
	MaxActors      int
}

type QualityConfig struct {
	Threshold          float64
	MinLength          int
	DuplicateThreshold float64
}

type SimilarityConfig struct {
	Provider      string // voyage, openai or none
	APIKey        string
	Model         string
	BaseURL       string
	RetryAttempts int
}

type GitHubConfig struct {
	APIURL        string
	Token         string
	RetryAttempts int
}

type EncryptionConfig struct {
	Key string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.ShutdownTimeout = viper.GetDuration("http_server.shutdown_timeout")
	cfg.HTTPServer.TrustedProxies = getList("http_server.trusted_proxies")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Database
	cfg.Database.DSN = viper.GetString("database.dsn")
	if dsn := viper.GetString("database_url"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	cfg.Database.AdminDSN = viper.GetString("database.admin_dsn")
	cfg.Database.MaxOpenConns = viper.GetInt("database.max_open_conns")
	cfg.Database.MaxIdleConns = viper.GetInt("database.max_idle_conns")
	cfg.Database.ConnMaxLifetime = viper.GetDuration("database.conn_max_lifetime")
	cfg.Database.MigrateOnStart = viper.GetBool("database.migrate_on_start")

	// Webhooks
	cfg.Webhook.Secret = viper.GetString("webhook.secret")
	if webhookSecret := viper.GetString("github_webhook_secret"); webhookSecret != "" {
		cfg.Webhook.Secret = webhookSecret
	}
	cfg.Webhook.AllowedActions = getList("webhook.allowed_actions")
	cfg.Webhook.Workers = viper.GetInt("webhook.workers")
	cfg.Webhook.QueueSize = viper.GetInt("webhook.queue_size")
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.ReplayOnStart = viper.GetBool("webhook.replay_on_start")

	// Auth
	cfg.Auth.JWTSecret = viper.GetString("auth.jwt_secret")
	cfg.Auth.AdminUserIDs = getList("auth.admin_user_ids")

	// Rate limiting
	cfg.RateLimit.ProposalCreate.Requests = viper.GetInt("rate_limit.proposal_create.requests")
	cfg.RateLimit.ProposalCreate.Window = viper.GetDuration("rate_limit.proposal_create.window")
	cfg.RateLimit.MaxActors = viper.GetInt("rate_limit.max_actors")

	// Quality gate
	cfg.Quality.Threshold = viper.GetFloat64("quality.threshold")
	cfg.Quality.MinLength = viper.GetInt("quality.min_length")
	cfg.Quality.DuplicateThreshold = viper.GetFloat64("quality.duplicate_threshold")

	// Similarity
	cfg.Similarity.Provider = viper.GetString("similarity.provider")
	cfg.Similarity.APIKey = viper.GetString("similarity.api_key")
	cfg.Similarity.Model = viper.GetString("similarity.model")
	cfg.Similarity.BaseURL = viper.GetString("similarity.base_url")
	cfg.Similarity.RetryAttempts = viper.GetInt("similarity.retry_attempts")
	if cfg.Similarity.APIKey == "" {
		if cfg.Quality.Threshold < 0 || cfg.Quality.Threshold > 100 {
		return nil, fmt.Errorf("quality.threshold must be between 0 and 100, got %v", cfg.Quality.Threshold)
	}
	switch cfg.Similarity.Provider {
		case "voyage":
			cfg.Similarity.APIKey = viper.GetString("voyage_api_key")
		case "openai":
			cfg.Similarity.APIKey = viper.GetString("openai_api_key")
		}
	}

	// GitHub
	cfg.GitHub.APIURL = viper.GetString("github.api_url")
	cfg.GitHub.Token = viper.GetString("github.token")
	if token := viper.GetString("github_token"); token != "" {
		cfg.GitHub.Token = token
	}
	cfg.GitHub.RetryAttempts = viper.GetInt("github.retry_attempts")

	// Encryption
	cfg.Encryption.Key = viper.GetString("encryption.key")

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.shutdown_timeout", "30s")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("database.max_open_conns", 20)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "30m")
	viper.SetDefault("database.migrate_on_start", true)

	viper.SetDefault("webhook.allowed_actions", "opened,synchronize,reopened")
	viper.SetDefault("webhook.workers", 4)
	viper.SetDefault("webhook.queue_size", 100)
	viper.SetDefault("webhook.rate_limit_per_min", 600)
	viper.SetDefault("webhook.replay_on_start", true)

	viper.SetDefault("rate_limit.proposal_create.requests", 10)
	viper.SetDefault("rate_limit.proposal_create.window", "1h")
	viper.SetDefault("rate_limit.max_actors", 10000)

	viper.SetDefault("quality.threshold", 60)
	viper.SetDefault("quality.min_length", 50)
	viper.SetDefault("quality.duplicate_threshold", 0.97)

	viper.SetDefault("similarity.provider", "none")
	viper.SetDefault("similarity.retry_attempts", 2)

	viper.SetDefault("github.api_url", "https://api.github.com")
	viper.SetDefault("github.retry_attempts", 3)
}

func validate(cfg *Config) error {
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if cfg.Encryption.Key == "" {
		return fmt.Errorf("encryption.key is required")
	}
	switch cfg.Similarity.Provider {
	case "", "none", "voyage", "openai":
	default:
		return fmt.Errorf("similarity.provider %q is not one of voyage, openai, none", cfg.Similarity.Provider)
	}
	return nil
}

// getList reads a YAML list or a comma-separated string, since environment
// variables cannot carry arrays.
func getList(key string) []string {
	var raw []string
	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			raw = append(raw, fmt.Sprint(item))
		}
	case []string:
		raw = v
	case string:
		raw = strings.Split(v, ",")
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
