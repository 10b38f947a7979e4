package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Database    DatabaseConfig    `koanf:"database"`
	Redis       RedisConfig       `koanf:"redis"`
	Embedding   EmbeddingConfig   `koanf:"embedding"`
	Recommender RecommenderConfig `koanf:"recommender"`
	Auth        AuthConfig        `koanf:"auth"`
	Storage     StorageConfig     `koanf:"storage"`
	Logging     LoggingConfig     `koanf:"logging"`

	// Environment is detected at load time, not configured.
	Environment Environment `koanf:"-"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            string        `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

type DatabaseConfig struct {
	Driver string `koanf:"driver"`
	// DSN, when set, takes precedence over the individual fields.
	DSN           string `koanf:"dsn"`
	Host          string `koanf:"host"`
	Port          string `koanf:"port"`
	User          string `koanf:"user"`
	Password      string `koanf:"password"`
	Name          string `koanf:"name"`
	SSLMode       string `koanf:"ssl_mode"`
	MigrationsDir string `koanf:"migrations_dir"`
}

// ConnectionString returns the DSN for the configured driver.
func (d DatabaseConfig) ConnectionString() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	// URL is optional; without it embeddings are not cached and rate limiting is off.
	URL             string        `koanf:"url"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	RateLimit       int           `koanf:"rate_limit"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// Embedding backends.
const (
	EmbeddingBackendHTTP    = "http"
	EmbeddingBackendHashing = "hashing"
)

type EmbeddingConfig struct {
	Backend    string        `koanf:"backend"`
	URL        string        `koanf:"url"`
	Token      string        `koanf:"token"`
	Model      string        `koanf:"model"`
	Dimensions int           `koanf:"dimensions"`
	Timeout    time.Duration `koanf:"timeout"`
}

type RecommenderConfig struct {
	FoodK            int     `koanf:"food_k"`
	TopK             int     `koanf:"top_k"`
	CandidateWindow  int     `koanf:"candidate_window"`
	NutrientWeight   float64 `koanf:"nutrient_weight"`
	IngredientWeight float64 `koanf:"ingredient_weight"`
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

type StorageConfig struct {
	Bucket string `koanf:"bucket"`
	Region string `koanf:"region"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DefaultConfigPaths lists the config files searched when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/culinary-compass/config.yaml",
}

const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            "8080",
			ShutdownTimeout: 15 * time.Second,
			CORSOrigins:     []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:        "postgres",
			Host:          "localhost",
			Port:          "5432",
			User:          "postgres",
			Name:          "culinary_compass",
			SSLMode:       "disable",
			MigrationsDir: "migrations",
		},
		Redis: RedisConfig{
			CacheTTL:        24 * time.Hour,
			RateLimit:       60,
			RateLimitWindow: time.Minute,
		},
		Embedding: EmbeddingConfig{
			Backend:    EmbeddingBackendHTTP,
			Model:      "all-MiniLM-L6-v2",
			Dimensions: 384,
			Timeout:    10 * time.Second,
		},
		Recommender: RecommenderConfig{
			FoodK:            5,
			TopK:             5,
			CandidateWindow:  50,
			NutrientWeight:   0.5,
			IngredientWeight: 0.5,
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Storage: StorageConfig{
			Region: "us-east-1",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig builds the configuration from, in increasing priority: built-in
// defaults, an optional YAML file, environment variables and, outside CI,
// Docker secrets.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.Environment = GetEnvironment()

	if cfg.Environment != CI {
		applySecrets(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields splits comma-separated env values for slice settings.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	"server_host":      "server.host",
	"server_port":      "server.port",
	"shutdown_timeout": "server.shutdown_timeout",
	"cors_origins":     "server.cors_origins",

	"db_driver":      "database.driver",
	"db_dsn":         "database.dsn",
	"db_host":        "database.host",
	"db_port":        "database.port",
	"db_user":        "database.user",
	"db_password":    "database.password",
	"db_name":        "database.name",
	"db_ssl_mode":    "database.ssl_mode",
	"migrations_dir": "database.migrations_dir",

	"redis_url":           "redis.url",
	"embedding_cache_ttl": "redis.cache_ttl",
	"rate_limit_requests": "redis.rate_limit",
	"rate_limit_window":   "redis.rate_limit_window",

	"embedding_backend":    "embedding.backend",
	"embedding_url":        "embedding.url",
	"embedding_token":      "embedding.token",
	"embedding_model":      "embedding.model",
	"embedding_dimensions": "embedding.dimensions",
	"embedding_timeout":    "embedding.timeout",

	"recommender_food_k":            "recommender.food_k",
	"recommender_top_k":             "recommender.top_k",
	"recommender_candidate_window":  "recommender.candidate_window",
	"recommender_nutrient_weight":   "recommender.nutrient_weight",
	"recommender_ingredient_weight": "recommender.ingredient_weight",

	"jwt_secret": "auth.jwt_secret",
	"token_ttl":  "auth.token_ttl",

	"s3_bucket_name": "storage.bucket",
	"aws_region":     "storage.region",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps environment variable names to config paths. Unknown
// variables map to "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// secretTargets lists the Docker secrets that override sensitive settings.
var secretTargets = map[string]func(*Config, string){
	"db_password":     func(c *Config, v string) { c.Database.Password = v },
	"db_dsn":          func(c *Config, v string) { c.Database.DSN = v },
	"jwt_secret":      func(c *Config, v string) { c.Auth.JWTSecret = v },
	"redis_url":       func(c *Config, v string) { c.Redis.URL = v },
	"embedding_token": func(c *Config, v string) { c.Embedding.Token = v },
}

func applySecrets(cfg *Config) {
	for name, set := range secretTargets {
		if v := readSecret(name); v != "" {
			set(cfg, v)
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
