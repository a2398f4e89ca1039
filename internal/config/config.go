package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kapu/wildrift-guide-go/internal/constants"
	"github.com/kapu/wildrift-guide-go/internal/util"
	guideerrors "github.com/kapu/wildrift-guide-go/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the optional YAML file whose values sit between the defaults and the environment.
const ConfigFileEnv = "GUIDE_CONFIG_FILE"

type Config struct {
	Data     DataConfig     `yaml:"data"`
	Cache    CacheConfig    `yaml:"cache"`
	Patch    PatchConfig    `yaml:"patch"`
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type DataConfig struct {
	Dir       string `yaml:"dir"`
	ItemsDir  string `yaml:"items_dir"`
	RunesDir  string `yaml:"runes_dir"`
	IndexPath string `yaml:"index_path"`
}

type CacheConfig struct {
	TTLMinutes         int `yaml:"ttl_minutes"`
	MaxConcurrentLoads int `yaml:"max_concurrent_loads"`
}

// TTL is the entity expiry as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

type PatchConfig struct {
	Label        string `yaml:"label"`
	FetchEnabled bool   `yaml:"fetch_enabled"`
	SourceURL    string `yaml:"source_url"`
}

type ServerConfig struct {
	Addr    string `yaml:"addr"`
	GinMode string `yaml:"gin_mode"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:       constants.Paths.ChampionsDir,
			ItemsDir:  constants.Paths.ItemsDir,
			RunesDir:  constants.Paths.RunesDir,
			IndexPath: constants.Paths.IndexFile,
		},
		Cache: CacheConfig{
			TTLMinutes:         int(constants.CacheTTL.Champion / time.Minute),
			MaxConcurrentLoads: constants.LoaderConfig.MaxConcurrentLoads,
		},
		Patch: PatchConfig{
			Label:     constants.MetaDefaults.Patch,
			SourceURL: constants.PatchSource.URL,
		},
		Server: ServerConfig{
			Addr:    ":8080",
			GinMode: "release",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "wildrift",
			Database: "wildrift_guide",
			SSLMode:  "disable",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "logs/guide.log",
		},
	}
}

// Load layers defaults, the YAML file named by GUIDE_CONFIG_FILE and the environment
// (including .env), later layers winning.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) overlayFile(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(file, c); err != nil {
		return guideerrors.NewParseError("invalid config file", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Data.Dir = getEnv("DATA_DIR", c.Data.Dir)
	c.Data.ItemsDir = getEnv("ITEMS_DIR", c.Data.ItemsDir)
	c.Data.RunesDir = getEnv("RUNES_DIR", c.Data.RunesDir)
	c.Data.IndexPath = getEnv("INDEX_PATH", c.Data.IndexPath)

	c.Cache.TTLMinutes = getEnvInt("CACHE_TTL_MINUTES", c.Cache.TTLMinutes)
	c.Cache.MaxConcurrentLoads = getEnvInt("MAX_CONCURRENT_LOADS", c.Cache.MaxConcurrentLoads)

	c.Patch.Label = getEnv("PATCH_LABEL", c.Patch.Label)
	c.Patch.FetchEnabled = getEnvBool("PATCH_FETCH_ENABLED", c.Patch.FetchEnabled)
	c.Patch.SourceURL = getEnv("PATCH_SOURCE_URL", c.Patch.SourceURL)

	c.Server.Addr = getEnv("HTTP_ADDR", c.Server.Addr)
	c.Server.GinMode = getEnv("GIN_MODE", c.Server.GinMode)

	c.Redis.Enabled = getEnvBool("REDIS_ENABLED", c.Redis.Enabled)
	c.Redis.Host = getEnv("REDIS_HOST", c.Redis.Host)
	c.Redis.Port = getEnvInt("REDIS_PORT", c.Redis.Port)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)

	c.Postgres.Host = getEnv("POSTGRES_HOST", c.Postgres.Host)
	c.Postgres.Port = getEnvInt("POSTGRES_PORT", c.Postgres.Port)
	c.Postgres.User = getEnv("POSTGRES_USER", c.Postgres.User)
	c.Postgres.Password = getEnv("POSTGRES_PASSWORD", c.Postgres.Password)
	c.Postgres.Database = getEnv("POSTGRES_DB", c.Postgres.Database)
	c.Postgres.SSLMode = getEnv("POSTGRES_SSLMODE", c.Postgres.SSLMode)

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.File = getEnv("LOG_FILE", c.Logging.File)
}

// Validate reports the first invalid setting as a ValidationError.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data.Dir) == "" {
		return guideerrors.NewValidationError("DATA_DIR is required", "DATA_DIR", c.Data.Dir)
	}
	if c.Cache.TTLMinutes <= 0 {
		return guideerrors.NewValidationError("CACHE_TTL_MINUTES must be positive", "CACHE_TTL_MINUTES", c.Cache.TTLMinutes)
	}
	if c.Cache.MaxConcurrentLoads <= 0 {
		return guideerrors.NewValidationError("MAX_CONCURRENT_LOADS must be positive", "MAX_CONCURRENT_LOADS", c.Cache.MaxConcurrentLoads)
	}
	if strings.TrimSpace(c.Patch.Label) == "" {
		return guideerrors.NewValidationError("PATCH_LABEL is required", "PATCH_LABEL", c.Patch.Label)
	}
	if c.Patch.FetchEnabled && c.Patch.SourceURL == "" {
		return guideerrors.NewValidationError("PATCH_SOURCE_URL is required when patch fetching is enabled", "PATCH_SOURCE_URL", c.Patch.SourceURL)
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return guideerrors.NewValidationError("HTTP_ADDR is required", "HTTP_ADDR", c.Server.Addr)
	}
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return guideerrors.NewValidationError("GIN_MODE must be debug, release or test", "GIN_MODE", c.Server.GinMode)
	}
	if c.Redis.Enabled && (c.Redis.Port <= 0 || c.Redis.Port > 65535) {
		return guideerrors.NewValidationError("REDIS_PORT is out of range", "REDIS_PORT", c.Redis.Port)
	}
	if _, ok := util.ParseLevel(c.Logging.Level); !ok {
		return guideerrors.NewValidationError("LOG_LEVEL is not a known level", "LOG_LEVEL", c.Logging.Level)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
