package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName 默认配置文件
const DefaultFileName = "storefront.yaml"

// ErrInvalidConfig is returned when validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Config 应用配置
type Config struct {
	Port         string          `yaml:"port"`
	DBPath       string          `yaml:"db_path"`
	DataURL      string          `yaml:"data_url"`
	DataFile     string          `yaml:"data_file"`
	SheetName    string          `yaml:"sheet_name"`
	FetchTimeout time.Duration   `yaml:"fetch_timeout"`
	JWTSecret    string          `yaml:"jwt_secret"` // 为空时关闭鉴权
	Debug        bool            `yaml:"debug"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
	Charts       ChartConfig     `yaml:"charts"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// ChartConfig holds the defaults of chart parameters omitted by a request
type ChartConfig struct {
	DefaultTopN         int     `yaml:"default_top_n"`
	MixTopN             int     `yaml:"mix_top_n"`
	MinRating           float64 `yaml:"min_rating"`
	HighRatingThreshold float64 `yaml:"high_rating_threshold"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Port:         ":8080",
		DBPath:       "./data/storefront.db",
		FetchTimeout: 60 * time.Second,
		RateLimit: RateLimitConfig{
			Requests: 120,
			Window:   time.Minute,
		},
		Charts: ChartConfig{
			DefaultTopN:         10,
			MixTopN:             12,
			MinRating:           4.5,
			HighRatingThreshold: 4.5,
		},
	}
}

// Load 加载配置: defaults, then the YAML file at path (if it exists), then
// environment variables
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	vars := map[string]*string{
		"PORT":       &cfg.Port,
		"DB_PATH":    &cfg.DBPath,
		"DATA_URL":   &cfg.DataURL,
		"DATA_FILE":  &cfg.DataFile,
		"SHEET_NAME": &cfg.SheetName,
		"JWT_SECRET": &cfg.JWTSecret,
	}
	for key, dst := range vars {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: FETCH_TIMEOUT: %v", ErrInvalidConfig, err)
		}
		cfg.FetchTimeout = d
	}
	if v := os.Getenv("GIN_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: GIN_DEBUG: %v", ErrInvalidConfig, err)
		}
		cfg.Debug = debug
	}
	return nil
}

// Validate checks the configuration for out-of-range values
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("%w: port is required", ErrInvalidConfig)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%w: fetch_timeout must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("%w: rate_limit requires positive requests and window", ErrInvalidConfig)
	}
	if c.Charts.DefaultTopN < 1 || c.Charts.MixTopN < 1 {
		return fmt.Errorf("%w: top_n defaults must be at least 1", ErrInvalidConfig)
	}
	if c.Charts.MinRating < 0 || c.Charts.MinRating > 5 {
		return fmt.Errorf("%w: min_rating must be within [0, 5]", ErrInvalidConfig)
	}
	if c.Charts.HighRatingThreshold < 0 || c.Charts.HighRatingThreshold > 5 {
		return fmt.Errorf("%w: high_rating_threshold must be within [0, 5]", ErrInvalidConfig)
	}
	return nil
}

// AuthEnabled reports whether write endpoints require a bearer token
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}
