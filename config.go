package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/M0ricette/lego/storage"
)

// Config is read from LEGO_* environment variables, optionally seeded from a
// .env file. Variables already set in the process environment win.
type Config struct {
	APIURL        string        `env:"LEGO_API_URL" envDefault:"https://lego-api-blue.vercel.app" validate:"required,url"`
	PageSize      int           `env:"LEGO_PAGE_SIZE" envDefault:"6" validate:"oneof=6 12 24"`
	HTTPTimeout   time.Duration `env:"LEGO_HTTP_TIMEOUT" envDefault:"15s" validate:"gt=0"`
	RateLimit     float64       `env:"LEGO_RATE_LIMIT" envDefault:"5" validate:"gte=0"`
	RateBurst     int           `env:"LEGO_RATE_BURST" envDefault:"2" validate:"gte=1"`
	SalesCacheTTL time.Duration `env:"LEGO_SALES_CACHE_TTL" envDefault:"2m" validate:"gte=0"`
	Store         string        `env:"LEGO_STORE" envDefault:"file" validate:"oneof=file sqlite"`
	StorePath     string        `env:"LEGO_STORE_PATH"`
	LogFile       string        `env:"LEGO_LOG_FILE"`
	LogLevel      string        `env:"LEGO_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	ExportDir     string        `env:"LEGO_EXPORT_DIR"`
}

// LoadConfig parses the process environment merged with dotenvPath.
// A missing dotenv file is not an error.
func LoadConfig(dotenvPath string) (Config, error) {
	environment := environMap(os.Environ())

	if dotenvPath != "" {
		fileValues, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			for k, v := range fileValues {
				if _, exists := environment[k]; !exists {
					environment[k] = v
				}
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read dotenv file: %w", err)
		}
	}

	return parseConfig(environment)
}

func parseConfig(environment map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	if err := cfg.resolvePaths(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// resolvePaths fills per-user defaults for unset file locations.
func (c *Config) resolvePaths() error {
	if strings.TrimSpace(c.StorePath) == "" {
		path, err := storage.DefaultPath(c.Store)
		if err != nil {
			return err
		}
		c.StorePath = path
	}

	if strings.TrimSpace(c.LogFile) == "" {
		c.LogFile = filepath.Join(filepath.Dir(c.StorePath), "lego.log")
	}

	if strings.TrimSpace(c.ExportDir) == "" {
		home, err := os.UserHomeDir()
		if err != nil || strings.TrimSpace(home) == "" {
			home = "."
		}
		c.ExportDir = home
	}
	return nil
}

func environMap(pairs []string) map[string]string {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		out[key] = value
	}
	return out
}
