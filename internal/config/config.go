package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port         string `yaml:"port" validate:"required,numeric"`
	Workers      int    `yaml:"workers" validate:"gte=1,lte=256"`
	LogLevel     string `yaml:"log_level" validate:"oneof=debug info warn error"`
	Development  bool   `yaml:"development"`
	MaxBodyBytes int    `yaml:"max_body_bytes" validate:"gte=1024"`
}

var ErrInvalid = errors.New("invalid configuration")

var validate = validator.New()

func Default() Config {
	return Config{
		Port:         "8080",
		Workers:      8,
		LogLevel:     "info",
		MaxBodyBytes: 8 << 20,
	}
}

// Load reads path (if non-empty) over the defaults, then applies PORT,
// KINSHIP_WORKERS and KINSHIP_LOG_LEVEL from the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if w := os.Getenv("KINSHIP_WORKERS"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil {
			return Config{}, fmt.Errorf("KINSHIP_WORKERS=%q: %w", w, ErrInvalid)
		}
		cfg.Workers = n
	}
	if lvl := os.Getenv("KINSHIP_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return cfg, nil
}
