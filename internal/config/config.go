// Package config содержит логику чтения конфигурации витрины.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации витрины.
type Config struct {
	RunAddress          string `env:"RUN_ADDRESS"`
	EmailServiceAddress string `env:"EMAIL_SERVICE_ADDRESS"`
	BaseURL             string `env:"BASE_URL"`
	AuthSecret          string `env:"AUTH_SECRET"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных
// окружения; значения окружения имеют приоритет.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envEmailAddress := cfg.EmailServiceAddress
	envBaseURL := cfg.BaseURL
	envAuthSecret := cfg.AuthSecret

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.EmailServiceAddress, "m", "", "email dispatch service address")
	flag.StringVar(&cfg.BaseURL, "b", "http://localhost:8080", "public base URL for verification links")
	flag.StringVar(&cfg.AuthSecret, "s", "storefront-secret", "secret key for auth cookies")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envEmailAddress != "" {
		cfg.EmailServiceAddress = envEmailAddress
	}
	if envBaseURL != "" {
		cfg.BaseURL = envBaseURL
	}
	if envAuthSecret != "" {
		cfg.AuthSecret = envAuthSecret
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}

	return cfg, nil
}
