// Package config loads the application configuration from an optional yaml
// file with environment variable overrides.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultPath = "config.yaml"

type Config struct {
	HTTPAddr        string `yaml:"http_addr"`
	GitHubToken     string `yaml:"github_token"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`
	OpenAIModel     string `yaml:"openai_model"`
	ShutdownTimeout time.Duration
}

func Load() *Config {
	return LoadFrom(defaultPath)
}

func LoadFrom(path string) *Config {
	cfg := &Config{
		HTTPAddr:        ":8080",
		OpenAIModel:     "gpt-4o-mini",
		ShutdownTimeout: 5 * time.Second,
	}

	if data, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(data, cfg)
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHubToken = token
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAIAPIKey = key
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.OpenAIModel = model
	}

	return cfg
}
