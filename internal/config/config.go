package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

type GroqConfig struct {
	URL            string  `json:"url"`
	APIKey         string  `json:"api_key"`
	Model          string  `json:"model"`
	Temperature    float64 `json:"temperature"`
	MaxTokens      int     `json:"max_tokens"`
	TimeoutSeconds int     `json:"timeout_seconds"`
}

type AgentConfig struct {
	QueueSize     int `json:"queue_size"`
	MaxConcurrent int `json:"max_concurrent"`
}

type Config struct {
	Server struct {
		Host           string   `json:"host"`
		Port           int      `json:"port"`
		Subpath        string   `json:"subpath"`
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"server"`
	Postgres struct {
		DSN string `json:"dsn"`
	} `json:"postgres"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	Groq  GroqConfig  `json:"groq"`
	Agent AgentConfig `json:"agent"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig reads config.json from disk (singleton)
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		raw, err := os.ReadFile(path)
		if err != nil {
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}
		var c Config
		if err := json.Unmarshal(raw, &c); err != nil {
			cfgErr = fmt.Errorf("invalid config format: %w", err)
			return
		}
		// A configured completion service needs a target endpoint and model
		if c.Groq.APIKey != "" && (c.Groq.URL == "" || c.Groq.Model == "") {
			cfgErr = errors.New("groq url and model must be set when api_key is present")
			return
		}
		applyDefaults(&c)
		cfg = &c
	})
	return cfg, cfgErr
}

func applyDefaults(c *Config) {
	if c.Groq.Temperature == 0 {
		c.Groq.Temperature = 0.5
	}
	if c.Groq.MaxTokens == 0 {
		c.Groq.MaxTokens = 1024
	}
	if c.Groq.TimeoutSeconds == 0 {
		c.Groq.TimeoutSeconds = 60
	}
	if c.Agent.QueueSize == 0 {
		c.Agent.QueueSize = 20
	}
	if c.Agent.MaxConcurrent == 0 {
		c.Agent.MaxConcurrent = 2
	}
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
