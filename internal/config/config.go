// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/company-prep/internal/llm"
	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultPort   = 5000
	DefaultAPIURL = "http://localhost:5000"
)

var validate = validator.New()

// Config is the application configuration. Values come from an optional JSON or YAML
// file, then environment variables, then CLI flags.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Database  DatabaseConfig  `json:"database" yaml:"database"`
	Gemini    GeminiConfig    `json:"gemini" yaml:"gemini"`
	Log       LogConfig       `json:"log" yaml:"log"`
	Client    ClientConfig    `json:"client" yaml:"client"`
	Bookmarks BookmarksConfig `json:"bookmarks" yaml:"bookmarks"`
	Password  PasswordConfig  `json:"password" yaml:"password"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty" validate:"min=0,max=65535"`
}

// DatabaseConfig configures PostgreSQL
type DatabaseConfig struct {
	URL            string `json:"url,omitempty" yaml:"url,omitempty"`
	MigrateOnStart bool   `json:"migrate_on_start,omitempty" yaml:"migrate_on_start,omitempty"`
}

// GeminiConfig configures the research provider. An empty APIKey selects placeholder records.
type GeminiConfig struct {
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Model  string `json:"model,omitempty" yaml:"model,omitempty"`
}

// LogConfig configures zerolog
type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty" validate:"oneof=trace debug info warn error"`
	Format string `json:"format,omitempty" yaml:"format,omitempty" validate:"oneof=json console"`
}

// ClientConfig configures the CLI's API client
type ClientConfig struct {
	APIURL string `json:"api_url,omitempty" yaml:"api_url,omitempty" validate:"required,url"`
}

// BookmarksConfig configures the local bookmark store; an empty Path uses the default location
type BookmarksConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: DefaultPort},
		Log:    LogConfig{Level: "info", Format: "json"},
		Client: ClientConfig{APIURL: DefaultAPIURL},
		Password: PasswordConfig{
			BcryptCost: DefaultBcryptCost,
		},
	}
}

// Load builds the configuration from path (optional), then the environment, and validates it.
// Files ending in .yaml or .yml are parsed as YAML, anything else as JSON.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}
	return nil
}

// applyEnv overrides values with any environment variables that are set
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("HOST", &c.Server.Host)
	if err := num("PORT", &c.Server.Port); err != nil {
		return err
	}
	str("DATABASE_URL", &c.Database.URL)
	str("GEMINI_API_KEY", &c.Gemini.APIKey)
	str("GEMINI_MODEL", &c.Gemini.Model)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("COMPANY_PREP_API_URL", &c.Client.APIURL)
	str("COMPANY_PREP_BOOKMARKS", &c.Bookmarks.Path)
	if err := num("BCRYPT_COST", &c.Password.BcryptCost); err != nil {
		return err
	}
	str("PASSWORD_PEPPER", &c.Password.Pepper)

	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Log.Format = strings.ToLower(c.Log.Format)
	return nil
}

// Validate checks that the configuration has valid values.
// The database URL is not required here; commands that need it check RequireDatabase.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return c.Password.Validate()
}

// RequireDatabase reports an error when no database URL is configured
func (c *Config) RequireDatabase() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("config error: DATABASE_URL is not set")
	}
	return nil
}

// LLM returns the model configuration, applying the configured model override to the research tier
func (c *Config) LLM() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Gemini.Model != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.Gemini.Model)
	}
	return cfg
}
