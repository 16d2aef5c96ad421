package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config represents runtime configuration for the service.
type Config struct {
	BasicConfig BasicConfig               `json:"basic_config"`
	Providers   map[string]ProviderConfig `json:"providers"`
}

type ProviderConfig struct {
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
	APIKey  string `json:"api_key"`
}

type BasicConfig struct {
	ServerAddress string `json:"server_address"`
	Provider      string `json:"provider"`
	MaxFileSizeMB int64  `json:"max_file_size_mb"`
	WebDir        string `json:"web_dir"`
}

// envOverrides mirrors the env surface of the original deployment; any value
// set in the environment wins over the config file.
type envOverrides struct {
	ServerAddress string `env:"SERVER_ADDRESS"`
	Provider      string `env:"MODEL_PROVIDER"`
	Model         string `env:"MODEL_NAME"`
	BaseURL       string `env:"GATEWAY_BASE_URL"`
	APIKey        string `env:"GATEWAY_API_KEY"`
	MaxFileSizeMB int64  `env:"MAX_FILE_SIZE_MB"`
	WebDir        string `env:"WEB_DIR"`
}

const (
	defaultServerAddress = ":8000"
	defaultProvider      = "openai"
	defaultBaseURL       = "http://localhost:11434/v1" // Ollama's OpenAI-compatible endpoint
	defaultModel         = "mistral"
	defaultMaxFileSizeMB = 10
)

// Load reads configuration from the provided path. An empty path skips the
// file and starts from defaults; environment variables override either way.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}

		file, err := os.Open(absPath)
		if err != nil {
			return nil, fmt.Errorf("open config %s: %w", absPath, err)
		}
		defer file.Close()

		if err := json.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.BasicConfig.ServerAddress == "" {
		cfg.BasicConfig.ServerAddress = defaultServerAddress
	}
	if cfg.BasicConfig.Provider == "" {
		cfg.BasicConfig.Provider = defaultProvider
	}
	if cfg.BasicConfig.MaxFileSizeMB <= 0 {
		cfg.BasicConfig.MaxFileSizeMB = defaultMaxFileSizeMB
	}
	if _, ok := cfg.Providers[cfg.BasicConfig.Provider]; !ok {
		return nil, fmt.Errorf("provider %s not configured", cfg.BasicConfig.Provider)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		BasicConfig: BasicConfig{
			ServerAddress: defaultServerAddress,
			Provider:      defaultProvider,
			MaxFileSizeMB: defaultMaxFileSizeMB,
		},
		Providers: map[string]ProviderConfig{
			defaultProvider: {
				BaseURL: defaultBaseURL,
				Model:   defaultModel,
			},
		},
	}
}

func (c *Config) applyEnv() error {
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return fmt.Errorf("parse env overrides: %w", err)
	}

	if ov.ServerAddress != "" {
		c.BasicConfig.ServerAddress = ov.ServerAddress
	}
	if ov.Provider != "" {
		c.BasicConfig.Provider = ov.Provider
	}
	if ov.MaxFileSizeMB > 0 {
		c.BasicConfig.MaxFileSizeMB = ov.MaxFileSizeMB
	}
	if ov.WebDir != "" {
		c.BasicConfig.WebDir = ov.WebDir
	}

	if ov.Model == "" && ov.BaseURL == "" && ov.APIKey == "" {
		return nil
	}
	if c.Providers == nil {
		c.Providers = make(map[string]ProviderConfig)
	}
	prov := c.Providers[c.BasicConfig.Provider]
	if ov.Model != "" {
		prov.Model = ov.Model
	}
	if ov.BaseURL != "" {
		prov.BaseURL = ov.BaseURL
	}
	if ov.APIKey != "" {
		prov.APIKey = ov.APIKey
	}
	c.Providers[c.BasicConfig.Provider] = prov
	return nil
}

// MaxFileSizeBytes returns the upload ceiling in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return c.BasicConfig.MaxFileSizeMB << 20
}

// ActiveProvider returns the configuration of the selected provider.
func (c *Config) ActiveProvider() ProviderConfig {
	return c.Providers[c.BasicConfig.Provider]
}
