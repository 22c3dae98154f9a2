package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the giftrec API configuration.
type Config struct {
	HTTP           HTTPConfig           `yaml:"http"`
	Model          ModelConfig          `yaml:"model"`
	Vocabulary     VocabularyConfig     `yaml:"vocabulary"`
	Recommendation RecommendationConfig `yaml:"recommendation"`
	Auth           AuthConfig           `yaml:"auth"`
	Logging        LoggingConfig        `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// ModelConfig holds LLM provider settings.
type ModelConfig struct {
	Provider   string `yaml:"provider"` // gemini, openai (default: gemini)
	APIKey     string `yaml:"api_key"`
	Project    string `yaml:"project"`  // Vertex AI project (gemini only)
	Location   string `yaml:"location"` // Vertex AI location (gemini only)
	BaseURL    string `yaml:"base_url"` // openai-compatible endpoint override
	Model      string `yaml:"model"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// VocabularyConfig holds vocabulary source settings.
type VocabularyConfig struct {
	Source string      `yaml:"source"` // file, redis (default: file)
	Dir    string      `yaml:"dir"`
	Redis  RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis connection settings for the vocabulary source.
type RedisConfig struct {
	Addrs     []string `yaml:"addrs"`
	Password  string   `yaml:"password"`
	KeyPrefix string   `yaml:"key_prefix"`
}

// RecommendationConfig holds recommendation API client settings.
type RecommendationConfig struct {
	BaseURL    string `yaml:"base_url"`
	Revision   string `yaml:"revision"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Model.Provider == "" {
		c.Model.Provider = "gemini"
	}
	if c.Model.Model == "" {
		switch c.Model.Provider {
		case "openai":
			c.Model.Model = "gpt-4o-mini"
		default:
			c.Model.Model = "gemini-1.5-flash-001"
		}
	}
	if c.Model.TimeoutSec <= 0 {
		c.Model.TimeoutSec = 30
	}
	if c.Vocabulary.Source == "" {
		c.Vocabulary.Source = "file"
	}
	if c.Vocabulary.Dir == "" {
		c.Vocabulary.Dir = "files"
	}
	if c.Vocabulary.Redis.KeyPrefix == "" {
		c.Vocabulary.Redis.KeyPrefix = "giftrec:vocab:"
	}
	if c.Recommendation.BaseURL == "" {
		c.Recommendation.BaseURL = "https://api.toandfrom.com/v3"
	}
	if c.Recommendation.Revision == "" {
		c.Recommendation.Revision = "2024-05-23"
	}
	if c.Recommendation.TimeoutSec <= 0 {
		c.Recommendation.TimeoutSec = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Model.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("model.provider must be \"gemini\" or \"openai\", got %q", c.Model.Provider)
	}
	if c.Model.Provider == "gemini" && c.Model.APIKey == "" && c.Model.Project == "" {
		return fmt.Errorf("model.api_key or model.project is required for the gemini provider")
	}
	if c.Model.Provider == "openai" && c.Model.APIKey == "" {
		return fmt.Errorf("model.api_key is required for the openai provider")
	}
	switch c.Vocabulary.Source {
	case "file":
	case "redis":
		if len(c.Vocabulary.Redis.Addrs) == 0 {
			return fmt.Errorf("vocabulary.redis.addrs is required for the redis source")
		}
	default:
		return fmt.Errorf("vocabulary.source must be \"file\" or \"redis\", got %q", c.Vocabulary.Source)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
