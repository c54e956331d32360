// Package config provides configuration loading for the concierge server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	LLM        LLMConfig        `yaml:"llm"`
	Media      MediaConfig      `yaml:"media"`
	Transcript TranscriptConfig `yaml:"transcript"`
	Watch      WatchConfig      `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds paths for the two databases, the keyword index, and the
// booking export workbook.
type StorageConfig struct {
	HotelDatabasePath   string `yaml:"hotel_database_path"`
	MeetingDatabasePath string `yaml:"meeting_database_path"`
	KeywordIndexPath    string `yaml:"keyword_index_path"`
	ExportPath          string `yaml:"export_path"`
}

// EmbeddingConfig holds ONNX embedder settings.
type EmbeddingConfig struct {
	ModelPath  string `yaml:"model_path"`
	Dimensions int    `yaml:"dimensions"`
	MaxTokens  int    `yaml:"max_tokens"`
	CacheSize  int    `yaml:"cache_size"`
}

// LLMConfig holds settings for the external conversational model.
// The API key is read from the environment variable named by APIKeyEnv so
// secrets stay out of config files.
type LLMConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Model     string        `yaml:"model"`
	APIKeyEnv string        `yaml:"api_key_env"`
	Timeout   time.Duration `yaml:"timeout"`
}

// MediaConfig holds room-token signing settings for the real-time media provider.
type MediaConfig struct {
	APIKeyEnv    string        `yaml:"api_key_env"`
	APISecretEnv string        `yaml:"api_secret_env"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
	DefaultRoom  string        `yaml:"default_room"`
}

// TranscriptConfig holds meeting-transcript recording and summary settings.
// RendererURL points at the external HTML-to-PDF service; empty disables PDF output.
type TranscriptConfig struct {
	LogDir      string `yaml:"log_dir"`
	RendererURL string `yaml:"renderer_url"`
}

// WatchConfig holds inbox-directory watch settings. Documents dropped into the
// watched directories are ingested into the meeting store automatically.
type WatchConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
	Recursive   *bool    `yaml:"recursive"`
}

// RecursiveOrDefault returns whether to watch recursively; defaults to true when unset.
func (w *WatchConfig) RecursiveOrDefault() bool {
	if w.Recursive != nil {
		return *w.Recursive
	}
	return true
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.HotelDatabasePath = expandPath(cfg.Storage.HotelDatabasePath, configDir)
	cfg.Storage.MeetingDatabasePath = expandPath(cfg.Storage.MeetingDatabasePath, configDir)
	cfg.Storage.KeywordIndexPath = expandPath(cfg.Storage.KeywordIndexPath, configDir)
	cfg.Storage.ExportPath = expandPath(cfg.Storage.ExportPath, configDir)
	cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, configDir)
	cfg.Transcript.LogDir = expandPath(cfg.Transcript.LogDir, configDir)
	for i := range cfg.Watch.Directories {
		cfg.Watch.Directories[i] = expandPath(cfg.Watch.Directories[i], configDir)
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative
// to configDir; other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
