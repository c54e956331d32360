package config

import "time"

// Default returns a Config populated with sensible defaults, suitable for
// running without a config file.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in zero-valued fields with defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	if cfg.Storage.HotelDatabasePath == "" {
		cfg.Storage.HotelDatabasePath = "./hotel.db"
	}
	if cfg.Storage.MeetingDatabasePath == "" {
		cfg.Storage.MeetingDatabasePath = "./meetings.db"
	}
	if cfg.Storage.KeywordIndexPath == "" {
		cfg.Storage.KeywordIndexPath = "./meetings.bleve"
	}
	if cfg.Storage.ExportPath == "" {
		cfg.Storage.ExportPath = "./hotel_bookings.xlsx"
	}

	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 512
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 1000
	}

	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 60 * time.Second
	}

	if cfg.Media.APIKeyEnv == "" {
		cfg.Media.APIKeyEnv = "LIVEKIT_API_KEY"
	}
	if cfg.Media.APISecretEnv == "" {
		cfg.Media.APISecretEnv = "LIVEKIT_API_SECRET"
	}
	if cfg.Media.TokenTTL == 0 {
		cfg.Media.TokenTTL = time.Hour
	}
	if cfg.Media.DefaultRoom == "" {
		cfg.Media.DefaultRoom = "default"
	}

	if cfg.Transcript.LogDir == "" {
		cfg.Transcript.LogDir = "./transcripts"
	}

	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = []string{".txt", ".md", ".pdf", ".docx", ".odt", ".rtf"}
	}
}
