// README: Config loader: defaults, optional YAML file (CHICHAT_CONFIG), then env overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StoreSupabase = "supabase"
	StorePostgres = "postgres"

	ProviderClaude = "claude"
	ProviderGemini = "gemini"
)

type HTTPConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type RedisConfig struct {
	Addr               string `yaml:"addr"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
}

// StoreConfig selects where puppy listings are read from. An empty Kind is inferred
// from whichever credentials are present.
type StoreConfig struct {
	Kind            string `yaml:"kind"`
	SupabaseURL     string `yaml:"supabase_url"`
	SupabaseAnonKey string `yaml:"supabase_anon_key"`
}

type MapsConfig struct {
	APIKey string `yaml:"api_key"`
	Origin string `yaml:"origin"`
}

type LLMConfig struct {
	Provider  string `yaml:"provider"`
	ClaudeKey string `yaml:"claude_api_key"`
	GeminiKey string `yaml:"gemini_api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

type Config struct {
	HTTP HTTPConfig `yaml:"http"`
	DB   struct {
		DSN string `yaml:"dsn"`
	} `yaml:"db"`
	Redis  RedisConfig `yaml:"redis"`
	Store  StoreConfig `yaml:"store"`
	Maps   MapsConfig  `yaml:"maps"`
	LLM    LLMConfig   `yaml:"llm"`
	Lookup struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"lookup"`
	Knowledge struct {
		File string `yaml:"file"`
	} `yaml:"knowledge"`
}

func defaults() Config {
	var cfg Config
	cfg.HTTP.Addr = ":8080"
	cfg.HTTP.CORSOrigins = []string{"*"}
	cfg.Redis.RateLimitPerMinute = 30
	cfg.Maps.Origin = "Marion, VA"
	cfg.LLM.Provider = ProviderClaude
	cfg.LLM.MaxTokens = 600
	cfg.Lookup.TimeoutSeconds = 8
	return cfg
}

func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CHICHAT_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.HTTP.Addr = envOrDefault("CHICHAT_HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.CORSOrigins = envOrDefaultList("CHICHAT_CORS_ORIGINS", cfg.HTTP.CORSOrigins)
	cfg.DB.DSN = envOrDefault("CHICHAT_DB_DSN", cfg.DB.DSN)
	cfg.Redis.Addr = envOrDefault("CHICHAT_REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.RateLimitPerMinute = envOrDefaultInt("CHICHAT_RATE_LIMIT_PER_MINUTE", cfg.Redis.RateLimitPerMinute)
	cfg.Store.Kind = envOrDefault("CHICHAT_ITEM_STORE", cfg.Store.Kind)
	cfg.Store.SupabaseURL = envOrDefault("SUPABASE_URL", cfg.Store.SupabaseURL)
	cfg.Store.SupabaseAnonKey = envOrDefault("SUPABASE_ANON_KEY", cfg.Store.SupabaseAnonKey)
	cfg.Maps.APIKey = envOrDefault("GOOGLE_MAPS_API_KEY", cfg.Maps.APIKey)
	cfg.Maps.Origin = envOrDefault("CHICHAT_ORIGIN", cfg.Maps.Origin)
	cfg.LLM.Provider = envOrDefault("CHICHAT_LLM_PROVIDER", cfg.LLM.Provider)
	cfg.LLM.ClaudeKey = envOrDefault("CLAUDE_API_KEY", cfg.LLM.ClaudeKey)
	cfg.LLM.GeminiKey = envOrDefault("GEMINI_API_KEY", cfg.LLM.GeminiKey)
	cfg.LLM.Model = envOrDefault("CHICHAT_LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.MaxTokens = envOrDefaultInt("CHICHAT_LLM_MAX_TOKENS", cfg.LLM.MaxTokens)
	cfg.Lookup.TimeoutSeconds = envOrDefaultInt("CHICHAT_LOOKUP_TIMEOUT_SECONDS", cfg.Lookup.TimeoutSeconds)
	cfg.Knowledge.File = envOrDefault("CHICHAT_KNOWLEDGE_FILE", cfg.Knowledge.File)

	cfg.Store.Kind = strings.ToLower(strings.TrimSpace(cfg.Store.Kind))
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c Config) validate() error {
	switch c.Store.Kind {
	case "", StoreSupabase, StorePostgres:
	default:
		return fmt.Errorf("unknown item store %q (want %q or %q)", c.Store.Kind, StoreSupabase, StorePostgres)
	}
	switch c.LLM.Provider {
	case ProviderClaude, ProviderGemini:
	default:
		return fmt.Errorf("unknown llm provider %q (want %q or %q)", c.LLM.Provider, ProviderClaude, ProviderGemini)
	}
	return nil
}

// ItemStore resolves the store kind, preferring Supabase when both are configured.
// It returns "" when neither is available.
func (c Config) ItemStore() string {
	if c.Store.Kind != "" {
		return c.Store.Kind
	}
	switch {
	case c.Store.SupabaseURL != "" && c.Store.SupabaseAnonKey != "":
		return StoreSupabase
	case c.DB.DSN != "":
		return StorePostgres
	default:
		return ""
	}
}

// LLMAPIKey returns the credential for the selected provider.
func (c Config) LLMAPIKey() string {
	if c.LLM.Provider == ProviderGemini {
		return c.LLM.GeminiKey
	}
	return c.LLM.ClaudeKey
}

func (c Config) LookupTimeout() time.Duration {
	return time.Duration(c.Lookup.TimeoutSeconds) * time.Second
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
