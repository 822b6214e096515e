package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Storage
	Database DatabaseConfig
	Redis    RedisConfig

	// Boundary
	Session   SessionConfig
	CSRF      CSRFConfig
	RateLimit RateLimitConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Calendar assistant specifics
	Command        CommandConfig
	GoogleCalendar GoogleCalendarConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// DatabaseConfig selects the event store. Driver is "sqlite" or "postgres".
type DatabaseConfig struct {
	Driver string
	DSN    string
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret     string
	Issuer     string
	CookieName string
}

type CSRFConfig struct {
	Enabled  bool
	TTL      time.Duration
	Capacity int
	Header   string
}

// RateClassConfig is one named budget.
type RateClassConfig struct {
	Limit  int
	Window time.Duration
}

type RateLimitConfig struct {
	AI            RateClassConfig
	Read          RateClassConfig
	Auth          RateClassConfig
	SweepInterval time.Duration
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers         []ProviderConfig `yaml:"providers"`
	FallbackEnabled   bool             `yaml:"fallback_enabled"`
	RetryAttempts     int              `yaml:"retry_attempts"`
	RetryDelay        string           `yaml:"retry_delay"`
	MaxTotalTimeout   string           `yaml:"max_total_timeout"` // Global timeout for entire fallback chain
	Temperature       float64          `yaml:"temperature"`
	MaxTokens         int              `yaml:"max_tokens"`
	RequestsPerSecond float64          `yaml:"requests_per_second"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// CommandConfig tunes the natural-language command pipeline.
type CommandConfig struct {
	ModelTimeout      time.Duration
	ContextPastDays   int
	ContextFutureDays int
	ContextMaxEvents  int
	Timezone          string
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.MaxBodyBytes = viper.GetInt64("http_server.max_body_bytes")
	cfg.HTTPServer.ShutdownTimeout = viper.GetDuration("http_server.shutdown_timeout")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Storage
	cfg.Database.Driver = viper.GetString("database.driver")
	cfg.Database.DSN = viper.GetString("database.dsn")
	if dsn := viper.GetString("database_url"); dsn != "" {
		cfg.Database.DSN = dsn
	}

	cfg.Redis.Enabled = viper.GetBool("redis.enabled")
	cfg.Redis.Addr = viper.GetString("redis.addr")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")

	// Boundary
	cfg.Session.Secret = expandEnvVar(viper.GetString("session.secret"))
	cfg.Session.Issuer = viper.GetString("session.issuer")
	cfg.Session.CookieName = viper.GetString("session.cookie_name")
	if secret := viper.GetString("session_secret"); secret != "" {
		cfg.Session.Secret = secret
	}

	cfg.CSRF.Enabled = viper.GetBool("csrf.enabled")
	cfg.CSRF.TTL = viper.GetDuration("csrf.ttl")
	cfg.CSRF.Capacity = viper.GetInt("csrf.capacity")
	cfg.CSRF.Header = viper.GetString("csrf.header")

	cfg.RateLimit.AI = getRateClass("rate_limit.ai")
	cfg.RateLimit.Read = getRateClass("rate_limit.read")
	cfg.RateLimit.Auth = getRateClass("rate_limit.auth")
	cfg.RateLimit.SweepInterval = viper.GetDuration("rate_limit.sweep_interval")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")
	cfg.LLM.Temperature = viper.GetFloat64("llm.temperature")
	cfg.LLM.MaxTokens = viper.GetInt("llm.max_tokens")
	cfg.LLM.RequestsPerSecond = viper.GetFloat64("llm.requests_per_second")

	// Load provider configurations
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// Calendar assistant specifics
	cfg.Command.ModelTimeout = viper.GetDuration("command.model_timeout")
	cfg.Command.ContextPastDays = viper.GetInt("command.context_past_days")
	cfg.Command.ContextFutureDays = viper.GetInt("command.context_future_days")
	cfg.Command.ContextMaxEvents = viper.GetInt("command.context_max_events")
	cfg.Command.Timezone = viper.GetString("command.timezone")

	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.max_body_bytes", 10240)
	viper.SetDefault("http_server.shutdown_timeout", "30s")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// Storage
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "file:calendar.db?_pragma=busy_timeout(5000)")
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	// Boundary
	viper.SetDefault("session.issuer", "calendar-assistant")
	viper.SetDefault("session.cookie_name", "session")
	viper.SetDefault("csrf.enabled", true)
	viper.SetDefault("csrf.ttl", "1h")
	viper.SetDefault("csrf.capacity", 10000)
	viper.SetDefault("csrf.header", "X-CSRF-Token")
	viper.SetDefault("rate_limit.ai.limit", 10)
	viper.SetDefault("rate_limit.ai.window", "1m")
	viper.SetDefault("rate_limit.read.limit", 120)
	viper.SetDefault("rate_limit.read.window", "1m")
	viper.SetDefault("rate_limit.auth.limit", 20)
	viper.SetDefault("rate_limit.auth.window", "15m")
	viper.SetDefault("rate_limit.sweep_interval", "1m")

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s") // Default: 60 seconds for entire fallback chain
	viper.SetDefault("llm.temperature", 0.1)
	viper.SetDefault("llm.max_tokens", 1024)
	viper.SetDefault("llm.requests_per_second", 5)

	// Command pipeline
	viper.SetDefault("command.model_timeout", "30s")
	viper.SetDefault("command.context_past_days", 7)
	viper.SetDefault("command.context_future_days", 30)
	viper.SetDefault("command.context_max_events", 50)
	viper.SetDefault("command.timezone", "UTC")
	viper.SetDefault("google_calendar.calendar_id", "primary")
}

func (cfg *Config) validate() error {
	if cfg.Session.Secret == "" {
		return errors.New("session.secret is required (or SESSION_SECRET)")
	}
	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", cfg.Database.Driver)
	}
	if cfg.Redis.Enabled && cfg.Redis.Addr == "" {
		return errors.New("redis.addr is required when redis.enabled is true")
	}
	for name, rc := range map[string]RateClassConfig{"ai": cfg.RateLimit.AI, "read": cfg.RateLimit.Read, "auth": cfg.RateLimit.Auth} {
		if rc.Limit <= 0 || rc.Window <= 0 {
			return fmt.Errorf("rate_limit.%s: limit and window must be positive", name)
		}
	}
	return validateLLMConfig(&cfg.LLM)
}

func getRateClass(prefix string) RateClassConfig {
	return RateClassConfig{
		Limit:  viper.GetInt(prefix + ".limit"),
		Window: viper.GetDuration(prefix + ".window"),
	}
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	// Check if value is in format ${VAR_NAME}
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try lowercase version
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - please add llm.providers section to config.yaml")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}

			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
