package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the full application configuration.
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Gemini      GeminiConfig    `mapstructure:"gemini"`
	TTS         TTSConfig       `mapstructure:"tts"`
	Cache       CacheConfig     `mapstructure:"cache"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
}

// AppConfig describes the application itself.
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// GeminiConfig holds generation model settings. Model selection, sampling
// parameters and safety thresholds are fixed configuration, never runtime
// input.
type GeminiConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	Temperature     float64       `mapstructure:"temperature"`
	TopP            float64       `mapstructure:"top_p"`
	TopK            int           `mapstructure:"top_k"`
	MaxOutputTokens int           `mapstructure:"max_output_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// TTSConfig holds speech synthesis settings.
type TTSConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	LanguageCode string        `mapstructure:"language_code"`
	VoiceName    string        `mapstructure:"voice_name"`
	SpeakingRate float64       `mapstructure:"speaking_rate"`
	Timeout      time.Duration `mapstructure:"timeout"`
	StaticDir    string        `mapstructure:"static_dir"`
}

// CacheConfig holds the generation response cache settings.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Addr    string        `mapstructure:"addr"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds request throttling settings.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig reads .env plus environment variables and returns the parsed,
// validated configuration.
func LoadConfig() (*Config, error) {
	// .env is optional outside development.
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	viper.BindEnv("gemini.model", "GEMINI_MODEL")
	viper.BindEnv("gemini.max_output_tokens", "GEMINI_MAX_OUTPUT_TOKENS")
	viper.BindEnv("tts.api_key", "TTS_API_KEY")
	viper.BindEnv("tts.language_code", "TTS_LANGUAGE_CODE")
	viper.BindEnv("tts.voice_name", "TTS_VOICE_NAME")
	viper.BindEnv("tts.static_dir", "TTS_STATIC_DIR")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.addr", "REDIS_ADDR")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")
	viper.BindEnv("server.port", "PORT")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// MaskAPIKey hides all but the first and last four characters of a key.
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "sistema-iareceita")

	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	viper.SetDefault("gemini.model", "gemini-1.5-flash-latest")
	viper.SetDefault("gemini.temperature", 0.7)
	viper.SetDefault("gemini.top_p", 1.0)
	viper.SetDefault("gemini.top_k", 1)
	viper.SetDefault("gemini.max_output_tokens", 2048)
	viper.SetDefault("gemini.timeout", "60s")

	viper.SetDefault("tts.language_code", "pt-BR")
	viper.SetDefault("tts.voice_name", "pt-BR-Standard-B")
	viper.SetDefault("tts.speaking_rate", 0.9)
	viper.SetDefault("tts.timeout", "30s")
	viper.SetDefault("tts.static_dir", "static")

	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.addr", "localhost:6379")
	viper.SetDefault("cache.ttl", "24h")

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	viper.SetDefault("dedup_window", "1s")

	viper.SetDefault("log_level", "info")
}

func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	if config.Gemini.Model == "" {
		return fmt.Errorf("gemini model is required")
	}

	if config.Cache.Enabled {
		if config.Cache.Addr == "" {
			return fmt.Errorf("cache addr is required when cache is enabled")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
	}

	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 {
			return fmt.Errorf("invalid rate limit requests")
		}
		if config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit window")
		}
	}

	return nil
}

// MissingCredentialWarnings lists human-readable warnings for credentials
// that are absent but needed at runtime. Startup proceeds regardless.
func (c *Config) MissingCredentialWarnings() []string {
	var warnings []string
	if c.Gemini.APIKey == "" {
		warnings = append(warnings, "GEMINI_API_KEY não está configurada; geração de receitas indisponível")
	}
	if c.TTS.APIKey == "" {
		warnings = append(warnings, "TTS_API_KEY não está configurada; geração de áudio indisponível")
	}
	return warnings
}
