package infra

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration of the service.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Executor  ExecutorConfig  `mapstructure:"executor"`
	Logger    LoggerConfig    `mapstructure:"logger"`
}

// ServerConfig describes the HTTP command surface.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// MetricsConfig describes the Prometheus exposition listener.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// DatabaseConfig describes the PostgreSQL connection.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
	MinConns int32  `mapstructure:"min_conns"`
}

// RedisConfig describes the Redis connection used for decision pub/sub and
// the scheduler fire-guard. An empty Addr disables both.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig holds the single operator credential and JWT settings.
type AuthConfig struct {
	Operator     string        `mapstructure:"operator"`      // operator username
	PasswordHash string        `mapstructure:"password_hash"` // bcrypt hash of the operator password
	Secret       string        `mapstructure:"secret"`        // HS256 signing secret
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

// LLMConfig holds per-adapter endpoints and model names. Credentials live
// in the store, not here.
type LLMConfig struct {
	GeminiModel    string        `mapstructure:"gemini_model"`
	OpenAIModel    string        `mapstructure:"openai_model"`
	AnthropicModel string        `mapstructure:"anthropic_model"`
	LocalEndpoint  string        `mapstructure:"local_endpoint"`
	LocalModel     string        `mapstructure:"local_model"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// SchedulerConfig controls the tick loop and the daily anchor.
type SchedulerConfig struct {
	Tick        time.Duration `mapstructure:"tick"`
	DailyHour   int           `mapstructure:"daily_hour"`
	DailyMinute int           `mapstructure:"daily_minute"`
}

// ExecutorConfig locates the automation scripts and bounds dispatch rate.
type ExecutorConfig struct {
	ScriptDir  string  `mapstructure:"script_dir"`
	Runtime    string  `mapstructure:"runtime"` // interpreter for the scripts
	RatePerSec float64 `mapstructure:"rate_per_sec"`
	RateBurst  int     `mapstructure:"rate_burst"`
	TopicsCmd  string  `mapstructure:"topics_cmd"` // content-source CLI, optional
}

// LoggerConfig tunes the zap logger.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// LoadConfig merges config.yaml with environment overrides and defaults.
// Env vars replace dots with underscores: DATABASE_URL overrides
// database.url.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No file: env vars and defaults carry the config.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("metrics.addr", ":9090")
	v.SetDefault("database.max_conns", 15)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("auth.token_ttl", 12*time.Hour)
	v.SetDefault("llm.gemini_model", "gemini-1.5-flash")
	v.SetDefault("llm.openai_model", "gpt-4o-mini")
	v.SetDefault("llm.anthropic_model", "claude-3-5-sonnet-20240620")
	v.SetDefault("llm.local_endpoint", "http://localhost:11434/api/generate")
	v.SetDefault("llm.local_model", "phi3")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("scheduler.tick", 60*time.Second)
	v.SetDefault("scheduler.daily_hour", 9)
	v.SetDefault("scheduler.daily_minute", 0)
	v.SetDefault("executor.script_dir", "./automation")
	v.SetDefault("executor.runtime", "node")
	v.SetDefault("executor.rate_per_sec", 1)
	v.SetDefault("executor.rate_burst", 3)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
}
