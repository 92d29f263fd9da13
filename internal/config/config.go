// Package config loads stock-analyst settings from defaults, an optional
// config.yaml, a .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key, e.g. STOCK_ANALYST_SERVER_PORT.
const EnvPrefix = "STOCK_ANALYST"

// ErrMissingAPIKey is returned by RequireFMP when no data-provider key is set
var ErrMissingAPIKey = errors.New("fmp api key is not configured")

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"`
	FMP     FMPConfig     `mapstructure:"fmp"     yaml:"fmp"`
	LLM     LLMConfig     `mapstructure:"llm"     yaml:"llm"`
	Kafka   KafkaConfig   `mapstructure:"kafka"   yaml:"kafka"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"          yaml:"host"`
	Port         int           `mapstructure:"port"          yaml:"port"          validate:"min=1,max=65535"`
	CORSOrigin   string        `mapstructure:"cors_origin"   yaml:"cors_origin"   validate:"required"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"  yaml:"read_timeout"  validate:"gt=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" validate:"gt=0"`
}

// FMPConfig holds Financial Modeling Prep settings
type FMPConfig struct {
	BaseURL           string        `mapstructure:"base_url"            yaml:"base_url"            validate:"required,url"`
	APIKey            string        `mapstructure:"api_key"             yaml:"api_key"`
	Timeout           time.Duration `mapstructure:"timeout"             yaml:"timeout"             validate:"gt=0"`
	Quarters          int           `mapstructure:"quarters"            yaml:"quarters"            validate:"min=1,max=40"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" yaml:"requests_per_second" validate:"gte=0"`
}

// LLMConfig holds generation-service settings
type LLMConfig struct {
	Provider     string        `mapstructure:"provider"      yaml:"provider"      validate:"oneof=anthropic gemini none"`
	Model        string        `mapstructure:"model"         yaml:"model"`
	AnthropicKey string        `mapstructure:"anthropic_key" yaml:"anthropic_key"`
	GeminiKey    string        `mapstructure:"gemini_key"    yaml:"gemini_key"`
	BaseURL      string        `mapstructure:"base_url"      yaml:"base_url"      validate:"omitempty,url"`
	MaxTokens    int           `mapstructure:"max_tokens"    yaml:"max_tokens"    validate:"min=1"`
	Timeout      time.Duration `mapstructure:"timeout"       yaml:"timeout"       validate:"gt=0"`
}

// KafkaConfig holds Kafka configuration. Empty Brokers disables publishing.
type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"        yaml:"brokers"`
	ResultsTopic  string   `mapstructure:"results_topic"  yaml:"results_topic"  validate:"required"`
	RequestsTopic string   `mapstructure:"requests_topic" yaml:"requests_topic" validate:"required"`
	GroupID       string   `mapstructure:"group_id"       yaml:"group_id"       validate:"required"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"  validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=console json"`
}

// Load reads configuration from ./config, $HOME/.stock-analyst or /etc/stock-analyst,
// then applies the environment. A missing config file is not an error.
func Load() (*Config, error) {
	loadDotEnv()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".stock-analyst"))
	v.AddConfigPath("/etc/stock-analyst")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFromFile reads configuration from an explicit path.
func LoadFromFile(path string) (*Config, error) {
	loadDotEnv()

	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origin", "*")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 90*time.Second)

	v.SetDefault("fmp.base_url", "https://financialmodelingprep.com/stable")
	v.SetDefault("fmp.api_key", "")
	v.SetDefault("fmp.timeout", 10*time.Second)
	v.SetDefault("fmp.quarters", 4)
	v.SetDefault("fmp.requests_per_second", 5.0)

	v.SetDefault("llm.provider", "anthropic")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.anthropic_key", "")
	v.SetDefault("llm.gemini_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.max_tokens", 1500)
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.results_topic", "stock-analyses")
	v.SetDefault("kafka.requests_topic", "analysis-requests")
	v.SetDefault("kafka.group_id", "stock-analyst")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// overrideFromEnv applies the unprefixed variables used by the deployment templates.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("FMP_API_KEY"); key != "" {
		cfg.FMP.APIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		cfg.LLM.AnthropicKey = key
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.LLM.GeminiKey = key
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = []string{brokers}
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RequireFMP reports whether commands that fetch market data can run.
func (c *Config) RequireFMP() error {
	if strings.TrimSpace(c.FMP.APIKey) == "" {
		return fmt.Errorf("%w: set FMP_API_KEY or %s_FMP_API_KEY", ErrMissingAPIKey, EnvPrefix)
	}
	return nil
}

// LLMKey returns the credential for the selected provider.
func (c *LLMConfig) LLMKey() string {
	switch c.Provider {
	case "anthropic":
		return c.AnthropicKey
	case "gemini":
		return c.GeminiKey
	default:
		return ""
	}
}

// Addr returns the listen address
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// KafkaEnabled reports whether any broker is configured
func (k *KafkaConfig) KafkaEnabled() bool {
	return len(k.Brokers) > 0
}

// splitList flattens comma-separated entries and drops blanks.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// loadDotEnv reads .env from the working directory if present. Existing
// variables win.
func loadDotEnv() {
	_ = godotenv.Load()
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
