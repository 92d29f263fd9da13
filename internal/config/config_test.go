package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks variables that would leak from the host into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FMP_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "KAFKA_BROKERS",
		"STOCK_ANALYST_FMP_API_KEY", "STOCK_ANALYST_SERVER_PORT", "STOCK_ANALYST_LLM_PROVIDER",
		"STOCK_ANALYST_KAFKA_BROKERS", "STOCK_ANALYST_LOGGING_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "*", cfg.Server.CORSOrigin)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())

	assert.Equal(t, "https://financialmodelingprep.com/stable", cfg.FMP.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.FMP.Timeout)
	assert.Equal(t, 4, cfg.FMP.Quarters)
	assert.Equal(t, 5.0, cfg.FMP.RequestsPerSecond)

	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, 1500, cfg.LLM.MaxTokens)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)

	assert.False(t, cfg.Kafka.KafkaEnabled())
	assert.Equal(t, "stock-analyses", cfg.Kafka.ResultsTopic)
	assert.Equal(t, "analysis-requests", cfg.Kafka.RequestsTopic)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)

	assert.ErrorIs(t, cfg.RequireFMP(), ErrMissingAPIKey)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STOCK_ANALYST_SERVER_PORT", "9090")
	t.Setenv("STOCK_ANALYST_LLM_PROVIDER", "gemini")
	t.Setenv("FMP_API_KEY", "fmp-secret")
	t.Setenv("GEMINI_API_KEY", "gem-secret")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "fmp-secret", cfg.FMP.APIKey)
	assert.NoError(t, cfg.RequireFMP())
	assert.Equal(t, "gem-secret", cfg.LLM.LLMKey())
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.KafkaEnabled())
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 3000
  cors_origin: https://dashboard.example.com
fmp:
  api_key: from-file
  quarters: 8
llm:
  provider: none
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "https://dashboard.example.com", cfg.Server.CORSOrigin)
	assert.Equal(t, "from-file", cfg.FMP.APIKey)
	assert.Equal(t, 8, cfg.FMP.Quarters)
	assert.Equal(t, "none", cfg.LLM.Provider)
	assert.Empty(t, cfg.LLM.LLMKey())
	assert.Equal(t, "json", cfg.Logging.Format)
	// untouched keys keep their defaults
	assert.Equal(t, "stock-analyst", cfg.Kafka.GroupID)
}

func TestLoadFromFile_Missing(t *testing.T) {
	clearEnv(t)

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	cfg.LLM.Provider = "bedrock"
	assert.Error(t, cfg.Validate())

	cfg.LLM.Provider = "none"
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg.Logging.Format = "json"
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg.Server.Port = 8080
	assert.NoError(t, cfg.Validate())
}

func TestLLMKey(t *testing.T) {
	c := LLMConfig{Provider: "anthropic", AnthropicKey: "a", GeminiKey: "g"}
	assert.Equal(t, "a", c.LLMKey())
	c.Provider = "gemini"
	assert.Equal(t, "g", c.LLMKey())
	c.Provider = "none"
	assert.Empty(t, c.LLMKey())
}
