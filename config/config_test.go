package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
session:
  secret: ${TEST_SESSION_SECRET}
database:
  driver: postgres
  dsn: postgres://calendar@localhost/calendar?sslmode=disable
rate_limit:
  ai:
    limit: 5
    window: 30s
llm:
  providers:
    - name: deepseek
      enabled: true
      priority: 1
      api_key: ${TEST_DEEPSEEK_KEY}
      model: deepseek-chat
      timeout: 20s
    - name: gemini
      enabled: false
      priority: 2
      api_key: none
      model: gemini-2.5-flash
`

func loadFrom(t *testing.T, yaml string) (*Config, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Chdir(dir)
	return Load()
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_SESSION_SECRET", "s3cret")
	t.Setenv("TEST_DEEPSEEK_KEY", "sk-test")

	cfg, err := loadFrom(t, sampleConfig)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, int64(10240), cfg.HTTPServer.MaxBodyBytes)
	assert.Equal(t, 5, cfg.RateLimit.AI.Limit)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.AI.Window)
	assert.Equal(t, 120, cfg.RateLimit.Read.Limit)
	assert.Equal(t, 30*time.Second, cfg.Command.ModelTimeout)
	assert.InDelta(t, 0.1, cfg.LLM.Temperature, 1e-9)

	require.Len(t, cfg.LLM.Providers, 2)
	assert.Equal(t, "sk-test", cfg.LLM.Providers[0].APIKey)
	assert.Equal(t, 1, cfg.LLM.Providers[0].Priority)
	assert.Equal(t, "20s", cfg.LLM.Providers[0].Timeout)
	assert.False(t, cfg.LLM.Providers[1].Enabled)
}

func TestLoadRequiresSessionSecret(t *testing.T) {
	_, err := loadFrom(t, `
llm:
  providers:
    - {name: openai, enabled: true, priority: 1, api_key: x, model: gpt-4o-mini}
`)
	assert.ErrorContains(t, err, "session.secret")
}

func TestValidateLLMConfig(t *testing.T) {
	for _, tc := range []struct {
		name    string
		cfg     LLMConfig
		wantErr string
	}{
		{name: "empty", cfg: LLMConfig{}, wantErr: "no LLM providers"},
		{
			name:    "missing model",
			cfg:     LLMConfig{Providers: []ProviderConfig{{Name: "a", Enabled: true, Priority: 1}}},
			wantErr: "model is required",
		},
		{
			name: "duplicate priority",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "a", Enabled: true, Priority: 1, Model: "m"},
				{Name: "b", Enabled: true, Priority: 1, Model: "m"},
			}},
			wantErr: "duplicate priority",
		},
		{
			name:    "none enabled",
			cfg:     LLMConfig{Providers: []ProviderConfig{{Name: "a", Model: "m"}}},
			wantErr: "no enabled",
		},
		{
			name: "ok",
			cfg:  LLMConfig{Providers: []ProviderConfig{{Name: "a", Enabled: true, Priority: 1, Model: "m"}}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := validateLLMConfig(&tc.cfg)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
