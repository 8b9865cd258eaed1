package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/config"
)

func TestParserConfig_SecondaryConfig_NotConfigured(t *testing.T) {
	cfg := config.ParserConfig{
		Primary: config.ParserProviderConfig{
			Provider: "gemini",
			APIKey:   "gk-test",
		},
	}

	secondary := cfg.SecondaryConfig()

	assert.Nil(t, secondary)
}

func TestParserConfig_SecondaryConfig_Configured(t *testing.T) {
	cfg := config.ParserConfig{
		Primary: config.ParserProviderConfig{
			Provider: "gemini",
			APIKey:   "gk-primary",
		},
		Secondary: config.ParserProviderConfig{
			Provider:     "openai",
			APIKey:       "sk-secondary",
			DefaultModel: "gpt-4o",
		},
	}

	secondary := cfg.SecondaryConfig()

	assert.NotNil(t, secondary)
	assert.Equal(t, "openai", secondary.Provider)
	assert.Equal(t, "sk-secondary", secondary.APIKey)
	assert.Equal(t, "gpt-4o", secondary.DefaultModel)
}

func TestParserConfig_TertiaryConfig_NotConfigured(t *testing.T) {
	cfg := config.ParserConfig{
		Primary: config.ParserProviderConfig{
			Provider: "gemini",
		},
		Secondary: config.ParserProviderConfig{
			Provider: "openai",
		},
	}

	tertiary := cfg.TertiaryConfig()

	assert.Nil(t, tertiary)
}

func TestParserConfig_TertiaryConfig_Configured(t *testing.T) {
	cfg := config.ParserConfig{
		Tertiary: config.ParserProviderConfig{
			Provider: "claude",
			APIKey:   "sk-ant-tertiary",
		},
	}

	tertiary := cfg.TertiaryConfig()

	assert.NotNil(t, tertiary)
	assert.Equal(t, "claude", tertiary.Provider)
	assert.Equal(t, "sk-ant-tertiary", tertiary.APIKey)
}

func TestFetchConfig_MaxBytes(t *testing.T) {
	cfg := config.FetchConfig{MaxFileSizeMB: 20}

	assert.Equal(t, int64(20*1024*1024), cfg.MaxBytes())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 300*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "development", cfg.Server.Environment)

	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, int64(20), cfg.Fetch.MaxFileSizeMB)
	assert.Empty(t, cfg.Fetch.AllowedDomains)
	assert.False(t, cfg.Fetch.AllowPrivateHosts)

	assert.Equal(t, 100, cfg.Raster.DPI)
	assert.Equal(t, 30, cfg.Raster.MaxPages)
	assert.Equal(t, 85, cfg.Raster.JPEGQuality)

	assert.Equal(t, "gemini", cfg.Parser.Primary.Provider)
	assert.Equal(t, 0.1, cfg.Parser.Primary.Temperature)
	assert.Equal(t, 120, cfg.Parser.Primary.TimeoutSecs)
	assert.Equal(t, 8192, cfg.Parser.Primary.MaxOutputTokens)
	assert.Nil(t, cfg.Parser.SecondaryConfig())
	assert.Nil(t, cfg.Parser.TertiaryConfig())

	assert.Equal(t, 4, cfg.Pipeline.PageConcurrency)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BILLSCAN_SERVER_PORT", ":9090")
	t.Setenv("BILLSCAN_SERVER_READ_TIMEOUT", "45s")
	t.Setenv("BILLSCAN_FETCH_MAX_FILE_SIZE_MB", "5")
	t.Setenv("BILLSCAN_FETCH_ALLOWED_DOMAINS", "storage.googleapis.com, .trusted.example.com")
	t.Setenv("BILLSCAN_RASTER_DPI", "150")
	t.Setenv("BILLSCAN_RASTER_MAX_PAGES", "10")
	t.Setenv("BILLSCAN_PARSER_PRIMARY_PROVIDER", "claude")
	t.Setenv("BILLSCAN_PARSER_PRIMARY_API_KEY", "sk-ant-test")
	t.Setenv("BILLSCAN_PARSER_SECONDARY_PROVIDER", "openai")
	t.Setenv("BILLSCAN_PARSER_SECONDARY_API_KEY", "sk-oa-test")
	t.Setenv("BILLSCAN_PIPELINE_PAGE_CONCURRENCY", "2")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, 45*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(5), cfg.Fetch.MaxFileSizeMB)
	assert.Equal(t, []string{"storage.googleapis.com", ".trusted.example.com"}, cfg.Fetch.AllowedDomains)
	assert.Equal(t, 150, cfg.Raster.DPI)
	assert.Equal(t, 10, cfg.Raster.MaxPages)
	assert.Equal(t, "claude", cfg.Parser.Primary.Provider)
	assert.Equal(t, "sk-ant-test", cfg.Parser.Primary.APIKey)

	secondary := cfg.Parser.SecondaryConfig()
	require.NotNil(t, secondary)
	assert.Equal(t, "openai", secondary.Provider)
	assert.Equal(t, "sk-oa-test", secondary.APIKey)

	assert.Equal(t, 2, cfg.Pipeline.PageConcurrency)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	// Railway and Heroku inject a bare PORT variable.
	t.Setenv("PORT", "7777")
	t.Setenv("BILLSCAN_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Server.Port)
}
