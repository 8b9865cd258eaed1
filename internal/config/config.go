package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is built once at process
// start and threaded through every component; nothing reads the environment
// after Load returns.
type Config struct {
	Server   ServerConfig
	Fetch    FetchConfig
	Raster   RasterConfig
	Parser   ParserConfig
	Pipeline PipelineConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// FetchConfig holds document download settings.
type FetchConfig struct {
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxFileSizeMB int64         `mapstructure:"max_file_size_mb"`
	// AllowedDomains restricts fetches to these hosts (exact match, or any
	// subdomain when the entry starts with a dot). Empty = any public host.
	AllowedDomains []string `mapstructure:"allowed_domains"`
	// AllowPrivateHosts disables the private/loopback address rejection.
	// Local development only; never set in production.
	AllowPrivateHosts bool `mapstructure:"allow_private_hosts"`
}

// MaxBytes returns the download size ceiling in bytes.
func (f *FetchConfig) MaxBytes() int64 {
	return f.MaxFileSizeMB * 1024 * 1024
}

// RasterConfig holds PDF rasterization settings. MaxPages and DPI are safety
// ceilings: memory scales with page count times resolution squared.
type RasterConfig struct {
	DPI         int `mapstructure:"dpi"`
	MaxPages    int `mapstructure:"max_pages"`
	JPEGQuality int `mapstructure:"jpeg_quality"`
}

// ParserProviderConfig holds settings for a single vision-model provider.
type ParserProviderConfig struct {
	Provider        string  `mapstructure:"provider"`
	APIKey          string  `mapstructure:"api_key"`
	DefaultModel    string  `mapstructure:"default_model"`
	Temperature     float64 `mapstructure:"temperature"`
	TimeoutSecs     int     `mapstructure:"timeout_secs"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens"`
}

// ParserConfig holds extraction model settings with multi-provider fallback.
type ParserConfig struct {
	Primary   ParserProviderConfig `mapstructure:"primary"`
	Secondary ParserProviderConfig `mapstructure:"secondary"`
	Tertiary  ParserProviderConfig `mapstructure:"tertiary"`
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (p *ParserConfig) SecondaryConfig() *ParserProviderConfig {
	if p.Secondary.Provider != "" {
		return &p.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (p *ParserConfig) TertiaryConfig() *ParserProviderConfig {
	if p.Tertiary.Provider != "" {
		return &p.Tertiary
	}
	return nil
}

// PipelineConfig holds per-request pipeline settings.
type PipelineConfig struct {
	// PageConcurrency bounds concurrent model calls per request, to stay
	// inside provider rate limits.
	PageConcurrency int `mapstructure:"page_concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the BILLSCAN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// Fetch defaults
	v.SetDefault("fetch.timeout", "30s")
	v.SetDefault("fetch.max_file_size_mb", 20)
	v.SetDefault("fetch.allowed_domains", "")
	v.SetDefault("fetch.allow_private_hosts", false)

	// Raster defaults
	v.SetDefault("raster.dpi", 100)
	v.SetDefault("raster.max_pages", 30)
	v.SetDefault("raster.jpeg_quality", 85)

	// Parser defaults
	v.SetDefault("parser.primary.provider", "gemini")
	v.SetDefault("parser.primary.api_key", "")
	v.SetDefault("parser.primary.default_model", "")
	v.SetDefault("parser.primary.temperature", 0.1)
	v.SetDefault("parser.primary.timeout_secs", 120)
	v.SetDefault("parser.primary.max_output_tokens", 8192)
	v.SetDefault("parser.secondary.provider", "")
	v.SetDefault("parser.secondary.api_key", "")
	v.SetDefault("parser.secondary.default_model", "")
	v.SetDefault("parser.secondary.temperature", 0.1)
	v.SetDefault("parser.secondary.timeout_secs", 120)
	v.SetDefault("parser.secondary.max_output_tokens", 8192)
	v.SetDefault("parser.tertiary.provider", "")
	v.SetDefault("parser.tertiary.api_key", "")
	v.SetDefault("parser.tertiary.default_model", "")
	v.SetDefault("parser.tertiary.temperature", 0.1)
	v.SetDefault("parser.tertiary.timeout_secs", 120)
	v.SetDefault("parser.tertiary.max_output_tokens", 8192)

	// Pipeline defaults
	v.SetDefault("pipeline.page_concurrency", 4)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                        "BILLSCAN_SERVER_PORT",
		"server.read_timeout":                "BILLSCAN_SERVER_READ_TIMEOUT",
		"server.write_timeout":               "BILLSCAN_SERVER_WRITE_TIMEOUT",
		"server.environment":                 "BILLSCAN_SERVER_ENVIRONMENT",
		"fetch.timeout":                      "BILLSCAN_FETCH_TIMEOUT",
		"fetch.max_file_size_mb":             "BILLSCAN_FETCH_MAX_FILE_SIZE_MB",
		"fetch.allowed_domains":              "BILLSCAN_FETCH_ALLOWED_DOMAINS",
		"fetch.allow_private_hosts":          "BILLSCAN_FETCH_ALLOW_PRIVATE_HOSTS",
		"raster.dpi":                         "BILLSCAN_RASTER_DPI",
		"raster.max_pages":                   "BILLSCAN_RASTER_MAX_PAGES",
		"raster.jpeg_quality":                "BILLSCAN_RASTER_JPEG_QUALITY",
		"parser.primary.provider":            "BILLSCAN_PARSER_PRIMARY_PROVIDER",
		"parser.primary.api_key":             "BILLSCAN_PARSER_PRIMARY_API_KEY",
		"parser.primary.default_model":       "BILLSCAN_PARSER_PRIMARY_DEFAULT_MODEL",
		"parser.primary.temperature":         "BILLSCAN_PARSER_PRIMARY_TEMPERATURE",
		"parser.primary.timeout_secs":        "BILLSCAN_PARSER_PRIMARY_TIMEOUT_SECS",
		"parser.primary.max_output_tokens":   "BILLSCAN_PARSER_PRIMARY_MAX_OUTPUT_TOKENS",
		"parser.secondary.provider":          "BILLSCAN_PARSER_SECONDARY_PROVIDER",
		"parser.secondary.api_key":           "BILLSCAN_PARSER_SECONDARY_API_KEY",
		"parser.secondary.default_model":     "BILLSCAN_PARSER_SECONDARY_DEFAULT_MODEL",
		"parser.secondary.temperature":       "BILLSCAN_PARSER_SECONDARY_TEMPERATURE",
		"parser.secondary.timeout_secs":      "BILLSCAN_PARSER_SECONDARY_TIMEOUT_SECS",
		"parser.secondary.max_output_tokens": "BILLSCAN_PARSER_SECONDARY_MAX_OUTPUT_TOKENS",
		"parser.tertiary.provider":           "BILLSCAN_PARSER_TERTIARY_PROVIDER",
		"parser.tertiary.api_key":            "BILLSCAN_PARSER_TERTIARY_API_KEY",
		"parser.tertiary.default_model":      "BILLSCAN_PARSER_TERTIARY_DEFAULT_MODEL",
		"parser.tertiary.temperature":        "BILLSCAN_PARSER_TERTIARY_TEMPERATURE",
		"parser.tertiary.timeout_secs":       "BILLSCAN_PARSER_TERTIARY_TIMEOUT_SECS",
		"parser.tertiary.max_output_tokens":  "BILLSCAN_PARSER_TERTIARY_MAX_OUTPUT_TOKENS",
		"pipeline.page_concurrency":          "BILLSCAN_PIPELINE_PAGE_CONCURRENCY",
		"cors.allowed_origins":               "BILLSCAN_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BILLSCAN_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLSCAN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Fetch = FetchConfig{
		Timeout:           v.GetDuration("fetch.timeout"),
		MaxFileSizeMB:     v.GetInt64("fetch.max_file_size_mb"),
		AllowedDomains:    splitCSV(v.GetString("fetch.allowed_domains")),
		AllowPrivateHosts: v.GetBool("fetch.allow_private_hosts"),
	}
	cfg.Raster = RasterConfig{
		DPI:         v.GetInt("raster.dpi"),
		MaxPages:    v.GetInt("raster.max_pages"),
		JPEGQuality: v.GetInt("raster.jpeg_quality"),
	}
	cfg.Parser = ParserConfig{
		Primary: ParserProviderConfig{
			Provider:        v.GetString("parser.primary.provider"),
			APIKey:          v.GetString("parser.primary.api_key"),
			DefaultModel:    v.GetString("parser.primary.default_model"),
			Temperature:     v.GetFloat64("parser.primary.temperature"),
			TimeoutSecs:     v.GetInt("parser.primary.timeout_secs"),
			MaxOutputTokens: v.GetInt("parser.primary.max_output_tokens"),
		},
		Secondary: ParserProviderConfig{
			Provider:        v.GetString("parser.secondary.provider"),
			APIKey:          v.GetString("parser.secondary.api_key"),
			DefaultModel:    v.GetString("parser.secondary.default_model"),
			Temperature:     v.GetFloat64("parser.secondary.temperature"),
			TimeoutSecs:     v.GetInt("parser.secondary.timeout_secs"),
			MaxOutputTokens: v.GetInt("parser.secondary.max_output_tokens"),
		},
		Tertiary: ParserProviderConfig{
			Provider:        v.GetString("parser.tertiary.provider"),
			APIKey:          v.GetString("parser.tertiary.api_key"),
			DefaultModel:    v.GetString("parser.tertiary.default_model"),
			Temperature:     v.GetFloat64("parser.tertiary.temperature"),
			TimeoutSecs:     v.GetInt("parser.tertiary.timeout_secs"),
			MaxOutputTokens: v.GetInt("parser.tertiary.max_output_tokens"),
		},
	}
	cfg.Pipeline = PipelineConfig{
		PageConcurrency: v.GetInt("pipeline.page_concurrency"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitCSV(v.GetString("cors.allowed_origins")),
	}

	return cfg, nil
}

// splitCSV parses a comma-separated string, trimming whitespace and dropping
// empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
