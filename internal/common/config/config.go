// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig         `mapstructure:"app"`
	Server       ServerConfig      `mapstructure:"server"`
	Database     DatabaseConfig    `mapstructure:"database"`
	Auth         AuthConfig        `mapstructure:"auth"`
	Integrations IntegrationConfig `mapstructure:"integrations"`
	Uploads      UploadConfig      `mapstructure:"uploads"`
	Analysis     AnalysisConfig    `mapstructure:"analysis"`
	Logging      LoggingConfig     `mapstructure:"logging"`
	Tracing      TracingConfig     `mapstructure:"tracing"`
}

// TracingConfig holds Jaeger export settings. An empty endpoint disables export.
type TracingConfig struct {
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	BaseURL     string `mapstructure:"base_url"` // used in invite / set-password links
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// Addr returns the host:port listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"` // Single URL for backwards compatibility
	Enabled    bool     `mapstructure:"enabled"`
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Specific Configuration Sections ---

// AuthConfig holds settings for token issuance and the OAuth providers.
type AuthConfig struct {
	JWTSecret        string `mapstructure:"jwt_secret"`
	TokenExpiry      int    `mapstructure:"token_expiry"`       // minutes
	ResetCodeExpiry  int    `mapstructure:"reset_code_expiry"`  // minutes
	TempPasswordSize int    `mapstructure:"temp_password_size"` // bytes of entropy for invited users

	OAuthProviders struct {
		Google struct {
			ClientID     string `mapstructure:"client_id"`
			ClientSecret string `mapstructure:"client_secret"`
			TokenInfoURL string `mapstructure:"token_info_url"`
		} `mapstructure:"google"`
	} `mapstructure:"oauth_providers"`
}

// IntegrationConfig holds settings for Outlook ingestion, email and SNS.
type IntegrationConfig struct {
	Outlook struct {
		Enabled      bool   `mapstructure:"enabled"`
		TenantID     string `mapstructure:"tenant_id"`
		ClientID     string `mapstructure:"client_id"`
		ClientSecret string `mapstructure:"client_secret"`
		Mailbox      string `mapstructure:"mailbox"`
		MaxMessages  int    `mapstructure:"max_messages"`
	} `mapstructure:"outlook"`

	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled   bool   `mapstructure:"enabled"`
			FromEmail string `mapstructure:"from_email"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled  bool   `mapstructure:"enabled"`
			TopicARN string `mapstructure:"topic_arn"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

// UploadConfig bounds multipart resume uploads.
type UploadConfig struct {
	MaxSizeMB         int      `mapstructure:"max_size_mb"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
}

// AnalysisConfig holds settings for the JD matching pipeline.
type AnalysisConfig struct {
	CacheTTL          int     `mapstructure:"cache_ttl"` // minutes
	DefaultMinScore   float64 `mapstructure:"default_min_score"`
	DefaultTopN       int     `mapstructure:"default_top_n"`
	ShortlistCap      int     `mapstructure:"shortlist_cap"`
	ShortlistRelaxTo  int     `mapstructure:"shortlist_relax_to"`
	ShortlistMinimum  int     `mapstructure:"shortlist_minimum"`
	DimensionRegistry string  `mapstructure:"dimension_registry"` // optional JSON file overriding the built-in library
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
