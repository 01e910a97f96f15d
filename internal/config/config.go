package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Editor    EditorConfig    `yaml:"editor"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Client    ClientConfig    `yaml:"client"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Cleanup   CleanupConfig   `yaml:"cleanup"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Client-Token,X-Request-Id"`
	ExposedHeaders   string `yaml:"exposed_headers"   env:"CORS_EXPOSED_HEADERS"   env-default:"X-Client-Token,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`

	// StatementTimeout caps every query; a stuck autosave fails and retries.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"15s"`
	ApplicationName  string        `yaml:"application_name"  env:"DATABASE_APPLICATION_NAME"  env-default:"writemate-api"`
}

// RedisConfig holds the connection to the store that keeps each device's
// session id.
type RedisConfig struct {
	Addr      string `yaml:"addr"       env:"REDIS_ADDR"       env-default:"localhost:6379"`
	Password  string `yaml:"password"   env:"REDIS_PASSWORD"`
	DB        int    `yaml:"db"         env:"REDIS_DB"         env-default:"0"`
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"writemate"`
}

// AnalysisConfig points at the external feedback API.
type AnalysisConfig struct {
	BaseURL string        `yaml:"base_url" env:"ANALYSIS_BASE_URL" env-default:"http://localhost:8000"`
	Timeout time.Duration `yaml:"timeout"  env:"ANALYSIS_TIMEOUT"  env-default:"60s"`
}

// EditorConfig tunes the editing session.
type EditorConfig struct {
	SaveDebounce    time.Duration `yaml:"save_debounce"     env:"EDITOR_SAVE_DEBOUNCE"     env-default:"2s"`
	MinAnalyzeWords int           `yaml:"min_analyze_words" env:"EDITOR_MIN_ANALYZE_WORDS" env-default:"10"`
	SaveRetryDelay  time.Duration `yaml:"save_retry_delay"  env:"EDITOR_SAVE_RETRY_DELAY"  env-default:"5s"`
	MaxSaveRetries  int           `yaml:"max_save_retries"  env:"EDITOR_MAX_SAVE_RETRIES"  env-default:"3"`
}

// WorkspaceConfig controls how long idle per-device workspaces are kept.
type WorkspaceConfig struct {
	IdleTTL       time.Duration `yaml:"idle_ttl"       env:"WORKSPACE_IDLE_TTL"       env-default:"30m"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"WORKSPACE_SWEEP_INTERVAL" env-default:"1m"`
}

// ClientConfig holds settings for the signed device token.
type ClientConfig struct {
	TokenSecret string        `yaml:"token_secret" env:"CLIENT_TOKEN_SECRET" env-required:"true"`
	TokenIssuer string        `yaml:"token_issuer" env:"CLIENT_TOKEN_ISSUER" env-default:"writemate"`
	TokenTTL    time.Duration `yaml:"token_ttl"    env:"CLIENT_TOKEN_TTL"    env-default:"8760h"`
	CookieName  string        `yaml:"cookie_name"  env:"CLIENT_COOKIE_NAME"  env-default:"wm_client"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig limits the expensive analysis endpoints per client.
type RateLimitConfig struct {
	AnalyzePerMinute int           `yaml:"analyze_per_minute" env:"RATE_LIMIT_ANALYZE_PER_MINUTE" env-default:"10"`
	CleanupInterval  time.Duration `yaml:"cleanup_interval"   env:"RATE_LIMIT_CLEANUP_INTERVAL"   env-default:"5m"`
}

// CleanupConfig is used by the cleanup command.
type CleanupConfig struct {
	DismissedRetentionDays int `yaml:"dismissed_retention_days" env:"CLEANUP_DISMISSED_RETENTION_DAYS" env-default:"30"`
}
