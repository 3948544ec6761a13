package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type Config struct {
	Env         string
	Port        int
	CollegeName string

	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
	Lookup   LookupConfig
	Portal   PortalConfig
	Export   ExportConfig
}

type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// LookupConfig tunes the public result lookup endpoint.
type LookupConfig struct {
	CacheEnabled  bool
	CacheTTL      time.Duration
	RatePerMinute int
	RateBurst     int
}

// PortalConfig configures the server-rendered lookup page.
type PortalConfig struct {
	Port          int
	LookupBaseURL string
	LookupTimeout time.Duration
	Timezone      string
	// CSRFKey enables form tokens when set. It must be 32 bytes.
	CSRFKey string
}

// ExportConfig locates files written by the admin CLI.
type ExportConfig struct {
	Dir string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.CollegeName = v.GetString("COLLEGE_NAME")

	cfg.Database = DatabaseConfig{
		Driver:       strings.ToLower(v.GetString("DB_DRIVER")),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Lookup = LookupConfig{
		CacheEnabled:  v.GetBool("ENABLE_RESULT_CACHE"),
		CacheTTL:      parseDuration(v.GetString("RESULT_CACHE_TTL"), 10*time.Minute),
		RatePerMinute: v.GetInt("LOOKUP_RATE_LIMIT"),
		RateBurst:     v.GetInt("LOOKUP_RATE_BURST"),
	}

	cfg.Portal = PortalConfig{
		Port:          v.GetInt("PORTAL_PORT"),
		LookupBaseURL: strings.TrimRight(v.GetString("PORTAL_LOOKUP_BASE_URL"), "/"),
		LookupTimeout: parseDuration(v.GetString("PORTAL_LOOKUP_TIMEOUT"), 10*time.Second),
		Timezone:      v.GetString("PORTAL_TIMEZONE"),
		CSRFKey:       v.GetString("PORTAL_CSRF_KEY"),
	}

	cfg.Export = ExportConfig{Dir: v.GetString("EXPORT_DIR")}

	if cfg.Portal.CSRFKey != "" && len(cfg.Portal.CSRFKey) != 32 {
		return nil, errors.New("PORTAL_CSRF_KEY must be exactly 32 bytes")
	}

	if cfg.Database.Driver != DriverPostgres && cfg.Database.Driver != DriverMySQL {
		return nil, errors.New("DB_DRIVER must be postgres or mysql")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("COLLEGE_NAME", "ABC Engineering College")

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "college_results")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_RESULT_CACHE", false)
	v.SetDefault("RESULT_CACHE_TTL", "10m")
	v.SetDefault("LOOKUP_RATE_LIMIT", 30)
	v.SetDefault("LOOKUP_RATE_BURST", 10)

	v.SetDefault("PORTAL_PORT", 5000)
	v.SetDefault("PORTAL_LOOKUP_BASE_URL", "http://localhost:8080")
	v.SetDefault("PORTAL_LOOKUP_TIMEOUT", "10s")
	v.SetDefault("PORTAL_TIMEZONE", "Local")
	v.SetDefault("PORTAL_CSRF_KEY", "")

	v.SetDefault("EXPORT_DIR", ".")
}

// Location resolves the portal timezone, falling back to the process local zone.
func (p PortalConfig) Location() *time.Location {
	if p.Timezone == "" || p.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
