package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full process configuration, read from the environment once
// at startup and passed by reference into the services that need it. Nothing
// re-reads the environment after Load returns.
type Config struct {
	Port           string `env:"PORT,            default=8080"`
	Env            string `env:"ENV,             default=development"`
	LogLevel       string `env:"LOG_LEVEL,       default=info"`
	FrontendOrigin string `env:"FRONTEND_ORIGIN, default=http://localhost:5173"`

	JWT     JWTConfig
	Cookie  CookieConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Catalog CatalogConfig
}

type JWTConfig struct {
	Secret           string `env:"JWT_SECRET"`
	Issuer           string `env:"JWT_ISSUER,               default=playlog-api"`
	Audience         string `env:"JWT_AUDIENCE,             default=playlog-web"`
	AccessTTLMinutes int    `env:"ACCESS_TOKEN_TTL_MINUTES, default=15"`
	RefreshTTLDays   int    `env:"REFRESH_TOKEN_TTL_DAYS,   default=30"`
}

// CookieConfig controls the attributes of both session cookies. The strict
// production variant is SameSite=None with Secure=true; local development
// uses Lax without Secure so the cookies survive plain HTTP.
type CookieConfig struct {
	AccessName  string `env:"ACCESS_COOKIE_NAME,  default=playlog_access"`
	RefreshName string `env:"REFRESH_COOKIE_NAME, default=playlog_refresh"`
	Secure      bool   `env:"COOKIE_SECURE,       default=true"`
	SameSite    string `env:"COOKIE_SAMESITE,     default=none"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=playlog"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type CatalogConfig struct {
	BaseURL         string `env:"CATALOG_BASE_URL,          default=https://api.rawg.io/api"`
	APIKey          string `env:"CATALOG_API_KEY"`
	CacheTTLMinutes int    `env:"CATALOG_CACHE_TTL_MINUTES, default=60"`
}

// AccessTTL returns the access-token lifetime as a duration.
func (c JWTConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLMinutes) * time.Minute
}

// RefreshTTL returns the refresh-token lifetime as a duration.
func (c JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTTLDays) * 24 * time.Hour
}

// CacheTTL returns the catalog cache entry lifetime as a duration.
func (c CatalogConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
