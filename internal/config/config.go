package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaxImageBytes es el tamaño máximo de imagen de producto (5 MiB).
	DefaultMaxImageBytes int64 = 5 << 20
	// multipartOverhead cubre boundaries y campos de texto del form.
	multipartOverhead int64 = 1 << 20
	// minSecretBytes: HMAC-SHA256 requiere al menos 256 bits de clave.
	minSecretBytes = 32
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		// Zona horaria usada en el timestamp de los errores (ISO-8601 con offset).
		Timezone string `yaml:"timezone"`
		// MaxBodyBytes limita el cuerpo de cualquier request (413 si se excede).
		MaxBodyBytes  int64  `yaml:"max_body_bytes"`
		MaxImageBytes int64  `yaml:"max_image_bytes"`
		ReadTimeout   string `yaml:"read_timeout"`
		WriteTimeout  string `yaml:"write_timeout"`
		// TrustProxy: el servicio corre detrás de un proxy propio que fija X-Forwarded-Proto.
		TrustProxy bool   `yaml:"trust_proxy"`
		HSTSMaxAge string `yaml:"hsts_max_age"` // "0" desactiva HSTS
	} `yaml:"server"`

	Docs struct {
		// Enabled expone /v3/api-docs y /swagger-ui.
		Enabled *bool `yaml:"enabled"`
	} `yaml:"docs"`

	Storage struct {
		Driver   string `yaml:"driver"` // memory | postgres
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MaxIdleConns    int    `yaml:"max_idle_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis | none
		TTL   string `yaml:"ttl"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	JWT struct {
		Issuer string `yaml:"issuer"`
		// Secret es la clave HMAC. Nunca se loguea ni se serializa en errores.
		Secret string `yaml:"secret"`
		TTL    string `yaml:"ttl"`
	} `yaml:"jwt"`
}

// Default devuelve una configuración con los defaults aplicados y sin archivo.
func Default() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

// Load lee el YAML (opcional si path == ""), aplica defaults, overrides por env y valida.
func Load(path string) (*Config, error) {
	var c Config
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	c.applyDefaults()
	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	if c.Server.Timezone == "" {
		c.Server.Timezone = "America/Sao_Paulo"
	}
	if c.Server.MaxImageBytes == 0 {
		c.Server.MaxImageBytes = DefaultMaxImageBytes
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = c.Server.MaxImageBytes + multipartOverhead
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "30s"
	}
	if c.Server.HSTSMaxAge == "" {
		c.Server.HSTSMaxAge = "4320h"
	}
	if c.Docs.Enabled == nil {
		on := true
		c.Docs.Enabled = &on
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = "2m"
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "infoeste"
	}
	if c.JWT.TTL == "" {
		c.JWT.TTL = "1h"
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "infoeste"
	}
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvInt64(key string) (int64, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}
func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}
	if v, ok := getEnvStr("SERVER_TIMEZONE"); ok {
		c.Server.Timezone = v
	}
	if v, ok := getEnvInt64("SERVER_MAX_BODY_BYTES"); ok {
		c.Server.MaxBodyBytes = v
	}
	if v, ok := getEnvInt64("SERVER_MAX_IMAGE_BYTES"); ok {
		c.Server.MaxImageBytes = v
	}
	if v, ok := getEnvBool("SERVER_TRUST_PROXY"); ok {
		c.Server.TrustProxy = v
	}
	if v, ok := getEnvStr("SERVER_HSTS_MAX_AGE"); ok {
		c.Server.HSTSMaxAge = v
	}
	if v, ok := getEnvBool("DOCS_ENABLED"); ok {
		c.Docs.Enabled = &v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_OPEN_CONNS"); ok {
		c.Storage.Postgres.MaxOpenConns = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_IDLE_CONNS"); ok {
		c.Storage.Postgres.MaxIdleConns = v
	}
	if v, ok := getEnvStr("POSTGRES_CONN_MAX_LIFETIME"); ok {
		c.Storage.Postgres.ConnMaxLifetime = v
	}

	// CACHE
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = strings.ToLower(v)
	}
	if v, ok := getEnvStr("CACHE_TTL"); ok {
		c.Cache.TTL = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvStr("REDIS_PASSWORD"); ok {
		c.Cache.Redis.Password = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Cache.Redis.Prefix = v
	}

	// JWT
	if v, ok := getEnvStr("JWT_ISSUER"); ok {
		c.JWT.Issuer = v
	}
	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvStr("JWT_TTL"); ok {
		c.JWT.TTL = v
	}
}

// Validate verifica los valores críticos. Un error aborta el arranque.
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < minSecretBytes {
		return fmt.Errorf("config: jwt.secret must be at least %d bytes", minSecretBytes)
	}
	ttl, err := time.ParseDuration(c.JWT.TTL)
	if err != nil {
		return fmt.Errorf("config: jwt.ttl: %w", err)
	}
	if ttl <= 0 {
		return fmt.Errorf("config: jwt.ttl must be positive")
	}
	for name, v := range map[string]string{
		"cache.ttl":                  c.Cache.TTL,
		"server.read_timeout":        c.Server.ReadTimeout,
		"server.write_timeout":       c.Server.WriteTimeout,
		"server.hsts_max_age":        c.Server.HSTSMaxAge,
		"postgres.conn_max_lifetime": c.Storage.Postgres.ConnMaxLifetime,
	} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	switch c.Storage.Driver {
	case "memory":
	case "postgres", "pg":
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("config: storage.dsn is required for driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("config: unknown storage.driver %q", c.Storage.Driver)
	}
	switch c.Cache.Kind {
	case "memory", "none":
	case "redis":
		if strings.TrimSpace(c.Cache.Redis.Addr) == "" {
			return fmt.Errorf("config: cache.redis.addr is required for cache kind redis")
		}
	default:
		return fmt.Errorf("config: unknown cache.kind %q", c.Cache.Kind)
	}
	if c.Server.MaxImageBytes <= 0 || c.Server.MaxBodyBytes < c.Server.MaxImageBytes {
		return fmt.Errorf("config: server.max_body_bytes must be >= server.max_image_bytes > 0")
	}
	return nil
}

// TokenTTL devuelve el TTL de los tokens ya parseado (Validate garantiza el formato).
func (c *Config) TokenTTL() time.Duration {
	d, _ := time.ParseDuration(c.JWT.TTL)
	return d
}

// CacheTTL devuelve el TTL del cache de lookups.
func (c *Config) CacheTTL() time.Duration {
	d, _ := time.ParseDuration(c.Cache.TTL)
	return d
}

// HSTSMaxAge devuelve el max-age de HSTS; 0 si está desactivado.
func (c *Config) HSTSMaxAge() time.Duration {
	d, _ := time.ParseDuration(c.Server.HSTSMaxAge)
	return d
}

// DocsEnabled indica si se sirve la documentación de la API.
func (c *Config) DocsEnabled() bool {
	return c.Docs.Enabled == nil || *c.Docs.Enabled
}

// Duration parsea un string de duración con fallback.
func Duration(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil && d > 0 {
		return d
	}
	return fallback
}

// Location resuelve la zona horaria de los timestamps; UTC si no existe.
func (c *Config) Location() *time.Location {
	if loc, err := time.LoadLocation(c.Server.Timezone); err == nil {
		return loc
	}
	return time.UTC
}

// Redacted devuelve una copia sin secretos, apta para imprimir.
func (c *Config) Redacted() Config {
	out := *c
	if out.JWT.Secret != "" {
		out.JWT.Secret = "[redacted]"
	}
	if out.Cache.Redis.Password != "" {
		out.Cache.Redis.Password = "[redacted]"
	}
	if out.Storage.DSN != "" {
		out.Storage.DSN = "[redacted]"
	}
	return out
}
