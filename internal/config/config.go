package config

import (
	"strings"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort             string   `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL          string   `env:"DATABASE_URL,required,notEmpty"`
	DBAutoMigrate        bool     `env:"DB_AUTO_MIGRATE" envDefault:"true"`
	DBMaxConns           int32    `env:"DB_MAX_CONNS" envDefault:"10"`
	JWTSecret            string   `env:"JWT_SECRET"`
	JWTAccessTTLMinutes  int      `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`
	JWTRefreshTTLMinutes int      `env:"JWT_REFRESH_TTL_MINUTES" envDefault:"43200"`
	RedisAddr            string   `env:"REDIS_ADDR"`
	RedisPassword        string   `env:"REDIS_PASSWORD"`
	RedisDB              int      `env:"REDIS_DB" envDefault:"0"`
	CORSAllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SQLitePath devuelve la ruta del archivo cuando DATABASE_URL apunta a SQLite.
func (c *Config) SQLitePath() (string, bool) {
	url := strings.TrimSpace(c.DatabaseURL)
	switch {
	case strings.HasPrefix(url, "sqlite://"):
		return strings.TrimPrefix(url, "sqlite://"), true
	case strings.HasPrefix(url, "sqlite:"):
		return strings.TrimPrefix(url, "sqlite:"), true
	case strings.HasPrefix(url, "file:"):
		return url, true
	}
	return "", false
}
