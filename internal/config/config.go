package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the API needs at startup
type Config struct {
	Server   ServerConfig   `mapstructure:",squash"`
	Database DatabaseConfig `mapstructure:",squash"`
	Redis    RedisConfig    `mapstructure:",squash"`
}

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	Addr            string        `mapstructure:"server_addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds the PostgreSQL connection settings
type DatabaseConfig struct {
	Host      string `mapstructure:"db_host"`
	Port      string `mapstructure:"db_port"`
	User      string `mapstructure:"db_user"`
	Password  string `mapstructure:"db_password"`
	Name      string `mapstructure:"db_name"`
	SSLMode   string `mapstructure:"db_sslmode"`
	Bootstrap bool   `mapstructure:"db_bootstrap"` // create tables on startup
}

// RedisConfig holds the category cache settings. An empty Addr disables the cache.
type RedisConfig struct {
	Addr     string        `mapstructure:"redis_addr"`
	Password string        `mapstructure:"redis_password"`
	DB       int           `mapstructure:"redis_db"`
	CacheTTL time.Duration `mapstructure:"category_cache_ttl"`
}

// Enabled reports whether a redis address was configured
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// DatabaseURL renders the connection string for pgxpool
func (c DatabaseConfig) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + c.Port,
		Path:   "/" + c.Name,
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("shutdown_timeout", 10*time.Second)

	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "trivia")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_bootstrap", false)

	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("category_cache_ttl", 5*time.Minute)
}

// Load reads the configuration from the environment. Any of envFiles that
// exist are loaded first without overriding variables already set; with no
// arguments ".env" is tried.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
