package config

import (
	"fmt"
	"net/url"

	"github.com/spf13/viper"
)

// Config groups the application configuration, read from the environment
// via Viper. A .env file (if present) is loaded by the entrypoint first.
type Config struct {
	App   AppConfig
	DB    DBConfig
	JWT   JWTConfig
	Stock StockConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env  string // development, production
	Name string
	Port string
}

// DBConfig holds PostgreSQL settings. If DatabaseURL is set it is used as
// the full connection string and the individual fields are ignored.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	Issuer          string
}

// StockConfig holds behavior flags for the stock engine.
type StockConfig struct {
	// StrictDelete rejects stock-in deletions and shrinking edits that
	// would drive a product's quantity negative. Off by default to keep
	// the historical out-of-order-deletion behavior.
	StrictDelete bool
}

// ConnectionString returns the DSN to use: DatabaseURL if set, otherwise
// one built from the individual fields.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// Load reads configuration from the environment with sane defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "stock-tracker")
	v.SetDefault("PORT", "3000")

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "stock_tracker")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRATION_HOURS", 24)
	v.SetDefault("JWT_ISSUER", "go-stock-tracker")

	v.SetDefault("STOCK_STRICT_DELETE", false)

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
			Port: v.GetString("PORT"),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:          v.GetString("JWT_SECRET"),
			ExpirationHours: v.GetInt("JWT_EXPIRATION_HOURS"),
			Issuer:          v.GetString("JWT_ISSUER"),
		},
		Stock: StockConfig{
			StrictDelete: v.GetBool("STOCK_STRICT_DELETE"),
		},
	}

	if cfg.JWT.Secret == "" {
		if cfg.App.Env == "production" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWT.Secret = "dev-secret-change-me"
	}

	return cfg, nil
}
