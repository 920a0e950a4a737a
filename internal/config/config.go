package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Comprobante store
	DataDir      string `mapstructure:"DATA_DIR"`      // file backend root
	StoreBackend string `mapstructure:"STORE_BACKEND"` // file | redis
	RedisURL     string `mapstructure:"REDIS_URL"`

	// Remote pymes backend (empresas / productos / usuarios)
	APIBaseURL string `mapstructure:"API_BASE_URL"`

	// Auth — the console validates the same tokens the remote backend issues
	JWTSecret string `mapstructure:"JWT_SECRET"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8090)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATA_DIR", "/tmp/facturador/data")
	viper.SetDefault("STORE_BACKEND", "file")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("API_BASE_URL", "http://localhost:8080")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
