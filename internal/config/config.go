package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all process-wide settings. It is built once at startup and
// passed by value to every component constructor; nothing mutates it after Load.
type Config struct {
	AppPort      string `mapstructure:"app_port" validate:"required"`
	Database     string `mapstructure:"database" validate:"required,oneof=sqlite postgres"`
	DatabaseHost string `mapstructure:"database_host"`
	DatabasePort int    `mapstructure:"database_port" validate:"gte=0"`
	DatabaseName string `mapstructure:"database_name" validate:"required"`
	DatabasePath string `mapstructure:"database_path"`
	DatabaseUser string `mapstructure:"database_user"`
	DatabasePass string `mapstructure:"database_pass"`
	RabbitMQURL  string `mapstructure:"rabbitmq_url"`
	Testing      bool   `mapstructure:"testing"`
	// BootstrapKey seeds an initial API key when the api_keys partition is
	// empty, in the form "key:user". Ignored when empty.
	BootstrapKey string `mapstructure:"bootstrap_key"`
}

// Load reads configuration from an optional stash.yaml file in the working
// directory, overridden by environment variables. Typed defaults cover a
// local sqlite setup so the server starts with no config at all.
func Load() (Config, error) {
	v := viper.New()
	// Every field needs a default registered here; AutomaticEnv only
	// resolves keys viper already knows about.
	v.SetDefault("app_port", ":8080")
	v.SetDefault("database", "sqlite")
	v.SetDefault("database_host", "localhost")
	v.SetDefault("database_port", 5432)
	v.SetDefault("database_name", "stash")
	v.SetDefault("database_path", "stash.db")
	v.SetDefault("database_user", "")
	v.SetDefault("database_pass", "")
	v.SetDefault("rabbitmq_url", "")
	v.SetDefault("testing", false)
	v.SetDefault("bootstrap_key", "")

	v.SetConfigName("stash")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; a malformed one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("config file is not valid: %w", err)
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Database = strings.ToLower(cfg.Database)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
