package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and optionally a
// config file. Environment variables take precedence over values from
// config files. Returns a populated Config struct or an error if
// loading/validation fails.
//
// Precedence, lowest to highest: built-in defaults, an optional
// anki-mcp.yaml in the working directory, then ANKIMCP_-prefixed
// environment variables (ANKIMCP_SERVER_LOG_LEVEL,
// ANKIMCP_ANKI_CONNECT_URL, ...).
func Load() (*Config, error) {
	v := viper.New()

	// Defaults. Every key needs one so AutomaticEnv can see it during
	// Unmarshal.
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.transport", "stdio")
	v.SetDefault("server.http_addr", "127.0.0.1:8475")
	v.SetDefault("anki.connect_url", "http://127.0.0.1:8765")
	v.SetDefault("anki.note_type", "Japanese (recognition)")
	v.SetDefault("anki.default_deck", "Try! N3 Vocab")
	v.SetDefault("anki.request_timeout", "30s")

	// Optional config file in the working directory.
	v.SetConfigName("anki-mcp")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables with ANKIMCP_ prefix override everything.
	v.SetEnvPrefix("ANKIMCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks the loaded configuration against the struct's
// validate tags and translates failures into a readable error.
func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("config validation setup failed: %w", err)
	}

	var fields []string
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
}
