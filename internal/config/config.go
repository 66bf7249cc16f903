package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Anki   AnkiConfig   `mapstructure:"anki"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	// LogLevel controls the slog level of the JSON logger.
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// Transport selects how the MCP server is exposed: "stdio" for the
	// standard launcher-driven transport, "http" for the streamable
	// HTTP transport.
	Transport string `mapstructure:"transport" validate:"required,oneof=stdio http"`

	// HTTPAddr is the listen address used when Transport is "http".
	HTTPAddr string `mapstructure:"http_addr" validate:"required,hostname_port"`
}

// AnkiConfig contains the settings for reaching the host application's
// collection through AnkiConnect.
type AnkiConfig struct {
	// ConnectURL is the AnkiConnect endpoint of the running Anki
	// desktop application.
	ConnectURL string `mapstructure:"connect_url" validate:"required,url"`

	// NoteType is the note type (model) the vocabulary import pipeline
	// targets.
	NoteType string `mapstructure:"note_type" validate:"required"`

	// DefaultDeck is the deck used when a tool call omits one.
	DefaultDeck string `mapstructure:"default_deck" validate:"required"`

	// RequestTimeout bounds every AnkiConnect HTTP call.
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"required,min=1s,max=5m"`
}
