// Package config defines the application configuration structure and
// loading logic. Values come from defaults, an optional config file and
// ANKIMCP_-prefixed environment variables, with the environment taking
// precedence, and are validated before use.
package config
