// Package logger configures the application's structured JSON logging
// and provides helpers for carrying request-scoped loggers through
// context.Context.
//
// All output goes to stderr: the MCP stdio transport owns stdout, and a
// single stray log line there would corrupt the protocol stream.
package logger
