// Package service contains the application services sitting between the
// MCP surface and the collection stores. Each service validates input,
// orchestrates store calls, and translates store sentinel errors into the
// service error taxonomy so handlers can map them to safe messages.
package service
