// Package api exposes the collection to MCP clients: tools for mutating
// the collection, resources for browsing it, and prompts that guide a
// client through common study workflows.
//
// Handlers log full error details and return sanitized messages to the
// client via MapErrorToSafeMessage. Tool failures become MCP tool-result
// errors rather than protocol errors, so the client's model can read and
// react to them.
package api
