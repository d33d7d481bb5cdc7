// Package mcp exposes screening conversations to MCP clients.
//
// Tools: start_screening, send_message, reset_screening and candidate_summary.
// Conversation state is kept in a session.Manager between tool calls.
package mcp
