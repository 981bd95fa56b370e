// Package mcp implements a minimal Model Context Protocol (MCP) server over
// line-delimited JSON-RPC 2.0.
//
// MCP is a protocol for exposing tools to LLM-powered applications, enabling
// AI assistants to interact with external systems through a standardized
// interface. A host process spawns the server as a child, writes one JSON-RPC
// request per line to its standard input, and reads one response per line
// from its standard output.
//
// # Basic Usage
//
// Create a registry, register tools that implement [tool.Tool], then create
// and run a server:
//
//	registry := mcp.NewRegistry()
//	registry.Register(echotool.New())
//
//	server, err := mcp.NewServer(registry, mcp.Implementation{
//	    Name:    "simple-mcp-server",
//	    Version: "0.1.0",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Serve over stdio (typical for MCP)
//	if err := server.Serve(ctx, os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
//
// # Protocol Details
//
// This implementation supports the following MCP methods:
//   - initialize: Handshake and capability exchange
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool
//   - resources/list, prompts/list: Empty catalogs
//   - initialized, notifications/initialized, cancelled: Acknowledged silently
//
// Messages are framed as exactly one JSON object per newline-terminated line.
// Blank input lines are skipped; a line that is not valid JSON produces a
// -32700 error response and the loop continues.
package mcp

import (
	"encoding/json"

	"github.com/bpowers/simple-mcp-server/tool"
)

// DefaultProtocolVersion is the protocol version reported when the client
// does not supply one during initialize.
const DefaultProtocolVersion = "2025-03-08"

// Request represents a JSON-RPC 2.0 request message.
// The ID field is absent (or null) for notifications that don't expect a response.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitzero"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitzero"`
}

// Response represents a JSON-RPC 2.0 response message.
// Either Result or Error will be set, but not both. The ID echoes the
// request's id verbatim, or null when the request's id was unknowable.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitzero"`
	Error   *Error          `json:"error,omitzero"`
}

// Error represents a JSON-RPC 2.0 error object.
// Codes follow the JSON-RPC specification (-32700 to -32603).
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Implementation identifies an MCP server or client implementation.
type Implementation struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ToolDefinition describes a tool's interface as returned by tools/list.
// InputSchema is the tool's JSON Schema fragment in wire form.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ToolCapabilities describes the server's tool-related capabilities.
type ToolCapabilities struct{}

// ServerCapabilities describes what features the server supports.
// Only tool support is declared.
type ServerCapabilities struct {
	Tools ToolCapabilities `json:"tools"`
}

// InitializeResult is returned by the initialize method during handshake.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	ServerInfo      Implementation     `json:"serverInfo"`
	Capabilities    ServerCapabilities `json:"capabilities"`
}

// ListToolsResult is returned by the tools/list method, in registration order.
type ListToolsResult struct {
	Tools []ToolDefinition `json:"tools"`
}

// ListResourcesResult is returned by the resources/list method.
// This server hosts no resources; the catalog is always empty.
type ListResourcesResult struct {
	Resources []any `json:"resources"`
}

// ListPromptsResult is returned by the prompts/list method.
// This server hosts no prompts; the catalog is always empty.
type ListPromptsResult struct {
	Prompts []any `json:"prompts"`
}

// CallToolResult is returned by the tools/call method. Content always
// serializes as an array, even for a single item.
type CallToolResult struct {
	Content []tool.Content `json:"content"`
}
