// Package tool defines the abstraction for callable tools exposed over MCP.
//
// A Tool is a named unit of work with a human-readable description and a JSON
// Schema describing its input. Tools are registered with an [mcp.Registry] at
// startup and invoked by the server's tools/call handler. Execution receives
// the decoded arguments object and returns one or more content items, or an
// error when the arguments are unusable.
package tool

import "context"

// Content is a single item of tool output. Only the "text" kind is produced
// by the tools in this repository; other kinds may appear in the future.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Text builds a text content item.
func Text(s string) Content {
	return Content{Type: "text", Text: s}
}

// Tool is a callable unit exposed to MCP clients. Implementations must be
// safe to describe (Name/Description/InputSchema) at any time; Execute is
// only ever called sequentially by the server loop.
type Tool interface {
	// Name returns the tool's unique name.
	Name() string
	// Description returns a short human-readable description.
	Description() string
	// InputSchema returns the tool's input schema as a JSON Schema fragment
	// in wire form. The server interprets only the top-level "required" list.
	InputSchema() map[string]any
	// Execute runs the tool with the decoded arguments object.
	Execute(ctx context.Context, args map[string]any) ([]Content, error)
}

// Func adapts a plain function plus static metadata into a Tool.
type Func struct {
	ToolName        string
	ToolDescription string
	Schema          map[string]any
	Fn              func(ctx context.Context, args map[string]any) ([]Content, error)
}

func (f *Func) Name() string { return f.ToolName }

func (f *Func) Description() string { return f.ToolDescription }

func (f *Func) InputSchema() map[string]any { return f.Schema }

func (f *Func) Execute(ctx context.Context, args map[string]any) ([]Content, error) {
	return f.Fn(ctx, args)
}

var _ Tool = (*Func)(nil)
