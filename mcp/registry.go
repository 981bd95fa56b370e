package mcp

import (
	"fmt"
	"sync"

	"github.com/bpowers/simple-mcp-server/tool"
)

// Registry holds the collection of tools exposed by a server. Tool names are
// unique; registration order is the order reported by tools/list. It is safe
// for concurrent use, though the server itself only reads it sequentially.
type Registry struct {
	mu          sync.Mutex
	tools       map[string]tool.Tool
	definitions map[string]ToolDefinition
	order       []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:       make(map[string]tool.Tool),
		definitions: make(map[string]ToolDefinition),
		order:       make([]string, 0),
	}
}

// Register adds a tool to the registry. If a tool with the same name already
// exists it is replaced, keeping its original position in the catalog.
// Returns an error if the tool is nil or has an empty name.
func (r *Registry) Register(t tool.Tool) error {
	if t == nil {
		return fmt.Errorf("register tool: nil tool")
	}
	name := t.Name()
	if name == "" {
		return fmt.Errorf("register tool: missing tool name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}

	r.tools[name] = t
	r.definitions[name] = ToolDefinition{
		Name:        name,
		Description: t.Description(),
		InputSchema: t.InputSchema(),
	}
	return nil
}

// Get retrieves a tool by name. Returns the tool and true if found,
// or nil and false if no tool with that name is registered.
func (r *Registry) Get(name string) (tool.Tool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tools[name]
	return t, ok
}

// Definitions returns the tool definitions for all registered tools
// in the order they were first registered. This is used by tools/list.
func (r *Registry) Definitions() []ToolDefinition {
	r.mu.Lock()
	defer r.mu.Unlock()

	defs := make([]ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		if def, ok := r.definitions[name]; ok {
			defs = append(defs, def)
		}
	}
	return defs
}
