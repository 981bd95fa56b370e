package mcp

import (
	"context"

	"github.com/bpowers/simple-mcp-server/tool"
)

type stubTool struct {
	name        string
	description string
	schema      map[string]any
	content     []tool.Content
	err         error
	calledWith  *map[string]any
}

func (s *stubTool) Name() string {
	return s.name
}

func (s *stubTool) Description() string {
	return s.description
}

func (s *stubTool) InputSchema() map[string]any {
	return s.schema
}

func (s *stubTool) Execute(_ context.Context, args map[string]any) ([]tool.Content, error) {
	if s.calledWith != nil {
		*s.calledWith = args
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.content, nil
}

var _ tool.Tool = (*stubTool)(nil)

// panicTool is a test tool that panics when called
type panicTool struct{}

func (panicTool) Name() string {
	return "PanicTool"
}

func (panicTool) Description() string {
	return "A tool that panics for testing"
}

func (panicTool) InputSchema() map[string]any {
	return map[string]any{"type": "object", "properties": map[string]any{}}
}

func (panicTool) Execute(_ context.Context, _ map[string]any) ([]tool.Content, error) {
	panic("intentional panic for testing")
}

var _ tool.Tool = (*panicTool)(nil)
