package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/bpowers/simple-mcp-server/internal/logging"
	"github.com/bpowers/simple-mcp-server/tool"
)

const (
	errParse          = -32700
	errInvalidRequest = -32600
	errMethodNotFound = -32601
	errInvalidParams  = -32602
	errInternal       = -32603
)

type Option func(*Server)

// Server dispatches line-delimited JSON-RPC messages to MCP method handlers.
// It holds no per-request state; all processing is strictly sequential.
type Server struct {
	registry        *Registry
	info            Implementation
	protocolVersion string
	logger          *slog.Logger
}

func NewServer(registry *Registry, info Implementation, opts ...Option) (*Server, error) {
	if registry == nil {
		return nil, fmt.Errorf("new server: registry is required")
	}
	if info.Name == "" {
		return nil, fmt.Errorf("new server: server name is required")
	}
	if info.Version == "" {
		return nil, fmt.Errorf("new server: server version is required")
	}

	server := &Server{
		registry:        registry,
		info:            info,
		protocolVersion: DefaultProtocolVersion,
		logger:          logging.Logger(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(server)
		}
	}

	if server.protocolVersion == "" {
		return nil, fmt.Errorf("new server: protocol version is required")
	}

	return server, nil
}

// WithProtocolVersion overrides the protocol version reported when the
// client does not supply one during initialize.
func WithProtocolVersion(version string) Option {
	return func(server *Server) {
		server.protocolVersion = version
	}
}

// WithLogger overrides the diagnostic logger. Logging goes to stderr and is
// never part of the protocol stream.
func WithLogger(logger *slog.Logger) Option {
	return func(server *Server) {
		if logger != nil {
			server.logger = logger
		}
	}
}

// Serve reads JSON-RPC messages from in and writes responses to out until
// end of input, which returns nil. Malformed input produces an error
// response on out and the loop continues; only transport failures and
// context cancellation terminate Serve with an error.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	if s == nil {
		return fmt.Errorf("serve: server is nil")
	}
	if in == nil {
		return fmt.Errorf("serve: input reader is nil")
	}
	if out == nil {
		return fmt.Errorf("serve: output writer is nil")
	}

	codec := newLineCodec(in, out)

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("serve: %w", ctx.Err())
		default:
		}

		line, err := codec.next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("serve: reading input: %w", err)
		}

		resp := s.handleLine(ctx, line)
		if resp == nil {
			continue
		}
		if err := codec.write(resp); err != nil {
			return fmt.Errorf("serve: writing response: %w", err)
		}
	}
}

// handleLine processes a single framed message and returns the response to
// emit, or nil when the message is a notification.
func (s *Server) handleLine(ctx context.Context, line []byte) *Response {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		if !json.Valid(line) {
			s.logger.Warn("dropping unparseable input line", "error", err)
			return errorResponse(nil, errParse, "Parse error")
		}
		// Valid JSON that is not a request object.
		return errorResponse(nil, errInvalidRequest, "Invalid Request")
	}

	if req.JSONRPC != "2.0" || req.Method == "" {
		return errorResponse(legalID(req.ID), errInvalidRequest, "Invalid Request")
	}

	switch req.Method {
	case "initialized", "notifications/initialized":
		// Client handshake acknowledgement; silent even when an id is present.
		return nil
	case "cancelled":
		// Tools run synchronously, so there is nothing to cancel.
		return nil
	}

	if isNotification(req.ID) {
		s.logger.Debug("dropping notification", "method", req.Method)
		return nil
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "tools/list":
		return resultResponse(req.ID, ListToolsResult{Tools: s.registry.Definitions()})
	case "resources/list":
		return resultResponse(req.ID, ListResourcesResult{Resources: []any{}})
	case "prompts/list":
		return resultResponse(req.ID, ListPromptsResult{Prompts: []any{}})
	case "tools/call":
		return s.handleCallTool(ctx, req)
	default:
		return errorResponse(req.ID, errMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
	}
}

// handleInitialize reports server identity and capabilities. The client's
// protocolVersion is echoed back verbatim when it supplies one; strict
// version negotiation is deliberately traded for interoperability with a
// range of clients.
func (s *Server) handleInitialize(req Request) *Response {
	protocolVersion := s.protocolVersion

	var params struct {
		ProtocolVersion any `json:"protocolVersion"`
	}
	_ = json.Unmarshal(req.Params, &params)
	if v, ok := params.ProtocolVersion.(string); ok && v != "" {
		protocolVersion = v
	}

	result := InitializeResult{
		ProtocolVersion: protocolVersion,
		ServerInfo:      s.info,
		Capabilities: ServerCapabilities{
			Tools: ToolCapabilities{},
		},
	}
	return resultResponse(req.ID, result)
}

func (s *Server) handleCallTool(ctx context.Context, req Request) (resp *Response) {
	var params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if !isObject(req.Params) || json.Unmarshal(req.Params, &params) != nil {
		return errorResponse(req.ID, errInvalidParams, "Invalid parameters")
	}
	if params.Name == "" || params.Arguments == nil {
		return errorResponse(req.ID, errInvalidParams, "Invalid parameters: missing tool name or arguments")
	}

	t, ok := s.registry.Get(params.Name)
	if !ok {
		return errorResponse(req.ID, errMethodNotFound, fmt.Sprintf("Method not found: tool '%s' is not available", params.Name))
	}

	for _, field := range requiredFields(t.InputSchema()) {
		if _, present := params.Arguments[field]; !present {
			return errorResponse(req.ID, errInvalidParams, fmt.Sprintf("Missing required parameter: '%s'", field))
		}
	}

	// Recover from panics in tool execution to prevent server crash.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tool panicked", "tool", params.Name, "panic", r)
			resp = errorResponse(req.ID, errInternal, "Internal error during tool execution")
		}
	}()

	content, err := t.Execute(ctx, params.Arguments)
	if err != nil {
		s.logger.Warn("tool execution failed", "tool", params.Name, "error", err)
		return errorResponse(req.ID, errInternal, "Internal error during tool execution")
	}
	if content == nil {
		content = []tool.Content{}
	}

	return resultResponse(req.ID, CallToolResult{Content: content})
}

// requiredFields extracts the top-level "required" list from a schema in
// wire form. Both native string slices and the generic value tree produced
// by JSON decoding are accepted; non-string entries are ignored.
func requiredFields(schema map[string]any) []string {
	if schema == nil {
		return nil
	}
	switch required := schema["required"].(type) {
	case []string:
		return required
	case []any:
		fields := make([]string, 0, len(required))
		for _, entry := range required {
			if name, ok := entry.(string); ok {
				fields = append(fields, name)
			}
		}
		return fields
	default:
		return nil
	}
}

// isNotification reports whether a request id marks the message as a
// notification. Both an absent id and an explicit null are treated as
// "no response expected".
func isNotification(id json.RawMessage) bool {
	if len(id) == 0 {
		return true
	}
	return bytes.Equal(bytes.TrimSpace(id), []byte("null"))
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func resultResponse(id json.RawMessage, result any) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      requestID(id),
		Result:  result,
	}
}

func errorResponse(id json.RawMessage, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      requestID(id),
		Error: &Error{
			Code:    code,
			Message: message,
		},
	}
}

func requestID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}

// legalID echoes a request id only when it is one of the types JSON-RPC
// allows for ids (string, number, or null); anything else becomes null.
func legalID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(id, &v); err != nil {
		return nil
	}
	switch v.(type) {
	case string, float64, nil:
		return id
	default:
		return nil
	}
}
