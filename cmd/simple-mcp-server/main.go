// Command simple-mcp-server speaks a subset of MCP over line-delimited
// JSON-RPC on stdin/stdout. It exposes a single echo tool and exits 0 when
// its input reaches end of file.
package main

import (
	"context"
	"os"

	"github.com/bpowers/simple-mcp-server/examples/echotool"
	"github.com/bpowers/simple-mcp-server/internal/logging"
	"github.com/bpowers/simple-mcp-server/mcp"
)

const (
	serverName    = "simple-mcp-server"
	serverVersion = "0.1.0"
)

func main() {
	logger := logging.Logger()

	registry := mcp.NewRegistry()
	if err := registry.Register(echotool.New()); err != nil {
		logger.Error("registering echo tool", "error", err)
		os.Exit(1)
	}

	server, err := mcp.NewServer(registry, mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	})
	if err != nil {
		logger.Error("creating server", "error", err)
		os.Exit(1)
	}

	logger.Info("starting mcp server", "name", serverName, "version", serverVersion)
	if err := server.Serve(context.Background(), os.Stdin, os.Stdout); err != nil {
		logger.Error("mcp server stopped with error", "error", err)
		os.Exit(1)
	}
}
