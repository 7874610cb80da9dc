// Package mcp exposes the equipment-fitting workflow as MCP tools so
// agent clients can drive fittings over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arkavale/gearforge/internal/fitting/detector"
	"github.com/arkavale/gearforge/internal/fitting/detector/httpdetector"
	"github.com/arkavale/gearforge/internal/fitting/scale"
	"github.com/arkavale/gearforge/internal/fitting/store"
	"github.com/arkavale/gearforge/internal/fitting/viewer"
	"github.com/arkavale/gearforge/internal/fitting/viewer/headless"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "GearForge Fitting MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Config configures the MCP server.
type Config struct {
	DetectorEndpoint string
	ScaleScriptPath  string
	DetectDebug      bool

	// Viewer overrides the default headless viewer; tests inject fakes here.
	Viewer viewer.Viewer
}

// Server hosts the MCP server over an in-process fitting store.
type Server struct {
	mcpServer *mcp.Server
	store     *store.Store
	viewer    viewer.Viewer
}

// New creates a configured MCP server backed by a fresh fitting store.
func New(cfg Config) (*Server, error) {
	heights := scale.DefaultTable()
	if cfg.ScaleScriptPath != "" {
		loaded, err := scale.LoadScript(cfg.ScaleScriptPath)
		if err != nil {
			return nil, fmt.Errorf("load scale script: %w", err)
		}
		heights = loaded
	}

	var detectorFactory detector.Factory
	if cfg.DetectorEndpoint != "" {
		endpoint := cfg.DetectorEndpoint
		detectorFactory = func() (detector.Detector, error) {
			return httpdetector.New(httpdetector.Config{Endpoint: endpoint})
		}
	}

	v := cfg.Viewer
	if v == nil {
		v = headless.New()
	}

	fittingStore := store.New(store.Options{
		DetectorFactory: detectorFactory,
		Heights:         heights,
		DetectDebug:     cfg.DetectDebug,
	})

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	server := &Server{mcpServer: mcpServer, store: fittingStore, viewer: v}
	registerFittingTools(mcpServer, fittingStore, v)
	registerFittingResources(mcpServer, fittingStore)

	return server, nil
}

// Run creates and serves the MCP server on stdio until the context ends.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport starts the MCP server using the provided transport.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
