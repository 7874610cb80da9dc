// Package app hosts the fitting service: the equipment-fitting state machine
// behind an HTTP JSON surface with a websocket progress stream.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/arkavale/gearforge/internal/fitting/detector"
	"github.com/arkavale/gearforge/internal/fitting/detector/httpdetector"
	"github.com/arkavale/gearforge/internal/fitting/exporttoken"
	"github.com/arkavale/gearforge/internal/fitting/scale"
	fitstorage "github.com/arkavale/gearforge/internal/fitting/storage"
	storagesqlite "github.com/arkavale/gearforge/internal/fitting/storage/sqlite"
	"github.com/arkavale/gearforge/internal/fitting/store"
	"github.com/arkavale/gearforge/internal/fitting/viewer"
	"github.com/arkavale/gearforge/internal/fitting/viewer/headless"
	"github.com/arkavale/gearforge/internal/platform/timeouts"
)

// Config defines the inputs for the fitting service process.
type Config struct {
	HTTPAddr          string
	StoragePath       string
	DetectorEndpoint  string
	ScaleScriptPath   string
	StepDelay         time.Duration
	DetectDebug       bool
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration

	// Viewer overrides the default headless viewer; tests inject fakes here.
	Viewer viewer.Viewer
}

// Server hosts the fitting HTTP process and owns its storage handle.
type Server struct {
	httpAddr        string
	shutdownTimeout time.Duration
	httpServer      *http.Server
	storage         fitstorage.Store
}

// NewServer builds a configured fitting server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if config.ReadHeaderTimeout <= 0 {
		config.ReadHeaderTimeout = timeouts.ReadHeader
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = timeouts.Shutdown
	}

	heights := scale.DefaultTable()
	if path := strings.TrimSpace(config.ScaleScriptPath); path != "" {
		loaded, err := scale.LoadScript(path)
		if err != nil {
			return nil, fmt.Errorf("load scale script: %w", err)
		}
		heights = loaded
	}

	var detectorFactory detector.Factory
	if endpoint := strings.TrimSpace(config.DetectorEndpoint); endpoint != "" {
		detectorFactory = func() (detector.Detector, error) {
			return httpdetector.New(httpdetector.Config{Endpoint: endpoint})
		}
	}

	var persistence fitstorage.Store
	if path := strings.TrimSpace(config.StoragePath); path != "" {
		opened, err := storagesqlite.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open fitting storage: %w", err)
		}
		persistence = opened
	}

	v := config.Viewer
	if v == nil {
		v = headless.New()
	}

	hub := newProgressHub()
	fittingStore := store.New(store.Options{
		DetectorFactory: detectorFactory,
		Heights:         heights,
		StepDelay:       config.StepDelay,
		DetectDebug:     config.DetectDebug,
		OnProgress:      hub.broadcast,
	})

	var signer *exporttoken.SignerConfig
	if signerConfig, err := exporttoken.LoadSignerConfigFromEnv(nil); err == nil {
		signer = &signerConfig
	} else {
		log.Printf("fitting: export grants disabled: %v", err)
	}

	handler := NewHandler(handlerDeps{
		store:   fittingStore,
		viewer:  v,
		storage: persistence,
		hub:     hub,
		signer:  signer,
	})

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}

	return &Server{
		httpAddr:        httpAddr,
		shutdownTimeout: config.ShutdownTimeout,
		httpServer:      httpServer,
		storage:         persistence,
	}, nil
}

// Run creates and serves a fitting server until the context ends.
func Run(ctx context.Context, config Config) error {
	server, err := NewServer(config)
	if err != nil {
		return fmt.Errorf("init fitting server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve fitting: %w", err)
	}
	return nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("fitting server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("fitting server listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			log.Printf("close fitting storage: %v", err)
		}
	}
}
