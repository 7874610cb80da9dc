// Package httpdetector calls a remote grip-detection service over HTTP JSON.
package httpdetector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/arkavale/gearforge/internal/fitting/detector"
	"github.com/arkavale/gearforge/internal/fitting/domain"
)

const defaultTimeout = 30 * time.Second

var tracer = otel.Tracer("github.com/arkavale/gearforge/internal/fitting/detector/httpdetector")

// Config configures the detection service client.
type Config struct {
	// Endpoint is the full URL of the detection endpoint.
	Endpoint string
	// Timeout bounds a single detection request. Zero means 30s.
	Timeout time.Duration
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client is an HTTP-backed detector. One client serves one detection run;
// the store closes it after use.
type Client struct {
	endpoint string
	http     *http.Client
	closed   bool
}

// New validates cfg and returns a detection client.
func New(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("detection endpoint is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{endpoint: endpoint, http: httpClient}, nil
}

// Factory returns a detector.Factory producing clients with this config.
func Factory(cfg Config) detector.Factory {
	return func() (detector.Detector, error) {
		return New(cfg)
	}
}

type detectRequest struct {
	ModelURL string `json:"model_url"`
	Debug    bool   `json:"debug"`
}

type detectResponse struct {
	GripPoint struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		Z float64 `json:"z"`
	} `json:"grip_point"`
	Confidence float64 `json:"confidence"`
	Label      string  `json:"label"`
}

// DetectHandleArea implements detector.Detector.
func (c *Client) DetectHandleArea(ctx context.Context, modelURL string, debug bool) (domain.HandleDetection, error) {
	if c == nil || c.closed {
		return domain.HandleDetection{}, fmt.Errorf("detector is closed")
	}
	modelURL = strings.TrimSpace(modelURL)
	if modelURL == "" {
		return domain.HandleDetection{}, fmt.Errorf("model url is required")
	}

	ctx, span := tracer.Start(ctx, "detector.DetectHandleArea")
	defer span.End()
	span.SetAttributes(attribute.Bool("detector.debug", debug))

	body, err := json.Marshal(detectRequest{ModelURL: modelURL, Debug: debug})
	if err != nil {
		return domain.HandleDetection{}, fmt.Errorf("marshal detection request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.HandleDetection{}, fmt.Errorf("build detection request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.HandleDetection{}, fmt.Errorf("call detection service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.HandleDetection{}, fmt.Errorf("detection service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var decoded detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.HandleDetection{}, fmt.Errorf("decode detection response: %w", err)
	}

	return domain.HandleDetection{
		GripPoint: domain.Vec3{
			X: decoded.GripPoint.X,
			Y: decoded.GripPoint.Y,
			Z: decoded.GripPoint.Z,
		},
		Confidence: decoded.Confidence,
		Label:      decoded.Label,
	}, nil
}

// Close implements detector.Detector.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.closed = true
	c.http.CloseIdleConnections()
	return nil
}
