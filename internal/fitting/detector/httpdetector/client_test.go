package httpdetector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDetectHandleArea(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var req detectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.ModelURL != "https://assets.example/sword.glb" {
			t.Errorf("unexpected model url %q", req.ModelURL)
		}
		if !req.Debug {
			t.Error("expected debug flag set")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"grip_point": map[string]float64{"x": 0.1, "y": 0.8, "z": -0.02},
			"confidence": 0.93,
			"label":      "hilt",
		})
	}))
	defer srv.Close()

	client, err := New(Config{Endpoint: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	result, err := client.DetectHandleArea(context.Background(), "https://assets.example/sword.glb", true)
	if err != nil {
		t.Fatalf("detect handle area: %v", err)
	}
	if result.GripPoint.Y != 0.8 {
		t.Fatalf("expected grip point y 0.8, got %v", result.GripPoint.Y)
	}
	if result.Confidence != 0.93 {
		t.Fatalf("expected confidence 0.93, got %v", result.Confidence)
	}
	if result.Label != "hilt" {
		t.Fatalf("expected label hilt, got %q", result.Label)
	}
}

func TestDetectHandleAreaServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model too large", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client, err := New(Config{Endpoint: srv.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	defer client.Close()

	_, err = client.DetectHandleArea(context.Background(), "https://assets.example/sword.glb", false)
	if err == nil {
		t.Fatal("expected error from non-200 response")
	}
	if !strings.Contains(err.Error(), "422") || !strings.Contains(err.Error(), "model too large") {
		t.Fatalf("expected status and body in error, got %v", err)
	}
}

func TestDetectAfterCloseFails(t *testing.T) {
	client, err := New(Config{Endpoint: "http://localhost:0"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := client.DetectHandleArea(context.Background(), "https://assets.example/sword.glb", false); err == nil {
		t.Fatal("expected error after close")
	}
}

func TestNewRequiresEndpoint(t *testing.T) {
	if _, err := New(Config{Endpoint: "   "}); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
}
