package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend-yatube/internal/config"
)

func TestHealthRoute(t *testing.T) {
	s := NewServer(config.Config{JWTSecret: "secret", ServerPort: ":0"}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 status")
	}
}

func TestNotFoundPage(t *testing.T) {
	s := NewServer(config.Config{JWTSecret: "secret", ServerPort: ":0"}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/no/such/page", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 status, got %d", resp.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
		Path  string `json:"path"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "page not found" || body.Path != "/no/such/page" {
		t.Fatalf("unexpected 404 page: %+v", body)
	}
}

func TestGuestRedirectedToLogin(t *testing.T) {
	s := NewServer(config.Config{JWTSecret: "secret", ServerPort: ":0"}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/follow", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/auth/login?next=/follow" {
		t.Fatalf("unexpected redirect target: %s", loc)
	}
}

func TestCSRFDisabledByDefault(t *testing.T) {
	s := NewServer(config.Config{JWTSecret: "secret", ServerPort: ":0"}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/create", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	// no CSRF 403: the guest redirect answers instead
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.StatusCode)
	}
}

func TestCSRFProtectRendersForbiddenPage(t *testing.T) {
	s := NewServer(config.Config{JWTSecret: "secret", ServerPort: ":0", CSRFProtect: true}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/create", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 status, got %d", resp.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
		Path  string `json:"path"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "csrf check failed" || body.Path != "/create" {
		t.Fatalf("unexpected 403 page: %+v", body)
	}
}

func TestCSRFProtectAllowsReads(t *testing.T) {
	s := NewServer(config.Config{JWTSecret: "secret", ServerPort: ":0", CSRFProtect: true}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 status, got %d", resp.StatusCode)
	}
}
