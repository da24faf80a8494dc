package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption-marketplace/internal/domain/apperr"
)

func newIdentityServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != verifyPath || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("X-Api-Key") != "secret" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var body verifyRequest
		_ = json.NewDecoder(r.Body).Decode(&body)

		switch body.Token {
		case "good":
			_ = json.NewEncoder(w).Encode(verifyResponse{UserID: " u7 ", Email: "jane@gmail.com", Name: "Jane Smith"})
		case "anon":
			_ = json.NewEncoder(w).Encode(verifyResponse{})
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVerifier_ValidToken(t *testing.T) {
	srv := newIdentityServer(t)
	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	claims, err := NewVerifier(c).Verify(context.Background(), "good")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "u7" {
		t.Fatalf("expected trimmed user id u7, got %q", claims.UserID)
	}
	if claims.Email != "jane@gmail.com" || claims.Name != "Jane Smith" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestVerifier_RejectedToken(t *testing.T) {
	srv := newIdentityServer(t)
	c, _ := NewClient(Config{BaseURL: srv.URL, APIKey: "secret"})

	_, err := NewVerifier(c).Verify(context.Background(), "bad")
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestVerifier_MissingUserIDIsUpstream(t *testing.T) {
	srv := newIdentityServer(t)
	c, _ := NewClient(Config{BaseURL: srv.URL, APIKey: "secret"})

	_, err := NewVerifier(c).Verify(context.Background(), "anon")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestVerifier_EmptyToken(t *testing.T) {
	srv := newIdentityServer(t)
	c, _ := NewClient(Config{BaseURL: srv.URL, APIKey: "secret"})

	_, err := NewVerifier(c).Verify(context.Background(), "  ")
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestNewClient_RequiresConfig(t *testing.T) {
	if _, err := NewClient(Config{BaseURL: "http://localhost"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}
	var v *Verifier
	if _, err := v.Verify(context.Background(), "x"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected not configured from nil verifier, got %v", err)
	}
}
