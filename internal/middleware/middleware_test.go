package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-adoption-marketplace/internal/domain/apperr"
	"pet-adoption-marketplace/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	claims auth.Claims
	err    error
}

func (s stubVerifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if token != "good" {
		return auth.Claims{}, errors.New("bad token")
	}
	return s.claims, s.err
}

func captureUser(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = UserID(r.Context())
	})
}

func TestAuthContext_DevHeader(t *testing.T) {
	var got string
	h := AuthContext(nil)(captureUser(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Debug-User-ID", " 7 ")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "7", got)
}

func TestAuthContext_BearerVerifier(t *testing.T) {
	var got string
	h := AuthContext(stubVerifier{claims: auth.Claims{UserID: "9"}})(captureUser(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "9", got)

	got = ""
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	req.Header.Set("X-Debug-User-ID", "7") // ignorado cuando hay verifier
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "", got)
}

func TestRequireUserID(t *testing.T) {
	_, err := RequireUserID(context.Background())
	require.ErrorIs(t, err, apperr.ErrUnauthorized)

	uid, err := RequireUserID(WithClaims(context.Background(), auth.Claims{UserID: "3"}))
	require.NoError(t, err)
	assert.Equal(t, "3", uid)
}

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/messages", nil)
		req = req.WithContext(WithClaims(req.Context(), auth.Claims{UserID: "u1"}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	// Otro usuario tiene su propio bucket
	req := httptest.NewRequest(http.MethodPost, "/messages", nil)
	req = req.WithContext(WithClaims(req.Context(), auth.Claims{UserID: "u2"}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRateLimiter_AnonymousKeyedByIPAcrossPorts(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	allowed := 0
	for _, addr := range []string{"10.0.0.1:40001", "10.0.0.1:40002", "10.0.0.1:40003", "10.0.0.1:40004", "10.0.0.1:40005"} {
		req := httptest.NewRequest(http.MethodPost, "/notifications", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusNoContent {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed)

	// Otra IP no comparte bucket; sin puerto se usa el valor crudo
	for _, addr := range []string{"10.0.0.2:40001", "10.0.0.3"} {
		req := httptest.NewRequest(http.MethodPost, "/notifications", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code, addr)
	}
}

func TestRateLimiter_CleanupIdle(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return base }
	rl.getLimiter("a")

	rl.now = func() time.Time { return base.Add(11 * time.Minute) }
	rl.getLimiter("b")

	assert.Equal(t, 1, rl.Cleanup())
}

func TestRecover_WritesEnvelope(t *testing.T) {
	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}
