package remote

import (
	"context"
	"fmt"

	"pet-adoption-marketplace/internal/ports/auth"
)

// Verifier implementa auth.AuthVerifier; lo instancia main cuando AUTH_BASE_URL está definido.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	claims, err := v.client.VerifyToken(ctx, token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("verify token: %w", err)
	}
	return claims, nil
}

var _ auth.AuthVerifier = (*Verifier)(nil)
