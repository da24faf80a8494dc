package auth

import "context"

// AuthVerifier resuelve un token Bearer a Claims. Un error deja el request como anónimo.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
