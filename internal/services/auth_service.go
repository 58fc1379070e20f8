package services

import (
	"context"

	memories_errors "memories-chain/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService verifies bearer tokens minted by the wallet auth provider.
// Identity is established entirely off-process; this side only checks the
// signature and that the token was issued for our domain.
type AuthService struct {
	secret []byte
	domain string
}

// Identity is the verified account behind a request.
type Identity struct {
	AccountID string
}

func NewAuthService(secret, domain string) *AuthService {
	return &AuthService{secret: []byte(secret), domain: domain}
}

func (s *AuthService) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, memories_errors.ErrUnauthorized
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, memories_errors.ErrUnauthorized
		}
		return s.secret, nil
	}, jwt.WithAudience(s.domain))
	if err != nil || !parsed.Valid {
		return Identity{}, memories_errors.ErrUnauthorized
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return Identity{}, memories_errors.ErrUnauthorized
	}

	return Identity{AccountID: sub}, nil
}

type accountCtxKey struct{}

func WithAccountContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, accountCtxKey{}, id)
}

func AccountFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(accountCtxKey{}).(Identity)
	return id, ok
}
