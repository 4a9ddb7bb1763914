// Package auth guards the API with HS256 bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/quotedesk/internal/http/respond"
)

var ErrMissingToken = errors.New("missing bearer token")

type contextKey struct{}

// Guard validates bearer tokens signed with a shared secret.
type Guard struct {
	secret []byte
	parser *jwt.Parser
}

func NewGuard(secret string) *Guard {
	return &Guard{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Issue signs a token for subject valid for ttl.
func (g *Guard) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Verify parses raw and returns its subject.
func (g *Guard) Verify(raw string) (string, error) {
	var claims jwt.RegisteredClaims

	_, err := g.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("verifying token: %w", err)
	}

	return claims.Subject, nil
}

// Middleware rejects requests without a valid bearer token with 401.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			unauthorized(w, ErrMissingToken)
			return
		}

		subject, err := g.Verify(raw)
		if err != nil {
			unauthorized(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, subject)))
	})
}

// Subject returns the token subject stored by Middleware.
func Subject(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(contextKey{}).(string)
	return s, ok
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="quotedesk"`)
	respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
}
