// Package jwt provides an HMAC-signed JWT authenticator.
package jwt

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/openlecture/vorlesung/pkg/auth"
)

// Authenticator validates HS256-signed bearer tokens.
type Authenticator struct {
	secret   []byte
	issuer   string // optional expected iss claim
	audience string // optional expected aud claim
}

// New creates a JWT authenticator. issuer and audience are only enforced
// when non-empty.
func New(secret []byte, issuer, audience string) *Authenticator {
	return &Authenticator{secret: secret, issuer: issuer, audience: audience}
}

// Authenticate validates the bearer token as a signed JWT.
// Non-JWT bearer tokens abstain so an API key authenticator later in the
// chain can still claim them.
func (a *Authenticator) Authenticate(_ context.Context, r *http.Request) auth.AuthResult {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return auth.AuthResult{Decision: auth.Abstain}
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	// A JWT has exactly three dot-separated segments.
	if strings.Count(raw, ".") != 2 {
		return auth.AuthResult{Decision: auth.Abstain}
	}

	opts := []jwtlib.ParserOption{jwtlib.WithValidMethods([]string{"HS256"})}
	if a.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(a.issuer))
	}
	if a.audience != "" {
		opts = append(opts, jwtlib.WithAudience(a.audience))
	}

	claims := jwtlib.MapClaims{}
	token, err := jwtlib.ParseWithClaims(raw, claims, func(t *jwtlib.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return auth.AuthResult{Decision: auth.No, Err: fmt.Errorf("%w: invalid token", auth.ErrUnauthenticated)}
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return auth.AuthResult{Decision: auth.No, Err: fmt.Errorf("%w: token has no subject", auth.ErrUnauthenticated)}
	}

	id := &auth.Identity{Subject: sub}
	if scope, ok := claims["scope"].(string); ok && scope != "" {
		id.Scopes = strings.Fields(scope)
	}
	return auth.AuthResult{Decision: auth.Yes, Identity: id}
}
