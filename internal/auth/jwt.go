// Package auth provides the authentication core: bcrypt password hashing,
// JWT issuance/verification, the request middleware that turns a token into
// a user, and the Google sign-in provider.
//
// TOKEN MODEL:
// Access tokens are stateless HS256 JWTs. Everything needed to authenticate
// a request (the user id in "sub", the expiry in "exp") is inside the signed
// token, so verification needs no database round trip. The signing secret is
// process-wide configuration loaded once at startup.
//
// Rotating the secret invalidates every outstanding token immediately; there
// is no grace period or dual-key verification. That is a deployment
// constraint to plan around (rotate during a maintenance window), not a bug.
//
// Expiry is compared against wall-clock server time at verification, with no
// tolerance for clock skew.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "placement-prep"

// TokenService issues and verifies signed access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing with secret and issuing
// tokens valid for ttl. The secret should be at least 32 bytes of random
// data in production; anything under 16 characters is rejected outright.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token TTL must be positive")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// claims is the JWT payload. The registered "sub" claim carries the user id.
type claims struct {
	jwt.RegisteredClaims
}

// Issue creates and signs a token for the given subject (user id) using the
// service's configured lifetime.
func (s *TokenService) Issue(subject string) (string, error) {
	return s.IssueWithTTL(subject, s.ttl)
}

// IssueWithTTL creates a token with a custom lifetime. Used by tests and
// anywhere a non-default expiry is needed.
func (s *TokenService) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Verify parses and verifies a token string and returns the subject it
// encodes. Tampered, expired, and malformed tokens are all rejected with an
// error; callers should not distinguish between the failure modes when
// responding to clients.
//
// jwt.WithValidMethods pins the algorithm to HS256 so a token claiming
// "none" or an asymmetric algorithm is never accepted.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return c.Subject, nil
}

// TTL returns the configured default token lifetime. Handlers use it to set
// matching cookie max-ages.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
