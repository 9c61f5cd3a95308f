// Package auth issues and validates HS256 bearer tokens for the local
// development server.
package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/Abraxas-365/imagetext/errx"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "imagetext"

var (
	authErrors = errx.NewRegistry("AUTH")

	ErrMissingSecret = authErrors.Register("MISSING_SECRET", errx.TypeValidation, http.StatusInternalServerError, "JWT secret is not configured")
	ErrMissingToken  = authErrors.Register("MISSING_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Bearer token is required")
	ErrInvalidToken  = authErrors.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Token is invalid")
	ErrTokenExpired  = authErrors.Register("TOKEN_EXPIRED", errx.TypeAuthorization, http.StatusUnauthorized, "Token has expired")
)

// JWTClaims carried by a dev token
type JWTClaims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies tokens with a shared secret
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a token service. ttl applies to tokens minted by
// GenerateToken.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, authErrors.New(ErrMissingSecret)
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// GenerateToken mints a token for subject
func (s *TokenService) GenerateToken(subject, scope string) (string, error) {
	now := s.now()
	claims := JWTClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errx.Wrap(err, "failed to sign token", errx.TypeInternal)
	}
	return signed, nil
}

// ValidateToken parses a token and checks signature, issuer and expiry
func (s *TokenService) ValidateToken(tokenString string) (*JWTClaims, error) {
	if tokenString == "" {
		return nil, authErrors.New(ErrMissingToken)
	}

	claims := &JWTClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, authErrors.NewWithCause(ErrTokenExpired, err)
	default:
		return nil, authErrors.NewWithCause(ErrInvalidToken, err)
	}
}
