// Package auth provides JWT token generation/validation and password hashing
// for the blog API.
//
// Two token kinds are issued:
//   - access tokens (15 min) sent as "Authorization: Bearer <jwt>" on every
//     protected request
//   - refresh tokens (7 days) exchanged at /users/login/refresh/ for a fresh
//     access token
//
// Both are HS256 JWTs signed with the same secret. A "typ" claim separates
// the two kinds so a refresh token can never be replayed as an access token
// (or vice versa).
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

const (
	issuer          = "private-blog"
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenService handles JWT creation and validation. The same HMAC secret
// signs and verifies every token.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload. "sub" carries the user ID, "typ" distinguishes
// access from refresh tokens, and "jti" is a unique token ID (xid).
type claims struct {
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a signed short-lived access token for userID.
func (s *TokenService) GenerateAccessToken(userID int64) (string, error) {
	return s.generate(userID, tokenTypeAccess, AccessTokenTTL)
}

// GenerateRefreshToken creates a signed long-lived refresh token for userID.
func (s *TokenService) GenerateRefreshToken(userID int64) (string, error) {
	return s.generate(userID, tokenTypeRefresh, RefreshTokenTTL)
}

func (s *TokenService) generate(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
			ID:        xid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing %s token: %w", tokenType, err)
	}

	return signed, nil
}

// ValidateAccessToken parses and verifies an access token, returning the
// user ID it was issued for. Refresh tokens are rejected.
func (s *TokenService) ValidateAccessToken(tokenStr string) (int64, error) {
	return s.validate(tokenStr, tokenTypeAccess)
}

// ValidateRefreshToken parses and verifies a refresh token, returning the
// user ID it was issued for. Access tokens are rejected.
func (s *TokenService) ValidateRefreshToken(tokenStr string) (int64, error) {
	return s.validate(tokenStr, tokenTypeRefresh)
}

// validate checks the signature, expiry, issuer, algorithm, and token type.
// jwt.WithValidMethods rejects tokens signed with "none" or an asymmetric
// method before the keyfunc runs.
func (s *TokenService) validate(tokenStr, wantType string) (int64, error) {
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
			return 0, fmt.Errorf("auth: token expired")
		}
		return 0, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("auth: invalid token claims")
	}
	if c.TokenType != wantType {
		return 0, fmt.Errorf("auth: token is not a %s token", wantType)
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("auth: token has an invalid subject")
	}

	return userID, nil
}
