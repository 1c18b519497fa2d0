// Package auth issues and verifies the JWT access/refresh token pair
// and injects the signed-in user into request context.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kvnhng/boardhub/internal/domain/models"
)

// ErrTokenExpired is returned by Parse* when the token's lifetime has
// passed. Handlers distinguish it from other failures so clients know
// to refresh instead of signing in again.
var ErrTokenExpired = errors.New("token expired")

// Claims is the payload carried in both access and refresh tokens.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies the token pair. Access and refresh
// tokens use separate secrets so a leaked refresh secret cannot mint
// access tokens.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// AccessTTL reports the configured access token lifetime.
func (tm *TokenManager) AccessTTL() time.Duration { return tm.accessTTL }

// RefreshTTL reports the configured refresh token lifetime.
func (tm *TokenManager) RefreshTTL() time.Duration { return tm.refreshTTL }

// SignAccess returns a signed access token for u.
func (tm *TokenManager) SignAccess(u models.User) (string, error) {
	return tm.sign(u, tm.accessSecret, tm.accessTTL)
}

// SignRefresh returns a signed refresh token for u.
func (tm *TokenManager) SignRefresh(u models.User) (string, error) {
	return tm.sign(u, tm.refreshSecret, tm.refreshTTL)
}

func (tm *TokenManager) sign(u models.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseAccess verifies an access token and returns its claims.
func (tm *TokenManager) ParseAccess(token string) (*Claims, error) {
	return parse(token, tm.accessSecret)
}

// ParseRefresh verifies a refresh token and returns its claims.
func (tm *TokenManager) ParseRefresh(token string) (*Claims, error) {
	return parse(token, tm.refreshSecret)
}

func parse(token string, secret []byte) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return &claims, nil
}
