// Package share issues and verifies read-only share links for a trip's
// settlement view.
package share

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmynk/tripsplit/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid or expired share token")
	ErrMissingToken = errors.New("share token required")
)

// MaxTTL is the longest lifetime a share link may be created with.
const MaxTTL = 365 * 24 * time.Hour

// Manager handles share token generation and validation.
type Manager struct {
	secretKey  []byte
	defaultTTL time.Duration
}

// Claims represents the custom JWT claims for a share link.
type Claims struct {
	LinkID string `json:"link_id"`
	TripID string `json:"trip_id"`
	jwt.RegisteredClaims
}

// NewManager creates a new share token manager.
// secretKey should be a strong random string (e.g., 32 bytes).
// defaultTTL is how long links remain valid when no TTL is requested.
func NewManager(secretKey string, defaultTTL time.Duration) *Manager {
	return &Manager{
		secretKey:  []byte(secretKey),
		defaultTTL: defaultTTL,
	}
}

// ExpiryFor returns the expiry timestamp for a link created at now with the
// requested TTL, falling back to the manager's default.
func (m *Manager) ExpiryFor(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	return now.Add(ttl)
}

// Generate creates a signed token for the given share link.
// The token expires with the link.
func (m *Manager) Generate(link *models.ShareLink) (string, error) {
	now := time.Now()
	claims := &Claims{
		LinkID: link.ID,
		TripID: link.TripID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Unix(link.ExpiresAt, 0)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   link.TripID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate parses and validates a share token, returning the claims if valid.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.LinkID == "" || claims.TripID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
