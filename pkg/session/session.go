// Package session tracks the authenticated user with a signed cookie.
// The cookie value is an HS256 JWT carrying the username; there is no
// server-side session table, so logout simply expires the cookie.
package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSession = errors.New("session: invalid or expired")

// Manager issues and verifies session cookies.
type Manager struct {
	cookieName string
	secret     []byte
	ttl        time.Duration
}

// NewManager creates a session manager. An empty secret generates a
// random per-process one, invalidating sessions across restarts.
func NewManager(cookieName, secret string, ttl time.Duration) (*Manager, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("session secret: %w", err)
		}
	}
	return &Manager{cookieName: cookieName, secret: key, ttl: ttl}, nil
}

// CookieName returns the configured cookie name.
func (m *Manager) CookieName() string { return m.cookieName }

// Issue creates a signed session cookie for the given username.
func (m *Manager) Issue(username string) (*http.Cookie, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}

	return &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  now.Add(m.ttl),
	}, nil
}

// Verify returns the username carried by a session token, or
// ErrInvalidSession when the token is missing, tampered or expired.
func (m *Manager) Verify(token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidSession
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}

// Clear returns an expired cookie that removes the session. Safe to send
// even when no session exists.
func (m *Manager) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	}
}
