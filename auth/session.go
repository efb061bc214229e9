package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tienda-verde/storefront-api/models"
)

const (
	RoleAdmin = string(models.RoleAdmin)
	RoleGuest = "guest"
)

var (
	ErrMissingSecret  = errors.New("JWT_SECRET must be set")
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrSessionRevoked = errors.New("session has ended, sign in again")
)

// Claims are carried by every token this service issues. Subject is the
// user id for admins and the guest id for storefront visitors; ID is the
// session id.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and validates tokens and owns the set of live admin
// sessions. Create it once at startup and Close it on shutdown.
type Manager struct {
	secret   []byte
	ttl      time.Duration
	guestTTL time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]time.Time // session id -> expiry
}

func NewManager(secret string, ttl, guestTTL time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Manager{
		secret:   []byte(secret),
		ttl:      ttl,
		guestTTL: guestTTL,
		now:      time.Now,
		sessions: make(map[string]time.Time),
	}, nil
}

// IssueAdmin starts a session for an admin user.
func (m *Manager) IssueAdmin(user models.User) (string, time.Time, error) {
	sessionID := uuid.NewString()
	expires := m.now().Add(m.ttl)

	token, err := m.sign(Claims{
		Email: user.Email,
		Role:  RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(m.now()),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	if err != nil {
		return "", time.Time{}, err
	}

	m.mu.Lock()
	m.sessions[sessionID] = expires
	m.mu.Unlock()
	return token, expires, nil
}

// IssueGuest creates a new guest identity for a storefront cart.
func (m *Manager) IssueGuest() (guestID, token string, expires time.Time, err error) {
	guestID = "guest_" + uuid.NewString()
	expires = m.now().Add(m.guestTTL)
	token, err = m.sign(Claims{
		Role: RoleGuest,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   guestID,
			IssuedAt:  jwt.NewNumericDate(m.now()),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	return guestID, token, expires, err
}

// Parse validates a token. Admin tokens must also belong to a live session.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Role == RoleAdmin {
		m.mu.Lock()
		exp, ok := m.sessions[claims.ID]
		m.mu.Unlock()
		if !ok || !exp.After(m.now()) {
			return nil, ErrSessionRevoked
		}
	}
	return claims, nil
}

// Revoke ends an admin session immediately.
func (m *Manager) Revoke(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// Sweep forgets expired sessions.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, exp := range m.sessions {
		if !exp.After(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// ActiveSessions counts live admin sessions.
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close ends every admin session.
func (m *Manager) Close() {
	m.mu.Lock()
	m.sessions = make(map[string]time.Time)
	m.mu.Unlock()
}

func (m *Manager) sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
