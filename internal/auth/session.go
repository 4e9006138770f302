package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/companion-service/internal/domain"
	"github.com/spec-kit/companion-service/internal/repository"
)

// Session cookie names, shared with the browser client.
const (
	AccessCookie  = "sb-access-token"
	RefreshCookie = "sb-refresh-token"
)

const writtenSessionKey = "auth_written_session"

// ErrNoRefreshToken is returned when refreshing a session that has no refresh token.
var ErrNoRefreshToken = errors.New("session has no refresh token")

// Session is the token pair read from cookies plus the identity it carries.
// A stale session has an expired or unreadable access token but may still be
// refreshed with its refresh token.
type Session struct {
	UserID       string
	Email        string
	Role         string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	Stale        bool
}

// HasUser reports whether the session identifies a user.
func (s *Session) HasUser() bool {
	return s != nil && !s.Stale && s.UserID != ""
}

// CookieConfig controls session cookie attributes.
type CookieConfig struct {
	Secure     bool
	RefreshTTL time.Duration
}

// SessionManager reads, refreshes, issues and clears cookie sessions.
type SessionManager struct {
	tokens   *TokenManager
	refresh  RefreshStore
	profiles repository.ProfileRepository
	cookies  CookieConfig
}

// NewSessionManager constructs the manager.
func NewSessionManager(tokens *TokenManager, refresh RefreshStore, profiles repository.ProfileRepository, cookies CookieConfig) *SessionManager {
	return &SessionManager{tokens: tokens, refresh: refresh, profiles: profiles, cookies: cookies}
}

// GetSession returns nil without error when the request carries no session cookies.
func (m *SessionManager) GetSession(c *fiber.Ctx) (*Session, error) {
	access := c.Cookies(AccessCookie)
	refresh := c.Cookies(RefreshCookie)
	if access == "" && refresh == "" {
		return nil, nil
	}

	var parseErr error
	if access != "" {
		claims, err := m.tokens.ParseToken(access)
		if err == nil {
			return sessionFromClaims(claims, access, refresh), nil
		}
		parseErr = err
	}

	if refresh != "" {
		return &Session{RefreshToken: refresh, Stale: true}, nil
	}
	if errors.Is(parseErr, jwt.ErrTokenExpired) {
		return nil, nil
	}
	return nil, parseErr
}

// Refresh rotates the refresh token, mints a new access token and rewrites both
// cookies. When the profile cannot be read, a live session keeps its own identity.
func (m *SessionManager) Refresh(c *fiber.Ctx, s *Session) (*Session, error) {
	if s == nil || s.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}
	ctx := c.UserContext()

	userID, err := m.refresh.Lookup(ctx, s.RefreshToken)
	if err != nil {
		return nil, err
	}
	if s.UserID != "" && s.UserID != userID {
		return nil, ErrRefreshTokenNotFound
	}

	profile, err := m.profiles.GetByID(ctx, userID)
	if err != nil {
		if !s.HasUser() {
			return nil, err
		}
		profile = &domain.Profile{ID: s.UserID, Email: s.Email, Role: s.Role}
	}

	newRefresh, _, err := m.refresh.Rotate(ctx, s.RefreshToken)
	if err != nil {
		return nil, err
	}
	return m.writeSession(c, profile, newRefresh)
}

// Issue starts a new session for profile.
func (m *SessionManager) Issue(c *fiber.Ctx, profile *domain.Profile) (*Session, error) {
	refresh, err := m.refresh.Issue(c.UserContext(), profile.ID)
	if err != nil {
		return nil, err
	}
	return m.writeSession(c, profile, refresh)
}

// Clear revokes the refresh token and expires both cookies. A token rotated
// earlier in the same request is revoked as well.
func (m *SessionManager) Clear(c *fiber.Ctx) error {
	var errs []error
	tokens := []string{c.Cookies(RefreshCookie)}
	if written, ok := c.Locals(writtenSessionKey).(*Session); ok && written != nil {
		tokens = append(tokens, written.RefreshToken)
	}
	for _, token := range tokens {
		if token == "" {
			continue
		}
		errs = append(errs, m.refresh.Revoke(c.UserContext(), token))
	}
	expired := time.Unix(0, 0)
	m.setCookie(c, AccessCookie, "", expired)
	m.setCookie(c, RefreshCookie, "", expired)
	c.Locals(writtenSessionKey, nil)
	return errors.Join(errs...)
}

func (m *SessionManager) writeSession(c *fiber.Ctx, profile *domain.Profile, refresh string) (*Session, error) {
	access, expiresAt, err := m.tokens.GenerateToken(profile)
	if err != nil {
		return nil, err
	}
	m.setCookie(c, AccessCookie, access, expiresAt)
	m.setCookie(c, RefreshCookie, refresh, time.Now().Add(m.cookies.RefreshTTL))
	s := &Session{
		UserID:       profile.ID,
		Email:        profile.Email,
		Role:         profile.Role,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}
	c.Locals(writtenSessionKey, s)
	return s, nil
}

func (m *SessionManager) setCookie(c *fiber.Ctx, name, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		Secure:   m.cookies.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func sessionFromClaims(claims *Claims, access, refresh string) *Session {
	s := &Session{
		UserID:       claims.Subject,
		Email:        claims.Email,
		Role:         claims.UserMetadata.Role,
		AccessToken:  access,
		RefreshToken: refresh,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s
}
