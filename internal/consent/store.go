package consent

import (
	"net/url"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const cookieMaxAge = 365 * 24 * time.Hour

// Store persists the raw consent record.
type Store interface {
	Load() (string, bool)
	Save(raw string)
}

// MemoryStore keeps the record in memory.
type MemoryStore struct {
	mu  sync.Mutex
	raw string
	set bool
}

func (s *MemoryStore) Load() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw, s.set
}

func (s *MemoryStore) Save(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw, s.set = raw, true
}

// CookieStore mirrors the record in a cookie readable by the browser.
type CookieStore struct {
	c      *fiber.Ctx
	secure bool
}

// NewCookieStore binds a store to one request.
func NewCookieStore(c *fiber.Ctx, secure bool) *CookieStore {
	return &CookieStore{c: c, secure: secure}
}

func (s *CookieStore) Load() (string, bool) {
	val := s.c.Cookies(StorageKey)
	if val == "" {
		return "", false
	}
	raw, err := url.QueryUnescape(val)
	if err != nil {
		return "", false
	}
	return raw, true
}

func (s *CookieStore) Save(raw string) {
	s.c.Cookie(&fiber.Cookie{
		Name:     StorageKey,
		Value:    url.QueryEscape(raw),
		Path:     "/",
		Expires:  time.Now().Add(cookieMaxAge),
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
