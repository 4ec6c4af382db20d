package storage

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Cookie is a durable Storage keeping every key in its own long-lived cookie.
// Values written during a request are visible to later reads of the same request.
type Cookie struct {
	c       *gin.Context
	maxAge  int
	secure  bool
	pending map[string]*string
}

// NewCookie creates a cookie storage for the request in c. maxAge is the
// cookie lifetime in seconds.
func NewCookie(c *gin.Context, maxAge int, secure bool) *Cookie {
	return &Cookie{
		c:       c,
		maxAge:  maxAge,
		secure:  secure,
		pending: make(map[string]*string),
	}
}

// Get returns the value of the cookie named key.
func (s *Cookie) Get(key string) (string, bool) {
	if v, ok := s.pending[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	v, err := s.c.Cookie(key)
	if err != nil {
		return "", false
	}
	return v, true
}

// Set writes the cookie named key.
func (s *Cookie) Set(key, value string) error {
	s.pending[key] = &value
	s.c.SetSameSite(http.SameSiteLaxMode)
	// not HttpOnly, page scripts may read the preference to avoid a flash of the wrong theme
	s.c.SetCookie(key, value, s.maxAge, "/", "", s.secure, false)
	return nil
}

// Remove expires the cookie named key.
func (s *Cookie) Remove(key string) error {
	s.pending[key] = nil
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, "", -1, "/", "", s.secure, false)
	return nil
}
