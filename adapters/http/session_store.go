package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio/pkg/auth"
)

const (
	SessionCookie = "portfolio_session"
	sessionMaxAge = 365 * 24 * time.Hour
)

// CookieFlagStore keeps the authenticated flag of one browser as a signed
// token in an HttpOnly cookie. API clients may send the same token as a
// Bearer header instead.
type CookieFlagStore struct {
	c      *gin.Context
	jwtSvc *auth.JWTService
	secure bool

	// Token is the token issued by the last successful SetAuthenticated(true).
	Token string
}

func NewCookieFlagStore(c *gin.Context, jwtSvc *auth.JWTService, secure bool) *CookieFlagStore {
	return &CookieFlagStore{c: c, jwtSvc: jwtSvc, secure: secure}
}

func (s *CookieFlagStore) token() string {
	if header := s.c.GetHeader("Authorization"); header != "" {
		if t := strings.TrimPrefix(header, "Bearer "); t != header {
			return t
		}
	}
	if v, err := s.c.Cookie(SessionCookie); err == nil {
		return v
	}
	return ""
}

func (s *CookieFlagStore) Authenticated(_ context.Context) (bool, error) {
	t := s.token()
	if t == "" {
		return false, nil
	}
	claims, err := s.jwtSvc.ValidateToken(t)
	if err != nil {
		return false, nil
	}
	return claims.Authenticated, nil
}

func (s *CookieFlagStore) SetAuthenticated(_ context.Context, v bool) error {
	s.c.SetSameSite(http.SameSiteStrictMode)
	if !v {
		s.Token = ""
		s.c.SetCookie(SessionCookie, "", -1, "/", "", s.secure, true)
		return nil
	}
	token, err := s.jwtSvc.GenerateToken()
	if err != nil {
		return err
	}
	s.Token = token
	s.c.SetCookie(SessionCookie, token, int(sessionMaxAge.Seconds()), "/", "", s.secure, true)
	return nil
}
