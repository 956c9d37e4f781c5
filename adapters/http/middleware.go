package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authUC "github.com/khoahotran/portfolio/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio/internal/domain/i18n"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/auth"
	"github.com/khoahotran/portfolio/pkg/broadcast"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const (
	GinContextKeyLanguage = "language"

	LanguageCookie = "portfolio_lang"
	languageMaxAge = 365 * 24 * time.Hour
)

// AuthMiddleware lets a request through only when its session flag is set.
func AuthMiddleware(gate *authUC.Gate, jwtSvc *auth.JWTService, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		flags := NewCookieFlagStore(c, jwtSvc, secureCookie)
		if !gate.IsAuthenticated(c.Request.Context(), flags) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Login required"})
			return
		}
		c.Next()
	}
}

// LanguageMiddleware picks the display language from ?lang, then the
// language cookie, then Accept-Language. An explicit ?lang is remembered in
// the cookie and announced on bus.
func LanguageMiddleware(bus *broadcast.Bus[i18n.Changed], secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Default
		var fromCookie i18n.Language
		if v, err := c.Cookie(LanguageCookie); err == nil {
			if l, err := i18n.ParseLanguage(v); err == nil {
				fromCookie = l
			}
		}

		if q := c.Query("lang"); q != "" {
			if l, err := i18n.ParseLanguage(q); err == nil {
				lang = l
				if l != fromCookie {
					c.SetSameSite(http.SameSiteLaxMode)
					c.SetCookie(LanguageCookie, string(l), int(languageMaxAge.Seconds()), "/", "", secureCookie, false)
					if bus != nil {
						bus.Publish(i18n.Changed{Language: l})
					}
				}
				c.Set(GinContextKeyLanguage, lang)
				c.Next()
				return
			}
		}

		switch {
		case fromCookie != "":
			lang = fromCookie
		default:
			lang = i18n.MatchAcceptLanguage(c.GetHeader("Accept-Language"))
		}
		c.Set(GinContextKeyLanguage, lang)
		c.Next()
	}
}

func GetLanguageFromGinContext(c *gin.Context) i18n.Language {
	v, ok := c.Get(GinContextKeyLanguage)
	if !ok {
		return i18n.Default
	}
	lang, ok := v.(i18n.Language)
	if !ok {
		return i18n.Default
	}
	return lang
}

// ErrorMiddleware renders the last error a handler pushed with c.Error.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
		}
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err, fields...)
		} else {
			log.Warn("Request rejected", append(fields, zap.Error(err))...)
		}

		if c.Writer.Written() {
			return
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.AbortWithStatusJSON(status, appErr.ToJSON())
			return
		}
		c.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
	}
}
