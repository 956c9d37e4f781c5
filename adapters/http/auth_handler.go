package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/khoahotran/portfolio/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/auth"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type AuthHandler struct {
	gate         *authUC.Gate
	jwtSvc       *auth.JWTService
	secureCookie bool
	logger       logger.Logger
}

func NewAuthHandler(gate *authUC.Gate, jwtSvc *auth.JWTService, secureCookie bool, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		gate:         gate,
		jwtSvc:       jwtSvc,
		secureCookie: secureCookie,
		logger:       log,
	}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("password is required", err))
		return
	}

	flags := NewCookieFlagStore(c, h.jwtSvc, h.secureCookie)
	if !h.gate.Login(c.Request.Context(), flags, req.Password) {
		c.Error(apperror.NewAppError(apperror.ErrUnauthorized, "Incorrect password", "shared secret mismatch", nil))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"access_token":  flags.Token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.gate.Logout(c.Request.Context(), NewCookieFlagStore(c, h.jwtSvc, h.secureCookie))
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

func (h *AuthHandler) Session(c *gin.Context) {
	ok := h.gate.IsAuthenticated(c.Request.Context(), NewCookieFlagStore(c, h.jwtSvc, h.secureCookie))
	c.JSON(http.StatusOK, gin.H{"authenticated": ok})
}
