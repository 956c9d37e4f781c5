package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio/internal/application/usecase/content"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type SocialHandler struct {
	store  *content.EntityStore
	logger logger.Logger
}

func NewSocialHandler(store *content.EntityStore, log logger.Logger) *SocialHandler {
	return &SocialHandler{store: store, logger: log}
}

func (h *SocialHandler) GetLinks(c *gin.Context) {
	c.JSON(http.StatusOK, SocialLinksDTO{Links: h.store.GetSocialLinks(c.Request.Context())})
}

func (h *SocialHandler) SaveLinks(c *gin.Context) {
	var req SocialLinksDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for social links", err))
		return
	}
	if err := h.store.SaveSocialLinks(c.Request.Context(), req.Links); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, SocialLinksDTO{Links: h.store.GetSocialLinks(c.Request.Context())})
}
