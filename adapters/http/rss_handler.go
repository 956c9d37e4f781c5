package http

import (
	"github.com/gin-gonic/gin"

	feedUC "github.com/khoahotran/portfolio/internal/application/usecase/feed"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type RSSHandler struct {
	rssUseCase *feedUC.RSSUseCase
	logger     logger.Logger
}

func NewRSSHandler(uc *feedUC.RSSUseCase, log logger.Logger) *RSSHandler {
	return &RSSHandler{
		rssUseCase: uc,
		logger:     log,
	}
}

func (h *RSSHandler) GenerateRSS(c *gin.Context) {
	feed := h.rssUseCase.Execute(c.Request.Context(), GetLanguageFromGinContext(c))

	c.Header("Content-Type", "application/xml; charset=utf-8")
	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}
