package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio/internal/application/usecase/content"
	"github.com/khoahotran/portfolio/internal/domain/profile"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type ProfileHandler struct {
	store  *content.EntityStore
	logger logger.Logger
}

func NewProfileHandler(store *content.EntityStore, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{store: store, logger: log}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	d := h.store.GetProfile(c.Request.Context())
	c.JSON(http.StatusOK, ToProfileDTO(d, GetLanguageFromGinContext(c)))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req profile.Data
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile update", err))
		return
	}

	if err := h.store.SaveProfile(c.Request.Context(), &req); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(h.store.GetProfile(c.Request.Context()), GetLanguageFromGinContext(c)))
}

func (h *ProfileHandler) GetItem(c *gin.Context) {
	cat, err := profile.ParseCategory(c.Param("category"))
	if err != nil {
		c.Error(apperror.NewNotFound("profile category", c.Param("category")))
		return
	}
	it, ok := h.store.GetProfileItem(c.Request.Context(), cat, c.Param("id"))
	if !ok {
		c.Error(apperror.NewNotFound("profile item", c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, ToProfileItemDTO(it, GetLanguageFromGinContext(c)))
}

func (h *ProfileHandler) SaveItem(c *gin.Context) {
	cat, err := profile.ParseCategory(c.Param("category"))
	if err != nil {
		c.Error(apperror.NewInvalidInput(err.Error(), err))
		return
	}
	var req ProfileItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile item", err))
		return
	}

	it, err := h.store.SaveProfileItem(c.Request.Context(), cat, req.ToDraft())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileItemDTO(it, GetLanguageFromGinContext(c)))
}

func (h *ProfileHandler) DeleteItem(c *gin.Context) {
	cat, err := profile.ParseCategory(c.Param("category"))
	if err != nil {
		c.Error(apperror.NewInvalidInput(err.Error(), err))
		return
	}
	if err := h.store.DeleteProfileItem(c.Request.Context(), cat, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
