package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio/internal/application/usecase/content"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type EventHandler struct {
	store  *content.EntityStore
	logger logger.Logger
}

func NewEventHandler(store *content.EntityStore, log logger.Logger) *EventHandler {
	return &EventHandler{store: store, logger: log}
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	lang := GetLanguageFromGinContext(c)
	events := h.store.ListEvents(c.Request.Context())
	c.JSON(http.StatusOK, ToEventListDTO(events, lang))
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	e, err := h.store.LookupEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToEventDTO(e, GetLanguageFromGinContext(c)))
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for event", err))
		return
	}

	e, err := h.store.SaveEvent(c.Request.Context(), req.ToDraft(""))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToEventDTO(e, GetLanguageFromGinContext(c)))
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for event", err))
		return
	}

	e, err := h.store.SaveEvent(c.Request.Context(), req.ToDraft(c.Param("id")))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToEventDTO(e, GetLanguageFromGinContext(c)))
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	if err := h.store.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
