package http

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/portfolio/internal/application/usecase/content"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// MediaHandler accepts image uploads. Images are stored inline as data URIs
// in the document they belong to.
type MediaHandler struct {
	store  *content.EntityStore
	logger logger.Logger
}

func NewMediaHandler(store *content.EntityStore, log logger.Logger) *MediaHandler {
	return &MediaHandler{store: store, logger: log}
}

func (h *MediaHandler) openUpload(c *gin.Context) (multipart.File, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return nil, false
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return nil, false
	}
	return file, true
}

// Upload encodes an image for an editor draft without saving anything.
func (h *MediaHandler) Upload(c *gin.Context) {
	file, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	uri, err := h.store.EncodeImage(file)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"uri": uri})
}

func (h *MediaHandler) AttachEventImage(c *gin.Context) {
	file, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	e, err := h.store.AttachEventImage(c.Request.Context(), c.Param("id"), file)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToEventDTO(e, GetLanguageFromGinContext(c)))
}

func (h *MediaHandler) SetProfilePhoto(c *gin.Context) {
	file, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	d, err := h.store.SetProfilePhoto(c.Request.Context(), file)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(d, GetLanguageFromGinContext(c)))
}
