package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	backupUC "github.com/khoahotran/portfolio/internal/application/usecase/backup"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type BackupHandler struct {
	backupUseCase *backupUC.BackupUseCase
	logger        logger.Logger
}

func NewBackupHandler(uc *backupUC.BackupUseCase, log logger.Logger) *BackupHandler {
	return &BackupHandler{backupUseCase: uc, logger: log}
}

func (h *BackupHandler) TriggerBackup(c *gin.Context) {
	out, err := h.backupUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"key":      out.Key,
		"location": out.Location,
		"events":   out.Events,
	})
}
