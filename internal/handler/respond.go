package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "chat_backend/pkg/errors"
	"chat_backend/pkg/logger"
)

// respondError переводит доменную ошибку в статус.
// Детали 500-х наружу не отдаются вне development-режима.
func respondError(c *gin.Context, err error, devMode bool, log logger.Logger) {
	status := apperrors.HTTPStatusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("Unhandled error", "error", err, "path", c.Request.URL.Path)
		if !devMode {
			message = "an unexpected error has occurred"
		}
	}

	c.JSON(status, gin.H{"error": message})
}

func currentUserID(c *gin.Context) (int, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := value.(int)
	return id, ok
}
