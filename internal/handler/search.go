package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chat_backend/internal/service"
	"chat_backend/pkg/logger"
)

type SearchHandler struct {
	messageService service.MessageService
	devMode        bool
	log            logger.Logger
}

func NewSearchHandler(messageService service.MessageService, devMode bool, log logger.Logger) *SearchHandler {
	return &SearchHandler{
		messageService: messageService,
		devMode:        devMode,
		log:            log,
	}
}

func (h *SearchHandler) SearchMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	keyword := c.Query("keyword")
	page, pageSize := pagingParams(c)

	messages, err := h.messageService.SearchMessages(c.Request.Context(), userID, keyword, page, pageSize)
	if err != nil {
		respondError(c, err, h.devMode, h.log)
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *SearchHandler) SearchMessagesByChat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	chatID, err := strconv.Atoi(c.Param("chatId"))
	if err != nil || chatID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat ID"})
		return
	}

	keyword := c.Query("keyword")
	page, pageSize := pagingParams(c)

	messages, err := h.messageService.SearchMessagesByChat(c.Request.Context(), chatID, userID, keyword, page, pageSize)
	if err != nil {
		respondError(c, err, h.devMode, h.log)
		return
	}

	c.JSON(http.StatusOK, messages)
}
