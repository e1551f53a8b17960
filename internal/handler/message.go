package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chat_backend/internal/service"
	"chat_backend/pkg/logger"
)

type MessageHandler struct {
	messageService service.MessageService
	devMode        bool
	log            logger.Logger
}

func NewMessageHandler(messageService service.MessageService, devMode bool, log logger.Logger) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		devMode:        devMode,
		log:            log,
	}
}

type CreateMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

type EditMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *MessageHandler) GetChatMessages(c *gin.Context) {
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

	page, pageSize := pagingParams(c)

	messages, err := h.messageService.GetChatMessages(c.Request.Context(), chatID, userID, page, pageSize)
	if err != nil {
		respondError(c, err, h.devMode, h.log)
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *MessageHandler) GetMessageByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	chatID, messageID, ok := chatAndMessageIDs(c)
	if !ok {
		return
	}

	message, err := h.messageService.GetMessageByID(c.Request.Context(), chatID, messageID, userID)
	if err != nil {
		respondError(c, err, h.devMode, h.log)
		return
	}

	c.JSON(http.StatusOK, message)
}

func (h *MessageHandler) SendMessage(c *gin.Context) {
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

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messageService.SendMessage(c.Request.Context(), chatID, userID, req.Text)
	if err != nil {
		respondError(c, err, h.devMode, h.log)
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *MessageHandler) EditMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	chatID, messageID, ok := chatAndMessageIDs(c)
	if !ok {
		return
	}

	var req EditMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messageService.EditMessage(c.Request.Context(), chatID, messageID, userID, req.Text)
	if err != nil {
		respondError(c, err, h.devMode, h.log)
		return
	}

	c.JSON(http.StatusOK, message)
}

func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	chatID, messageID, ok := chatAndMessageIDs(c)
	if !ok {
		return
	}

	if err := h.messageService.DeleteMessage(c.Request.Context(), chatID, messageID, userID); err != nil {
		respondError(c, err, h.devMode, h.log)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}

func chatAndMessageIDs(c *gin.Context) (int, int, bool) {
	chatID, err := strconv.Atoi(c.Param("chatId"))
	if err != nil || chatID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat ID"})
		return 0, 0, false
	}

	messageID, err := strconv.Atoi(c.Param("messageId"))
	if err != nil || messageID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message ID"})
		return 0, 0, false
	}

	return chatID, messageID, true
}

func pagingParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	return page, pageSize
}
