package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chat_backend/internal/service"
	"chat_backend/pkg/logger"
)

type ChatHandler struct {
	chatService service.ChatService
	devMode     bool
	log         logger.Logger
}

func NewChatHandler(chatService service.ChatService, devMode bool, log logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		devMode:     devMode,
		log:         log,
	}
}

type CreateChatRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *ChatHandler) GetUserChats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	chats, err := h.chatService.GetUserChats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, h.devMode, h.log)
		return
	}

	c.JSON(http.StatusOK, chats)
}

func (h *ChatHandler) GetChatByID(c *gin.Context) {
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

	chat, err := h.chatService.GetChatByID(c.Request.Context(), chatID, userID)
	if err != nil {
		respondError(c, err, h.devMode, h.log)
		return
	}

	c.JSON(http.StatusOK, chat)
}

func (h *ChatHandler) CreateChat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chat, err := h.chatService.CreateChat(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, err, h.devMode, h.log)
		return
	}

	c.JSON(http.StatusCreated, chat)
}
