package handler

import (
	"chat_backend/internal/config"
	"chat_backend/internal/service"
	"chat_backend/internal/ws"
	"chat_backend/pkg/logger"
)

type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Chat      *ChatHandler
	Message   *MessageHandler
	Search    *SearchHandler
	WebSocket *WebSocketHandler
}

func NewHandlers(services *service.Services, hub *ws.Hub, cfg *config.Config, log logger.Logger) *Handlers {
	devMode := cfg.Environment == "development"

	return &Handlers{
		Health:    NewHealthHandler(),
		Auth:      NewAuthHandler(services.Auth, devMode, log),
		Chat:      NewChatHandler(services.Chat, devMode, log),
		Message:   NewMessageHandler(services.Message, devMode, log),
		Search:    NewSearchHandler(services.Message, devMode, log),
		WebSocket: NewWebSocketHandler(hub, services.Message, log),
	}
}
