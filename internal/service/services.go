package service

import (
	"chat_backend/internal/config"
	"chat_backend/internal/repository"
	"chat_backend/pkg/logger"
)

type Services struct {
	Auth          AuthService
	Participation ParticipationService
	Chat          ChatService
	Message       MessageService
	RateLimit     RateLimitService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, publisher Publisher, log logger.Logger) *Services {
	participation := NewParticipationService(repos.Chat, log)

	return &Services{
		Auth:          NewAuthService(repos.User, cfg.JWT, log),
		Participation: participation,
		Chat:          NewChatService(repos.Chat, log),
		Message:       NewMessageService(repos.Message, repos.Chat, participation, publisher, log),
		RateLimit:     NewRateLimitService(repos.RateLimit, log),
	}
}
