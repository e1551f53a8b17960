package service

import (
	"context"
	"fmt"

	"chat_backend/internal/repository"
	apperrors "chat_backend/pkg/errors"
	"chat_backend/pkg/logger"
)

type ParticipationService interface {
	EnsureParticipant(ctx context.Context, chatID, userID int) error
}

type participationService struct {
	chatRepo repository.ChatRepository
	log      logger.Logger
}

func NewParticipationService(chatRepo repository.ChatRepository, log logger.Logger) ParticipationService {
	return &participationService{chatRepo: chatRepo, log: log}
}

// EnsureParticipant выполняется до любых других проверок по чату,
// чтобы посторонний не узнал о существовании чата или сообщения
func (s *participationService) EnsureParticipant(ctx context.Context, chatID, userID int) error {
	isMember, err := s.chatRepo.IsMember(ctx, chatID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return fmt.Errorf("%w: you are not a participant of this chat", apperrors.ErrForbidden)
	}
	return nil
}
