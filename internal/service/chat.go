package service

import (
	"context"
	"fmt"
	"strings"

	"chat_backend/internal/domain"
	"chat_backend/internal/repository"
	apperrors "chat_backend/pkg/errors"
	"chat_backend/pkg/logger"
)

type ChatService interface {
	GetUserChats(ctx context.Context, userID int) ([]*domain.ChatSummary, error)
	GetChatByID(ctx context.Context, chatID, userID int) (*domain.ChatSummary, error)
	CreateChat(ctx context.Context, userID int, name string) (*domain.ChatSummary, error)
}

type chatService struct {
	chatRepo repository.ChatRepository
	log      logger.Logger
}

func NewChatService(chatRepo repository.ChatRepository, log logger.Logger) ChatService {
	return &chatService{chatRepo: chatRepo, log: log}
}

func (s *chatService) GetUserChats(ctx context.Context, userID int) ([]*domain.ChatSummary, error) {
	chats, err := s.chatRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if chats == nil {
		chats = []*domain.ChatSummary{}
	}
	return chats, nil
}

// GetChatByID возвращает ErrChatNotFound и для чужого, и для несуществующего
// чата, чтобы нельзя было перебором id узнать, какие чаты есть
func (s *chatService) GetChatByID(ctx context.Context, chatID, userID int) (*domain.ChatSummary, error) {
	isMember, err := s.chatRepo.IsMember(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.ErrChatNotFound
	}

	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}

	memberIDs, err := s.chatRepo.GetMemberIDs(ctx, chatID)
	if err != nil {
		return nil, err
	}

	return &domain.ChatSummary{
		ID:        chat.ID,
		Name:      chat.Name,
		MemberIDs: memberIDs,
	}, nil
}

func (s *chatService) CreateChat(ctx context.Context, userID int, name string) (*domain.ChatSummary, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: chat name must be provided", apperrors.ErrBadRequest)
	}

	chat := &domain.Chat{Name: name}
	if err := s.chatRepo.Create(ctx, chat, userID); err != nil {
		s.log.Error("Failed to create chat", "error", err, "user_id", userID)
		return nil, err
	}

	s.log.Info("Chat created", "chat_id", chat.ID, "user_id", userID)

	return &domain.ChatSummary{
		ID:        chat.ID,
		Name:      chat.Name,
		MemberIDs: []int{userID},
	}, nil
}
