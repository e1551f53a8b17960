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

// Publisher рассылает событие подписчикам группы чата.
// Доставка best-effort: ошибки доставки не влияют на записанную мутацию.
type Publisher interface {
	Publish(chatID int, event domain.ChatEvent)
}

type MessageService interface {
	GetChatMessages(ctx context.Context, chatID, userID, page, pageSize int) ([]*domain.Message, error)
	GetMessageByID(ctx context.Context, chatID, messageID, userID int) (*domain.Message, error)
	SendMessage(ctx context.Context, chatID, userID int, text string) (*domain.Message, error)
	EditMessage(ctx context.Context, chatID, messageID, userID int, newText string) (*domain.Message, error)
	DeleteMessage(ctx context.Context, chatID, messageID, userID int) error
	SearchMessages(ctx context.Context, userID int, keyword string, page, pageSize int) ([]*domain.Message, error)
	SearchMessagesByChat(ctx context.Context, chatID, userID int, keyword string, page, pageSize int) ([]*domain.Message, error)
}

type messageService struct {
	messageRepo   repository.MessageRepository
	chatRepo      repository.ChatRepository
	participation ParticipationService
	publisher     Publisher
	log           logger.Logger
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	chatRepo repository.ChatRepository,
	participation ParticipationService,
	publisher Publisher,
	log logger.Logger,
) MessageService {
	return &messageService{
		messageRepo:   messageRepo,
		chatRepo:      chatRepo,
		participation: participation,
		publisher:     publisher,
		log:           log,
	}
}

func (s *messageService) GetChatMessages(ctx context.Context, chatID, userID, page, pageSize int) ([]*domain.Message, error) {
	if err := validatePaging(page, pageSize); err != nil {
		return nil, err
	}

	if err := s.participation.EnsureParticipant(ctx, chatID, userID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByChat(ctx, chatID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*domain.Message{}
	}
	return messages, nil
}

func (s *messageService) GetMessageByID(ctx context.Context, chatID, messageID, userID int) (*domain.Message, error) {
	if err := s.participation.EnsureParticipant(ctx, chatID, userID); err != nil {
		return nil, err
	}

	return s.messageRepo.GetByID(ctx, chatID, messageID)
}

// SendMessage: текст -> участие -> существование чата, в этом порядке
func (s *messageService) SendMessage(ctx context.Context, chatID, userID int, text string) (*domain.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: message text must be provided", apperrors.ErrBadRequest)
	}

	if err := s.participation.EnsureParticipant(ctx, chatID, userID); err != nil {
		return nil, err
	}

	exists, err := s.chatRepo.Exists(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrChatNotFound
	}

	message := &domain.Message{
		ChatID: chatID,
		UserID: userID,
		Text:   text,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	s.publisher.Publish(chatID, domain.ChatEvent{
		Event: domain.EventMessageCreated,
		Data:  message,
	})

	return message, nil
}

func (s *messageService) EditMessage(ctx context.Context, chatID, messageID, userID int, newText string) (*domain.Message, error) {
	if strings.TrimSpace(newText) == "" {
		return nil, fmt.Errorf("%w: new message text must be provided", apperrors.ErrBadRequest)
	}

	if err := s.participation.EnsureParticipant(ctx, chatID, userID); err != nil {
		return nil, err
	}

	message, err := s.messageRepo.GetByID(ctx, chatID, messageID)
	if err != nil {
		return nil, err
	}

	if message.UserID != userID {
		return nil, fmt.Errorf("%w: you are not allowed to edit this message", apperrors.ErrForbidden)
	}

	if err := s.messageRepo.UpdateText(ctx, messageID, newText); err != nil {
		return nil, err
	}

	// sent_at не меняется при редактировании
	message.Text = newText

	s.publisher.Publish(chatID, domain.ChatEvent{
		Event: domain.EventMessageEdited,
		Data:  message,
	})

	return message, nil
}

func (s *messageService) DeleteMessage(ctx context.Context, chatID, messageID, userID int) error {
	if err := s.participation.EnsureParticipant(ctx, chatID, userID); err != nil {
		return err
	}

	message, err := s.messageRepo.GetByID(ctx, chatID, messageID)
	if err != nil {
		return err
	}

	if message.UserID != userID {
		return fmt.Errorf("%w: you are not allowed to delete this message", apperrors.ErrForbidden)
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		return err
	}

	s.publisher.Publish(chatID, domain.ChatEvent{
		Event: domain.EventMessageDeleted,
		Data:  domain.MessageDeletedPayload{ChatID: chatID, MessageID: messageID},
	})

	return nil
}

// SearchMessages фильтрует по членству в SQL, отдельной проверки участия нет
func (s *messageService) SearchMessages(ctx context.Context, userID int, keyword string, page, pageSize int) ([]*domain.Message, error) {
	if err := validatePaging(page, pageSize); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.Search(ctx, userID, keyword, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*domain.Message{}
	}
	return messages, nil
}

func (s *messageService) SearchMessagesByChat(ctx context.Context, chatID, userID int, keyword string, page, pageSize int) ([]*domain.Message, error) {
	if err := validatePaging(page, pageSize); err != nil {
		return nil, err
	}

	if err := s.participation.EnsureParticipant(ctx, chatID, userID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.SearchByChat(ctx, chatID, keyword, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []*domain.Message{}
	}
	return messages, nil
}

func validatePaging(page, pageSize int) error {
	if page < 1 {
		return fmt.Errorf("%w: page must be >= 1", apperrors.ErrBadRequest)
	}
	if pageSize < 1 {
		return fmt.Errorf("%w: pageSize must be >= 1", apperrors.ErrBadRequest)
	}
	return nil
}
