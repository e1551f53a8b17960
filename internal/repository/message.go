package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chat_backend/internal/domain"
	apperrors "chat_backend/pkg/errors"
	"chat_backend/pkg/logger"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	GetByID(ctx context.Context, chatID, messageID int) (*domain.Message, error)
	ListByChat(ctx context.Context, chatID, limit, offset int) ([]*domain.Message, error)
	UpdateText(ctx context.Context, messageID int, text string) error
	Delete(ctx context.Context, messageID int) error
	Search(ctx context.Context, userID int, keyword string, limit, offset int) ([]*domain.Message, error)
	SearchByChat(ctx context.Context, chatID int, keyword string, limit, offset int) ([]*domain.Message, error)
}

type messageRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewMessageRepository(db *pgxpool.Pool, log logger.Logger) MessageRepository {
	return &messageRepository{db: db, log: log}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (chat_id, user_id, text, sent_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, sent_at
	`

	err := r.db.QueryRow(ctx, query, message.ChatID, message.UserID, message.Text).
		Scan(&message.ID, &message.SentAt)
	if err != nil {
		r.log.Error("Failed to create message", "error", err)
		return err
	}

	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, chatID, messageID int) (*domain.Message, error) {
	query := `
		SELECT id, chat_id, user_id, text, sent_at
		FROM messages
		WHERE id = $1 AND chat_id = $2
	`

	message := &domain.Message{}
	err := r.db.QueryRow(ctx, query, messageID, chatID).
		Scan(&message.ID, &message.ChatID, &message.UserID, &message.Text, &message.SentAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMessageNotFound
		}
		r.log.Error("Failed to get message", "error", err)
		return nil, err
	}

	return message, nil
}

func (r *messageRepository) ListByChat(ctx context.Context, chatID, limit, offset int) ([]*domain.Message, error) {
	query := `
		SELECT id, chat_id, user_id, text, sent_at
		FROM messages
		WHERE chat_id = $1
		ORDER BY sent_at, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, chatID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list messages", "error", err)
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func (r *messageRepository) UpdateText(ctx context.Context, messageID int, text string) error {
	query := `
		UPDATE messages
		SET text = $2
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, messageID, text)
	if err != nil {
		r.log.Error("Failed to update message", "error", err)
		return err
	}

	return nil
}

func (r *messageRepository) Delete(ctx context.Context, messageID int) error {
	query := `DELETE FROM messages WHERE id = $1`

	_, err := r.db.Exec(ctx, query, messageID)
	if err != nil {
		r.log.Error("Failed to delete message", "error", err)
		return err
	}

	return nil
}

// Search ищет подстроку по всем чатам, где состоит пользователь
func (r *messageRepository) Search(ctx context.Context, userID int, keyword string, limit, offset int) ([]*domain.Message, error) {
	query := `
		SELECT m.id, m.chat_id, m.user_id, m.text, m.sent_at
		FROM messages m
		WHERE m.text LIKE $1 ESCAPE '\'
		  AND EXISTS (
			SELECT 1 FROM chat_members cm
			WHERE cm.chat_id = m.chat_id AND cm.user_id = $2
		  )
		ORDER BY m.sent_at, m.id
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, likePattern(keyword), userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to search messages", "error", err)
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func (r *messageRepository) SearchByChat(ctx context.Context, chatID int, keyword string, limit, offset int) ([]*domain.Message, error) {
	query := `
		SELECT id, chat_id, user_id, text, sent_at
		FROM messages
		WHERE chat_id = $1 AND text LIKE $2 ESCAPE '\'
		ORDER BY sent_at, id
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, chatID, likePattern(keyword), limit, offset)
	if err != nil {
		r.log.Error("Failed to search messages in chat", "error", err)
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows pgx.Rows) ([]*domain.Message, error) {
	var messages []*domain.Message
	for rows.Next() {
		message := &domain.Message{}
		err := rows.Scan(&message.ID, &message.ChatID, &message.UserID, &message.Text, &message.SentAt)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, rows.Err()
}

// likePattern экранирует метасимволы LIKE в ключевом слове
func likePattern(keyword string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(keyword)
	return "%" + escaped + "%"
}
