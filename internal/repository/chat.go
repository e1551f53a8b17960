package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"chat_backend/internal/domain"
	apperrors "chat_backend/pkg/errors"
	"chat_backend/pkg/logger"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat, creatorID int) error
	GetByID(ctx context.Context, chatID int) (*domain.Chat, error)
	Exists(ctx context.Context, chatID int) (bool, error)
	ListByUser(ctx context.Context, userID int) ([]*domain.ChatSummary, error)
	GetMemberIDs(ctx context.Context, chatID int) ([]int, error)
	IsMember(ctx context.Context, chatID, userID int) (bool, error)
	AddMember(ctx context.Context, chatID, userID int) error
}

type chatRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewChatRepository(db *pgxpool.Pool, log logger.Logger) ChatRepository {
	return &chatRepository{db: db, log: log}
}

// Create вставляет чат и членство создателя в одной транзакции
func (r *chatRepository) Create(ctx context.Context, chat *domain.Chat, creatorID int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", "error", err)
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO chats (name, created_at)
		VALUES ($1, NOW())
		RETURNING id, created_at
	`

	err = tx.QueryRow(ctx, query, chat.Name).Scan(&chat.ID, &chat.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create chat", "error", err)
		return err
	}

	memberQuery := `
		INSERT INTO chat_members (chat_id, user_id, joined_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (chat_id, user_id) DO NOTHING
	`

	_, err = tx.Exec(ctx, memberQuery, chat.ID, creatorID)
	if err != nil {
		r.log.Error("Failed to add chat creator as member", "error", err)
		return err
	}

	return tx.Commit(ctx)
}

func (r *chatRepository) GetByID(ctx context.Context, chatID int) (*domain.Chat, error) {
	query := `
		SELECT id, name, created_at
		FROM chats
		WHERE id = $1
	`

	chat := &domain.Chat{}
	err := r.db.QueryRow(ctx, query, chatID).Scan(&chat.ID, &chat.Name, &chat.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChatNotFound
		}
		r.log.Error("Failed to get chat by ID", "error", err)
		return nil, err
	}

	return chat, nil
}

func (r *chatRepository) Exists(ctx context.Context, chatID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM chats WHERE id = $1)`

	var exists bool
	err := r.db.QueryRow(ctx, query, chatID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check chat existence", "error", err)
		return false, err
	}

	return exists, nil
}

func (r *chatRepository) ListByUser(ctx context.Context, userID int) ([]*domain.ChatSummary, error) {
	query := `
		SELECT c.id, c.name, ARRAY_AGG(cm.user_id ORDER BY cm.user_id) AS member_ids
		FROM chats c
		JOIN chat_members cm ON cm.chat_id = c.id
		WHERE c.id IN (SELECT chat_id FROM chat_members WHERE user_id = $1)
		GROUP BY c.id, c.name
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list chats for user", "error", err)
		return nil, err
	}
	defer rows.Close()

	var chats []*domain.ChatSummary
	for rows.Next() {
		summary := &domain.ChatSummary{}
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.MemberIDs); err != nil {
			r.log.Error("Failed to scan chat summary", "error", err)
			return nil, err
		}
		chats = append(chats, summary)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Failed to iterate chat rows", "error", err)
		return nil, err
	}

	return chats, nil
}

func (r *chatRepository) GetMemberIDs(ctx context.Context, chatID int) ([]int, error) {
	query := `
		SELECT user_id
		FROM chat_members
		WHERE chat_id = $1
		ORDER BY user_id
	`

	rows, err := r.db.Query(ctx, query, chatID)
	if err != nil {
		r.log.Error("Failed to get chat members", "error", err)
		return nil, err
	}
	defer rows.Close()

	var memberIDs []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			r.log.Error("Failed to scan member ID", "error", err)
			return nil, err
		}
		memberIDs = append(memberIDs, id)
	}

	return memberIDs, rows.Err()
}

func (r *chatRepository) IsMember(ctx context.Context, chatID, userID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM chat_members
			WHERE chat_id = $1 AND user_id = $2
		)
	`

	var exists bool
	err := r.db.QueryRow(ctx, query, chatID, userID).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check chat membership", "error", err)
		return false, err
	}

	return exists, nil
}

func (r *chatRepository) AddMember(ctx context.Context, chatID, userID int) error {
	query := `
		INSERT INTO chat_members (chat_id, user_id, joined_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (chat_id, user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, chatID, userID)
	if err != nil {
		r.log.Error("Failed to add chat member", "error", err)
		return err
	}

	return nil
}
