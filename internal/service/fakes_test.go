package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"chat_backend/internal/domain"
	apperrors "chat_backend/pkg/errors"
)

// In-memory репозитории для тестов сервисов

type fakeChatRepo struct {
	mu      sync.Mutex
	nextID  int
	chats   map[int]*domain.Chat
	members map[int]map[int]time.Time // chat_id -> user_id -> joined_at
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		nextID:  1,
		chats:   make(map[int]*domain.Chat),
		members: make(map[int]map[int]time.Time),
	}
}

func (f *fakeChatRepo) Create(_ context.Context, chat *domain.Chat, creatorID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	chat.ID = f.nextID
	chat.CreatedAt = time.Now().UTC()
	f.nextID++

	f.chats[chat.ID] = &domain.Chat{ID: chat.ID, Name: chat.Name, CreatedAt: chat.CreatedAt}
	f.members[chat.ID] = map[int]time.Time{creatorID: chat.CreatedAt}
	return nil
}

func (f *fakeChatRepo) GetByID(_ context.Context, chatID int) (*domain.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	chat, ok := f.chats[chatID]
	if !ok {
		return nil, apperrors.ErrChatNotFound
	}
	copied := *chat
	return &copied, nil
}

func (f *fakeChatRepo) Exists(_ context.Context, chatID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.chats[chatID]
	return ok, nil
}

func (f *fakeChatRepo) ListByUser(_ context.Context, userID int) ([]*domain.ChatSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var summaries []*domain.ChatSummary
	for chatID, members := range f.members {
		if _, ok := members[userID]; !ok {
			continue
		}
		summaries = append(summaries, f.summaryLocked(chatID))
	}
	return summaries, nil
}

func (f *fakeChatRepo) GetMemberIDs(_ context.Context, chatID int) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.memberIDsLocked(chatID), nil
}

func (f *fakeChatRepo) IsMember(_ context.Context, chatID, userID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.members[chatID][userID]
	return ok, nil
}

func (f *fakeChatRepo) AddMember(_ context.Context, chatID, userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.members[chatID] == nil {
		f.members[chatID] = make(map[int]time.Time)
	}
	if _, ok := f.members[chatID][userID]; !ok {
		f.members[chatID][userID] = time.Now().UTC()
	}
	return nil
}

func (f *fakeChatRepo) summaryLocked(chatID int) *domain.ChatSummary {
	return &domain.ChatSummary{
		ID:        chatID,
		Name:      f.chats[chatID].Name,
		MemberIDs: f.memberIDsLocked(chatID),
	}
}

func (f *fakeChatRepo) memberIDsLocked(chatID int) []int {
	var ids []int
	for userID := range f.members[chatID] {
		ids = append(ids, userID)
	}
	sort.Ints(ids)
	return ids
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	nextID   int
	messages map[int]*domain.Message
	chats    *fakeChatRepo
	now      time.Time
}

func newFakeMessageRepo(chats *fakeChatRepo) *fakeMessageRepo {
	return &fakeMessageRepo{
		nextID:   1,
		messages: make(map[int]*domain.Message),
		chats:    chats,
		now:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeMessageRepo) Create(_ context.Context, message *domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	message.ID = f.nextID
	f.nextID++
	// Монотонное «серверное» время, чтобы порядок был детерминированным
	f.now = f.now.Add(time.Second)
	message.SentAt = f.now

	copied := *message
	f.messages[message.ID] = &copied
	return nil
}

func (f *fakeMessageRepo) GetByID(_ context.Context, chatID, messageID int) (*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	message, ok := f.messages[messageID]
	if !ok || message.ChatID != chatID {
		return nil, apperrors.ErrMessageNotFound
	}
	copied := *message
	return &copied, nil
}

func (f *fakeMessageRepo) ListByChat(_ context.Context, chatID, limit, offset int) ([]*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return paginate(f.sortedLocked(func(m *domain.Message) bool {
		return m.ChatID == chatID
	}), limit, offset), nil
}

func (f *fakeMessageRepo) UpdateText(_ context.Context, messageID int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if message, ok := f.messages[messageID]; ok {
		message.Text = text
	}
	return nil
}

func (f *fakeMessageRepo) Delete(_ context.Context, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.messages, messageID)
	return nil
}

func (f *fakeMessageRepo) Search(_ context.Context, userID int, keyword string, limit, offset int) ([]*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return paginate(f.sortedLocked(func(m *domain.Message) bool {
		_, isMember := f.chats.members[m.ChatID][userID]
		return isMember && strings.Contains(m.Text, keyword)
	}), limit, offset), nil
}

func (f *fakeMessageRepo) SearchByChat(_ context.Context, chatID int, keyword string, limit, offset int) ([]*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return paginate(f.sortedLocked(func(m *domain.Message) bool {
		return m.ChatID == chatID && strings.Contains(m.Text, keyword)
	}), limit, offset), nil
}

func (f *fakeMessageRepo) sortedLocked(match func(*domain.Message) bool) []*domain.Message {
	var result []*domain.Message
	for _, message := range f.messages {
		if match(message) {
			copied := *message
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].SentAt.Equal(result[j].SentAt) {
			return result[i].SentAt.Before(result[j].SentAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func paginate(messages []*domain.Message, limit, offset int) []*domain.Message {
	if offset >= len(messages) {
		return nil
	}
	end := offset + limit
	if end > len(messages) {
		end = len(messages)
	}
	return messages[offset:end]
}

type publishedEvent struct {
	chatID int
	event  domain.ChatEvent
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (f *fakePublisher) Publish(chatID int, event domain.ChatEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{chatID: chatID, event: event})
}

func (f *fakePublisher) published() []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]publishedEvent(nil), f.events...)
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	user.ID = f.nextID
	user.CreatedAt = time.Now().UTC()
	f.nextID++

	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}
