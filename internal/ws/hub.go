package ws

import (
	"sync"

	"chat_backend/internal/domain"
	"chat_backend/pkg/logger"
)

// Hub держит группы подписчиков по chat_id и рассылает им события.
// Подписка — чистая маршрутизация доставки, членство в чате здесь
// не проверяется: авторизация остается на пути отправки сообщения.
type Hub struct {
	mu            sync.RWMutex
	groups        map[int]map[*Connection]struct{}
	subscriptions map[*Connection]map[int]struct{}
	log           logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		groups:        make(map[int]map[*Connection]struct{}),
		subscriptions: make(map[*Connection]map[int]struct{}),
		log:           log,
	}
}

func (h *Hub) Register(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscriptions[c] = make(map[int]struct{})
}

// Unregister убирает соединение из всех групп
func (h *Hub) Unregister(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for chatID := range h.subscriptions[c] {
		delete(h.groups[chatID], c)
		if len(h.groups[chatID]) == 0 {
			delete(h.groups, chatID)
		}
	}
	delete(h.subscriptions, c)
}

func (h *Hub) Subscribe(c *Connection, chatID int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.subscriptions[c]
	if !ok {
		return
	}
	subs[chatID] = struct{}{}

	if h.groups[chatID] == nil {
		h.groups[chatID] = make(map[*Connection]struct{})
	}
	h.groups[chatID][c] = struct{}{}
}

func (h *Hub) Unsubscribe(c *Connection, chatID int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subscriptions[c], chatID)
	delete(h.groups[chatID], c)
	if len(h.groups[chatID]) == 0 {
		delete(h.groups, chatID)
	}
}

// Publish доставляет событие всем подписчикам группы best-effort.
// Мертвый или медленный подписчик не задерживает остальных и не
// откатывает запись в хранилище.
func (h *Hub) Publish(chatID int, event domain.ChatEvent) {
	h.mu.RLock()
	var stale []*Connection
	for c := range h.groups[chatID] {
		if !c.Send(event) {
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		h.log.Warn("Dropping unresponsive websocket connection",
			"connection_id", c.ID(), "user_id", c.UserID(), "chat_id", chatID)
		c.Close()
		h.Unregister(c)
	}
}
