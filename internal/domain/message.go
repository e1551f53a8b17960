package domain

import "time"

type Message struct {
	ID     int       `json:"id"`
	ChatID int       `json:"chat_id"`
	UserID int       `json:"user_id"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

// События realtime-канала
const (
	EventMessageCreated = "messageCreated"
	EventMessageEdited  = "messageEdited"
	EventMessageDeleted = "messageDeleted"
	EventError          = "error"
)

type ChatEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type MessageDeletedPayload struct {
	ChatID    int `json:"chat_id"`
	MessageID int `json:"message_id"`
}
