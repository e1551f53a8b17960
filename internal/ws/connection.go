package ws

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"chat_backend/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 64
)

// Connection — одно живое websocket-соединение авторизованного пользователя
type Connection struct {
	id       uuid.UUID
	userID   int
	username string
	conn     *websocket.Conn
	send     chan domain.ChatEvent
	done     chan struct{}
}

func NewConnection(conn *websocket.Conn, userID int, username string) *Connection {
	return &Connection{
		id:       uuid.New(),
		userID:   userID,
		username: username,
		conn:     conn,
		send:     make(chan domain.ChatEvent, sendBufferSize),
		done:     make(chan struct{}),
	}
}

func (c *Connection) ID() uuid.UUID {
	return c.id
}

func (c *Connection) UserID() int {
	return c.userID
}

// Send кладет событие в исходящий буфер, не блокируясь.
// false означает, что буфер полон и соединение следует закрыть.
func (c *Connection) Send(event domain.ChatEvent) bool {
	select {
	case <-c.done:
		return false
	case c.send <- event:
		return true
	default:
		return false
	}
}

func (c *Connection) ReadEvent(frame any) error {
	return c.conn.ReadJSON(frame)
}

func (c *Connection) Close() {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
	if c.conn != nil {
		c.conn.Close()
	}
}

// WritePump — единственный писатель в соединение
func (c *Connection) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case event := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
