package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"chat_backend/internal/domain"
	"chat_backend/internal/service"
	"chat_backend/internal/ws"
	"chat_backend/pkg/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // В продакшене нужно проверять origin
	},
}

type WebSocketHandler struct {
	hub            *ws.Hub
	messageService service.MessageService
	log            logger.Logger
}

func NewWebSocketHandler(hub *ws.Hub, messageService service.MessageService, log logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		messageService: messageService,
		log:            log,
	}
}

// Входящий кадр realtime-канала
type clientFrame struct {
	Action string `json:"action"`
	ChatID int    `json:"chat_id"`
	Text   string `json:"text"`
}

const (
	actionSubscribe   = "subscribe"
	actionUnsubscribe = "unsubscribe"
	actionSend        = "send"
)

func (h *WebSocketHandler) HandleChat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	username := c.GetString("username")

	wsConn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection", "error", err)
		return
	}

	conn := ws.NewConnection(wsConn, userID, username)
	h.hub.Register(conn)
	go conn.WritePump()

	defer func() {
		h.hub.Unregister(conn)
		conn.Close()
	}()

	h.log.Info("WebSocket connected", "connection_id", conn.ID(), "user_id", userID)

	for {
		var frame clientFrame
		if err := conn.ReadEvent(&frame); err != nil {
			h.log.Debug("WebSocket read finished", "connection_id", conn.ID(), "error", err)
			return
		}

		switch frame.Action {
		case actionSubscribe:
			// Подписка не проверяет членство: это только маршрутизация
			// доставки, авторизация остается на пути отправки
			h.hub.Subscribe(conn, frame.ChatID)
		case actionUnsubscribe:
			h.hub.Unsubscribe(conn, frame.ChatID)
		case actionSend:
			if _, err := h.messageService.SendMessage(c.Request.Context(), frame.ChatID, userID, frame.Text); err != nil {
				conn.Send(domain.ChatEvent{
					Event: domain.EventError,
					Data:  gin.H{"error": err.Error()},
				})
			}
		default:
			conn.Send(domain.ChatEvent{
				Event: domain.EventError,
				Data:  gin.H{"error": "unknown action"},
			})
		}
	}
}
