package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"calendar_scheduler/internal/calview"
	"calendar_scheduler/internal/datekey"
	"calendar_scheduler/internal/docstore"
	"calendar_scheduler/internal/response"
	"calendar_scheduler/internal/session"
	"calendar_scheduler/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Время показа одноразового уведомления.
const toastDuration = 3 * time.Second

// WSMessage представляет сообщение сервера клиенту.
type WSMessage struct {
	EventType string      `json:"event_type"` // state | toast | toast_clear
	EventCode string      `json:"event_code"`
	Data      interface{} `json:"data,omitempty"`
}

// Command представляет команду клиента.
type Command struct {
	Action    string   `json:"action"`
	Name      string   `json:"name,omitempty"`
	Color     string   `json:"color,omitempty"`
	UserID    string   `json:"user_id,omitempty"`
	UserIDs   []string `json:"user_ids,omitempty"`
	Date      string   `json:"date,omitempty"`
	View      string   `json:"view,omitempty"`
	Direction int      `json:"direction,omitempty"`
}

// Client представляет одно подключение-сессию через WebSocket.
// Команды клиента и снимки ленты изменений обрабатываются в одном цикле run:
// состояние сессии живёт в одной логической нити, блокировки не нужны.
type Client struct {
	Hub       *Hub
	Conn      *websocket.Conn
	Send      chan []byte
	EventCode string
	Store     *store.Store

	commands chan Command
	Feed     chan docstore.Snapshot
	toasts   chan store.Toast
	done     chan struct{}
}

// readPump читает команды из WebSocket-соединения и передаёт их циклу сессии.
func (c *Client) readPump() {
	defer func() {
		close(c.done)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(4096)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}
		var cmd Command
		if err := json.Unmarshal(message, &cmd); err != nil {
			log.Printf("Некорректная команда от клиента: %s", message)
			continue
		}
		select {
		case c.commands <- cmd:
		case <-c.done:
			return
		}
	}
}

// writePump отправляет сообщения клиенту из канала Send.
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Канал закрыт.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			// Отправка ping-сообщения для поддержания соединения.
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// run — единственная нить состояния сессии: применяет команды и снимки,
// после каждого изменения отправляет клиенту полное состояние.
func (c *Client) run() {
	defer func() {
		c.Hub.unregister <- c
		close(c.Send)
	}()

	toastTimer := time.NewTimer(toastDuration)
	if !toastTimer.Stop() {
		<-toastTimer.C
	}
	defer toastTimer.Stop()

	c.pushState()

	for {
		select {
		case <-c.done:
			return
		case cmd := <-c.commands:
			c.handleCommand(cmd)
			c.pushState()
		case snap := <-c.Feed:
			c.applySnapshot(snap)
			c.pushState()
		case toast := <-c.toasts:
			// Слот уведомления один: новое заменяет предыдущее.
			c.push(WSMessage{EventType: "toast", EventCode: c.EventCode, Data: toast})
			if !toastTimer.Stop() {
				select {
				case <-toastTimer.C:
				default:
				}
			}
			toastTimer.Reset(toastDuration)
		case <-toastTimer.C:
			c.push(WSMessage{EventType: "toast_clear", EventCode: c.EventCode})
		}
	}
}

func (c *Client) handleCommand(cmd Command) {
	switch cmd.Action {
	case "add_participant":
		c.Store.AddParticipant(cmd.Name, cmd.Color)
	case "update_color":
		c.Store.UpdateParticipantColor(cmd.UserID, cmd.Color)
	case "remove_participant":
		c.Store.RemoveParticipant(cmd.UserID)
	case "toggle_booking":
		c.Store.ToggleBooking(cmd.Date)
	case "set_active":
		c.Store.SetActiveParticipant(cmd.UserID)
	case "set_filter":
		c.Store.SetFilter(cmd.UserIDs)
	case "set_view":
		c.Store.SetView(calview.View(cmd.View))
	case "set_date":
		t, err := datekey.Parse(cmd.Date)
		if err != nil {
			log.Println("Команда set_date с некорректной датой:", cmd.Date)
			return
		}
		c.Store.SetAnchorDate(t)
	case "navigate":
		c.Store.NavigateDate(cmd.Direction)
	default:
		log.Println("Неизвестная команда:", cmd.Action)
	}
}

func (c *Client) applySnapshot(snap docstore.Snapshot) {
	switch {
	case strings.HasSuffix(snap.Partition, "/users"):
		c.Store.ApplyParticipantsSnapshot(snap)
	case strings.HasSuffix(snap.Partition, "/bookings"):
		c.Store.ApplyBookingsSnapshot(snap)
	}
}

func (c *Client) pushState() {
	c.push(WSMessage{EventType: "state", EventCode: c.EventCode, Data: c.Store.UIState()})
}

func (c *Client) push(msg WSMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Println("Ошибка сериализации сообщения клиенту:", err)
		return
	}
	select {
	case c.Send <- payload:
	default:
		// Переполненный канал: клиент получит следующее состояние.
	}
}

// Настраиваем апгрейдер для WebSocket с разрешением всех источников.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SchedulerWebSocketHandler проверяет код события, обновляет соединение до
// WebSocket и запускает сессию планирования.
// URL-пример: /api/events/{code}/ws
// @Summary		Сессия планирования
// @Description	Открывает WebSocket-сессию события: команды клиента и живые обновления состояния
// @Tags			events
// @Param			code	path	string	true	"Код события"
// @Success		101	"Соединение обновлено до WebSocket"
// @Failure		404	{object}	response.ErrorResponse	"Событие не найдено (EVENT_NOT_FOUND)"
// @Router			/api/events/{code}/ws [get]
func SchedulerWebSocketHandler(c *gin.Context) {
	eventCode := strings.ToUpper(c.Param("code"))

	binder := session.NewBinder(HubInstance.docs)
	if _, err := binder.Bind(c.Request.Context(), eventCode); err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "EVENT_NOT_FOUND",
			Message: "Событие с таким кодом не существует",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		http.Error(c.Writer, "Ошибка обновления до WebSocket", http.StatusInternalServerError)
		return
	}

	// Создаем нового клиента-сессию
	client := &Client{
		Hub:       HubInstance,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		EventCode: eventCode,
		commands:  make(chan Command, 16),
		Feed:      make(chan docstore.Snapshot, 8),
		toasts:    make(chan store.Toast, 8),
		done:      make(chan struct{}),
	}
	client.Store = store.New(eventCode, HubInstance.docs, func(t store.Toast) {
		select {
		case client.toasts <- t:
		default:
		}
	})

	// Регистрируем клиента в Hub
	HubInstance.register <- client

	// Запускаем горутины сессии: отправка, цикл состояния и прием команд
	go client.writePump()
	go client.run()
	client.readPump()
}
