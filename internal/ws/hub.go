package ws

import (
	"context"
	"log"
	"sync"

	"calendar_scheduler/internal/docstore"
	"calendar_scheduler/internal/session"
)

// Hub хранит подключения клиентов, сгруппированные по коду события,
// и держит по одной подписке на ленту изменений каждого события
// с хотя бы одним клиентом.
type Hub struct {
	// Для каждого события (код) храним множество подключений.
	clients map[string]map[*Client]bool
	// Канал для регистрации нового клиента.
	register chan *Client
	// Канал для удаления клиента.
	unregister chan *Client
	// Канал для раздачи снимков ленты изменений клиентам события.
	broadcast chan SnapshotMessage
	// Отмена подписок на ленту по коду события.
	feeds map[string]context.CancelFunc
	// Документное хранилище для подписок.
	docs docstore.Store
	// Mutex для защиты карты клиентов.
	mu sync.RWMutex
}

// SnapshotMessage представляет снимок партиции для рассылки клиентам события.
type SnapshotMessage struct {
	EventCode string
	Snapshot  docstore.Snapshot
}

// Глобальный экземпляр хаба, создаётся в main через InitHub.
var HubInstance *Hub

// InitHub создает глобальный Hub поверх документного хранилища.
func InitHub(docs docstore.Store) *Hub {
	HubInstance = NewHub(docs)
	return HubInstance
}

// NewHub создает новый Hub.
func NewHub(docs docstore.Store) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan SnapshotMessage, 16),
		feeds:      make(map[string]context.CancelFunc),
		docs:       docs,
	}
}

// Run запускает цикл обработки каналов хаба.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.EventCode] == nil {
				h.clients[client.EventCode] = make(map[*Client]bool)
				h.startFeeds(client.EventCode)
			}
			h.clients[client.EventCode][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.EventCode]; ok {
				if _, ok := clients[client]; ok {
					// Канал Send закрывает цикл сессии клиента, не хаб.
					delete(clients, client)
					if len(clients) == 0 {
						delete(h.clients, client.EventCode)
						// Последняя сессия события закрылась — подписки освобождаются.
						h.stopFeeds(client.EventCode)
					}
				}
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.RLock()
			if clients, ok := h.clients[message.EventCode]; ok {
				for client := range clients {
					select {
					case client.Feed <- message.Snapshot:
					default:
						// Клиент не успевает разбирать снимки: пропускаем,
						// следующий снимок принесёт актуальное состояние.
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// startFeeds открывает подписки на партиции участников и броней события.
// Вызывается под блокировкой из Run.
func (h *Hub) startFeeds(eventCode string) {
	ctx, cancel := context.WithCancel(context.Background())
	h.feeds[eventCode] = cancel

	for _, partition := range []string{
		session.UsersPartition(eventCode),
		session.BookingsPartition(eventCode),
	} {
		feed, err := h.docs.Subscribe(ctx, partition)
		if err != nil {
			log.Println("Ошибка подписки на партицию", partition, ":", err)
			continue
		}
		go func() {
			for snap := range feed {
				h.broadcast <- SnapshotMessage{EventCode: eventCode, Snapshot: snap}
			}
		}()
	}
}

// stopFeeds отменяет подписки события. Вызывается под блокировкой из Run.
func (h *Hub) stopFeeds(eventCode string) {
	if cancel, ok := h.feeds[eventCode]; ok {
		cancel()
		delete(h.feeds, eventCode)
	}
}
