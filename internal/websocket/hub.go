package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"talk-rag-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const activityChannel = "activity_events"

// Hub fans session lifecycle and chat activity out to every connected
// observer. Redis relays events between instances so an observer sees
// activity from the whole cluster.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			observers := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Observer connected", map[string]interface{}{"observers": observers})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast delivers one activity event to every observer. With Redis
// configured the event goes through the shared channel so each instance,
// this one included, delivers it exactly once.
func (h *Hub) Broadcast(eventType string, payload map[string]interface{}) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": payload,
	})

	if h.rdb != nil {
		h.rdb.Publish(context.Background(), activityChannel, data)
		return
	}

	h.broadcastLocal(data)
}

func (h *Hub) broadcastLocal(data []byte) {
	var stale []*Client

	h.mu.RLock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.logger.Warn("Hub", "Observer send buffer full, dropping connection", nil)
		h.unregister <- client
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, activityChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		if !json.Valid([]byte(msg.Payload)) {
			log.Printf("Discarding malformed activity event")
			continue
		}
		h.broadcastLocal([]byte(msg.Payload))
	}
}
