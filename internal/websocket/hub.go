package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"xlai-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const presenceSetKey = "presence:online"

// Hub tracks connected chat clients keyed by user handle (multi-device:
// one handle can hold several connections).
type Hub struct {
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out and presence
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
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
			h.clients[client.Handle] = append(h.clients[client.Handle], client)
			h.mu.Unlock()
			h.setPresence(client.Handle, true)
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"handle": client.Handle})

		case client := <-h.unregister:
			h.mu.Lock()
			lastForHandle := false
			if clients, ok := h.clients[client.Handle]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.Handle] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.Handle]) == 0 {
					delete(h.clients, client.Handle)
					lastForHandle = true
				}
			}
			h.mu.Unlock()
			if lastForHandle {
				h.setPresence(client.Handle, false)
				h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"handle": client.Handle})
			}
		}
	}
}

// Send pushes a payload to every local connection of a handle and relays it
// through Redis so other instances can do the same.
func (h *Hub) Send(handle string, payload []byte) {
	h.mu.RLock()
	clients, localFound := h.clients[handle]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- payload:
			default:
				// The Run loop owns the close; only queue the drop here.
				h.logger.Warn("Hub", "Client Send buffer full, dropping connection", map[string]interface{}{"handle": handle})
				h.unregister <- client
			}
		}
	}

	if h.rdb != nil {
		envelope, _ := json.Marshal(map[string]interface{}{
			"target_handle": handle,
			"message":       json.RawMessage(payload),
		})
		h.rdb.Publish(context.Background(), "cluster_events", envelope)
	}
}

// IsOnline reports presence across all instances. Fails open to offline so
// a dead Redis never breaks the contact list.
func (h *Hub) IsOnline(ctx context.Context, handle string) bool {
	h.mu.RLock()
	_, local := h.clients[handle]
	h.mu.RUnlock()
	if local {
		return true
	}

	if h.rdb == nil {
		return false
	}
	online, err := h.rdb.SIsMember(ctx, presenceSetKey, handle).Result()
	if err != nil {
		return false
	}
	return online
}

func (h *Hub) setPresence(handle string, online bool) {
	if h.rdb == nil {
		return
	}
	ctx := context.Background()
	var err error
	if online {
		err = h.rdb.SAdd(ctx, presenceSetKey, handle).Err()
	} else {
		err = h.rdb.SRem(ctx, presenceSetKey, handle).Err()
	}
	if err != nil {
		h.logger.Warn("Hub", "Presence update failed", map[string]interface{}{
			"handle": handle,
			"error":  err.Error(),
		})
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetHandle string          `json:"target_handle"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[payload.TargetHandle]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					h.unregister <- client
				}
			}
		}
	}
}
