package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/cleanarch-backend/internal/observability"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

const heartbeatInterval = 15 * time.Second

// Hub routes messages to clients subscribed on a channel. Delivery is
// best-effort: a client whose buffer is full misses the message.
type Hub struct {
	mu            sync.RWMutex
	logger        *logger.Logger
	metrics       *observability.Metrics
	subscriptions map[string]map[*Client]bool
	clients       map[*Client]bool
}

func NewHub(log *logger.Logger, metrics *observability.Metrics) *Hub {
	return &Hub{
		logger:        log.With("component", "RealtimeHub"),
		metrics:       metrics,
		subscriptions: make(map[string]map[*Client]bool),
		clients:       make(map[*Client]bool),
	}
}

// NewClient registers a client and subscribes it to the broadcast channel and
// its own user channel.
func (hub *Hub) NewClient(userID uuid.UUID, username string) *Client {
	id := uuid.New()
	client := &Client{
		ID:       id,
		UserID:   userID,
		Username: username,
		Channels: make(map[string]bool),
		Outbound: make(chan Message, outboundBuffer),
		done:     make(chan struct{}),
		Logger:   hub.logger.With("clientID", id.String()),
	}
	hub.mu.Lock()
	hub.clients[client] = true
	n := len(hub.clients)
	hub.mu.Unlock()
	hub.metrics.SetRealtimeClients(n)

	hub.AddChannel(client, ChannelAll)
	if userID != uuid.Nil {
		hub.AddChannel(client, UserChannel(userID))
	}
	return client
}

func (hub *Hub) AddChannel(client *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if client == nil || channel == "" {
		return
	}
	hub.mu.Lock()
	defer hub.mu.Unlock()
	if !hub.clients[client] {
		return
	}

	client.Channels[channel] = true
	clients, exists := hub.subscriptions[channel]
	if !exists {
		clients = make(map[*Client]bool)
		hub.subscriptions[channel] = clients
	}
	clients[client] = true

	hub.logger.Debug("realtime client subscribed", "clientID", client.ID, "channel", channel)
}

func (hub *Hub) RemoveChannel(client *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if client == nil || channel == "" {
		return
	}
	hub.mu.Lock()
	defer hub.mu.Unlock()
	hub.unsubscribeLocked(client, channel)
	hub.logger.Debug("realtime client unsubscribed", "clientID", client.ID, "channel", channel)
}

func (hub *Hub) unsubscribeLocked(client *Client, channel string) {
	delete(client.Channels, channel)
	if subMap, ok := hub.subscriptions[channel]; ok {
		delete(subMap, client)
		if len(subMap) == 0 {
			delete(hub.subscriptions, channel)
		}
	}
}

// Subscribers reports how many clients listen on channel.
func (hub *Hub) Subscribers(channel string) int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.subscriptions[channel])
}

func (hub *Hub) ClientCount() int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.clients)
}

func (hub *Hub) Broadcast(msg Message) {
	if strings.TrimSpace(msg.Channel) == "" {
		return
	}
	hub.mu.RLock()
	defer hub.mu.RUnlock()

	for c := range hub.subscriptions[msg.Channel] {
		select {
		case c.Outbound <- msg:
		default:
			hub.metrics.IncRealtimeDropped()
			hub.logger.Warn("Dropping realtime message; outbound buffer full", "clientID", c.ID, "event", msg.Event)
		}
	}
}

// CloseClient unsubscribes the client everywhere and closes its outbound
// queue. Safe to call more than once.
func (hub *Hub) CloseClient(client *Client) {
	if client == nil {
		return
	}
	client.once.Do(func() {
		hub.mu.Lock()
		for ch := range client.Channels {
			hub.unsubscribeLocked(client, ch)
		}
		delete(hub.clients, client)
		n := len(hub.clients)
		close(client.done)
		close(client.Outbound)
		hub.mu.Unlock()
		hub.metrics.SetRealtimeClients(n)
		hub.logger.Debug("realtime client closed", "clientID", client.ID)
	})
}

// ServeSSE streams the client's messages as server-sent events until the
// request ends or the client is closed.
func (hub *Hub) ServeSSE(w http.ResponseWriter, r *http.Request, client *Client) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported!", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			hub.logger.Debug("SSE client context done", "clientID", client.ID, "err", ctx.Err())
			return
		case <-client.done:
			return
		case <-heartbeat.C:
			_, _ = fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case msg, ok := <-client.Outbound:
			if !ok {
				return
			}
			jsonBytes, err := json.Marshal(msg)
			if err != nil {
				hub.logger.Warn("Failed to marshal realtime message", "error", err)
				continue
			}
			_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, jsonBytes)
			flusher.Flush()
		}
	}
}

// ClientsForUser returns every live connection opened by userID.
func (hub *Hub) ClientsForUser(userID uuid.UUID) []*Client {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	var out []*Client
	for c := range hub.clients {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out
}
