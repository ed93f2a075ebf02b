package realtime

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// WriteTimeout bounds a single frame write.
	WriteTimeout = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
	maxFrameSize = 4096
)

// Command is what a websocket client may send upstream.
type Command struct {
	Action string `json:"action"` // "join" | "leave"
	Group  string `json:"group"`
}

// ServeWS pumps the client's messages over conn and applies join/leave
// commands read from it. It returns when either side goes away.
func (hub *Hub) ServeWS(ctx context.Context, conn *websocket.Conn, client *Client) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go hub.readPump(conn, client, cancel)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(WriteTimeout))
			return
		case <-client.done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(WriteTimeout)); err != nil {
				return
			}
		case msg, ok := <-client.Outbound:
			if !ok {
				return
			}
			if err := conn.SetWriteDeadline(time.Now().Add(WriteTimeout)); err != nil {
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				client.Logger.Debug("websocket write failed", "error", err)
				return
			}
		}
	}
}

func (hub *Hub) readPump(conn *websocket.Conn, client *Client, cancel context.CancelFunc) {
	defer cancel()
	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd Command
		if err := json.Unmarshal(raw, &cmd); err != nil {
			client.Logger.Debug("ignoring malformed websocket frame", "error", err)
			continue
		}
		switch strings.ToLower(strings.TrimSpace(cmd.Action)) {
		case "join":
			hub.JoinGroup(client, cmd.Group)
		case "leave":
			hub.LeaveGroup(client, cmd.Group)
		}
	}
}

// JoinGroup subscribes the client to a named group and acknowledges it.
func (hub *Hub) JoinGroup(client *Client, group string) bool {
	group = strings.TrimSpace(group)
	if client == nil || group == "" {
		return false
	}
	hub.AddChannel(client, GroupChannel(group))
	hub.sendTo(client, Message{Channel: GroupChannel(group), Event: EventJoinedGroup, Data: map[string]any{"group": group}})
	return true
}

func (hub *Hub) LeaveGroup(client *Client, group string) bool {
	group = strings.TrimSpace(group)
	if client == nil || group == "" {
		return false
	}
	hub.RemoveChannel(client, GroupChannel(group))
	hub.sendTo(client, Message{Channel: GroupChannel(group), Event: EventLeftGroup, Data: map[string]any{"group": group}})
	return true
}

func (hub *Hub) sendTo(client *Client, msg Message) {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	if !hub.clients[client] {
		return
	}
	select {
	case client.Outbound <- msg:
	default:
		hub.metrics.IncRealtimeDropped()
	}
}
