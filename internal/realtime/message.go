package realtime

import (
	"strings"

	"github.com/google/uuid"
)

type Event string

const (
	EventReceiveNotification Event = "ReceiveNotification"
	EventUserConnected       Event = "UserConnected"
	EventUserDisconnected    Event = "UserDisconnected"
	EventJoinedGroup         Event = "JoinedGroup"
	EventLeftGroup           Event = "LeftGroup"
)

// ChannelAll reaches every connected client.
const ChannelAll = "all"

type Message struct {
	Channel string `json:"channel"`
	Event   Event  `json:"event"`
	Data    any    `json:"data,omitempty"`
}

func UserChannel(userID uuid.UUID) string {
	return "user:" + userID.String()
}

func GroupChannel(name string) string {
	return "group:" + strings.TrimSpace(name)
}
