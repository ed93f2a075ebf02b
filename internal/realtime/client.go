package realtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

const outboundBuffer = 32

type Client struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Username string
	Channels map[string]bool
	Outbound chan Message
	done     chan struct{}
	once     sync.Once
	Logger   *logger.Logger
}

// Done is closed when the hub drops the client.
func (c *Client) Done() <-chan struct{} { return c.done }
