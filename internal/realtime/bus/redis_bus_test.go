package bus

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
	"github.com/yungbote/cleanarch-backend/internal/realtime"
)

func TestRedisBusRequiresAddr(t *testing.T) {
	if _, err := NewRedisBus(logger.Nop(), Config{}); err == nil {
		t.Fatalf("expected error without address")
	}
	if _, err := NewRedisBus(nil, Config{Addr: "localhost:6379"}); err == nil {
		t.Fatalf("expected error without logger")
	}
}

func TestRedisBusForwardsPublishedMessages(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	b, err := NewRedisBus(logger.Nop(), Config{Addr: addr, Channel: "test." + uuid.NewString()})
	if err != nil {
		t.Fatalf("NewRedisBus: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan realtime.Message, 1)
	if err := b.StartForwarder(ctx, func(m realtime.Message) { got <- m }); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}
	want := realtime.Message{Channel: realtime.ChannelAll, Event: realtime.EventReceiveNotification}
	if err := b.Publish(ctx, want); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	select {
	case m := <-got:
		if m.Channel != want.Channel || m.Event != want.Event {
			t.Fatalf("want=%+v got=%+v", want, m)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("timed out waiting for forwarded message")
	}
}
