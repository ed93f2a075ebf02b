package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/cleanarch-backend/internal/platform/ctxutil"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
	"github.com/yungbote/cleanarch-backend/internal/realtime"
	"github.com/yungbote/cleanarch-backend/internal/services"
)

func newRealtimeRouter(t *testing.T, hub *realtime.Hub, userID uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewRealtimeHandler(logger.Nop(), hub, services.NewNotifier(&services.HubEmitter{Hub: hub}), nil)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: userID, Username: "jdoe"})
		c.Request = c.Request.WithContext(ctx)
	})
	r.POST("/groups/:group/join", h.JoinGroup)
	r.POST("/groups/:group/leave", h.LeaveGroup)
	return r
}

func post(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil).WithContext(context.Background()))
	return rec
}

func TestJoinGroupWithoutConnection(t *testing.T) {
	hub := realtime.NewHub(logger.Nop(), nil)
	r := newRealtimeRouter(t, hub, uuid.New())

	rec := post(r, "/groups/architects/join")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want=400 got=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestJoinAndLeaveGroup(t *testing.T) {
	hub := realtime.NewHub(logger.Nop(), nil)
	userID := uuid.New()
	client := hub.NewClient(userID, "jdoe")
	defer hub.CloseClient(client)
	r := newRealtimeRouter(t, hub, userID)

	rec := post(r, "/groups/architects/join")
	if rec.Code != http.StatusOK {
		t.Fatalf("join: want=200 got=%d body=%s", rec.Code, rec.Body.String())
	}
	if got := hub.Subscribers(realtime.GroupChannel("architects")); got != 1 {
		t.Fatalf("want 1 subscriber, got %d", got)
	}
	ack := <-client.Outbound
	if ack.Event != realtime.EventJoinedGroup {
		t.Fatalf("want JoinedGroup ack, got %s", ack.Event)
	}

	rec = post(r, "/groups/architects/leave")
	if rec.Code != http.StatusOK {
		t.Fatalf("leave: want=200 got=%d", rec.Code)
	}
	if got := hub.Subscribers(realtime.GroupChannel("architects")); got != 0 {
		t.Fatalf("want 0 subscribers, got %d", got)
	}
}
