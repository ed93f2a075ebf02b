package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/http/response"
	"github.com/yungbote/cleanarch-backend/internal/platform/ctxutil"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
	"github.com/yungbote/cleanarch-backend/internal/realtime"
	"github.com/yungbote/cleanarch-backend/internal/services"
)

type RealtimeHandler struct {
	log      *logger.Logger
	hub      *realtime.Hub
	notifier services.Notifier
	upgrader websocket.Upgrader
}

// NewRealtimeHandler accepts websocket upgrades from allowedOrigins; an empty
// list falls back to gorilla's same-origin check.
func NewRealtimeHandler(log *logger.Logger, hub *realtime.Hub, notifier services.Notifier, allowedOrigins []string) *RealtimeHandler {
	h := &RealtimeHandler{
		log:      log.With("handler", "RealtimeHandler"),
		hub:      hub,
		notifier: notifier,
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
	}
	if len(allowedOrigins) > 0 {
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || lo.Contains(allowedOrigins, origin)
		}
	}
	return h
}

// GET /api/realtime/stream
func (h *RealtimeHandler) Stream(c *gin.Context) {
	rd, ok := principal(c)
	if !ok {
		return
	}
	client := h.connect(c, rd)
	defer h.disconnect(c, client)
	h.hub.ServeSSE(c.Writer, c.Request, client)
}

// GET /api/realtime/ws
func (h *RealtimeHandler) WebSocket(c *gin.Context) {
	rd, ok := principal(c)
	if !ok {
		return
	}
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already answered the request.
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	client := h.connect(c, rd)
	defer h.disconnect(c, client)
	h.hub.ServeWS(c.Request.Context(), conn, client)
}

// POST /api/realtime/groups/:group/join
func (h *RealtimeHandler) JoinGroup(c *gin.Context) {
	h.groupAction(c, h.hub.JoinGroup)
}

// POST /api/realtime/groups/:group/leave
func (h *RealtimeHandler) LeaveGroup(c *gin.Context) {
	h.groupAction(c, h.hub.LeaveGroup)
}

// groupAction applies fn to every live connection of the caller.
func (h *RealtimeHandler) groupAction(c *gin.Context, fn func(*realtime.Client, string) bool) {
	rd, ok := principal(c)
	if !ok {
		return
	}
	group := strings.TrimSpace(c.Param("group"))
	if group == "" {
		response.RespondError(c, domainagg.Validation("realtime.group", "Group name is required"))
		return
	}
	clients := h.hub.ClientsForUser(rd.UserID)
	if len(clients) == 0 {
		response.RespondError(c, domainagg.NewError(domainagg.CodePreconditionFailed, "realtime.group", "No active realtime connection for this user", nil))
		return
	}
	applied := lo.CountBy(clients, func(cl *realtime.Client) bool { return fn(cl, group) })
	c.JSON(http.StatusOK, gin.H{"group": group, "connections": applied})
}

func (h *RealtimeHandler) connect(c *gin.Context, rd *ctxutil.RequestData) *realtime.Client {
	client := h.hub.NewClient(rd.UserID, rd.Username)
	h.log.Info("realtime client connected", "user_id", rd.UserID.String(), "clientID", client.ID)
	h.notifier.Presence(c.Request.Context(), realtime.EventUserConnected, rd.UserID, rd.Username)
	return client
}

func (h *RealtimeHandler) disconnect(c *gin.Context, client *realtime.Client) {
	h.hub.CloseClient(client)
	h.log.Info("realtime client disconnected", "user_id", client.UserID.String(), "clientID", client.ID)
	// The request context is already done here.
	h.notifier.Presence(context.WithoutCancel(c.Request.Context()), realtime.EventUserDisconnected, client.UserID, client.Username)
}

func principal(c *gin.Context) (*ctxutil.RequestData, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondStatus(c, http.StatusUnauthorized, domainagg.CodeUnauthorized, "Missing or invalid token")
		return nil, false
	}
	return rd, true
}
