package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cleanarch-backend/internal/features/notifications"
	"github.com/yungbote/cleanarch-backend/internal/http/response"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

type NotificationHandler struct {
	m *mediator.Mediator
}

func NewNotificationHandler(m *mediator.Mediator) *NotificationHandler {
	return &NotificationHandler{m: m}
}

// GET /api/notifications/my-notifications
func (nh *NotificationHandler) Mine(c *gin.Context) {
	reply[notifications.GetMyNotificationsQuery, []notifications.NotificationDTO](c, nh.m, notifications.GetMyNotificationsQuery{}, http.StatusOK)
}

// GET /api/notifications/unread
func (nh *NotificationHandler) Unread(c *gin.Context) {
	reply[notifications.GetUnreadNotificationsQuery, []notifications.NotificationDTO](c, nh.m, notifications.GetUnreadNotificationsQuery{}, http.StatusOK)
}

// GET /api/notifications/unread/count
func (nh *NotificationHandler) UnreadCount(c *gin.Context) {
	reply[notifications.GetUnreadCountQuery, notifications.UnreadCount](c, nh.m, notifications.GetUnreadCountQuery{}, http.StatusOK)
}

// PUT /api/notifications/:id/mark-as-read
func (nh *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyNoContent(c, nh.m, notifications.MarkAsReadCommand{ID: id})
}

// PUT /api/notifications/mark-all-as-read
func (nh *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	if _, ok := send[notifications.MarkAllAsReadCommand, notifications.MarkAllResult](c, nh.m, notifications.MarkAllAsReadCommand{}); !ok {
		return
	}
	response.RespondNoContent(c)
}

// POST /api/notifications/send
func (nh *NotificationHandler) Send(c *gin.Context) {
	var cmd notifications.SendNotificationCommand
	if !bindJSON(c, &cmd) {
		return
	}
	reply[notifications.SendNotificationCommand, notifications.NotificationDTO](c, nh.m, cmd, http.StatusCreated)
}

// GET /api/notifications/recent?limit=
func (nh *NotificationHandler) Recent(c *gin.Context) {
	var q notifications.GetRecentNotificationsQuery
	if !bindQuery(c, &q) {
		return
	}
	reply[notifications.GetRecentNotificationsQuery, []notifications.NotificationDTO](c, nh.m, q, http.StatusOK)
}
