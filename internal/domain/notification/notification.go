package notification

import (
	"strings"
	"time"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
)

const (
	MaxTitleLength      = 200
	MaxMessageLength    = 1000
	MaxEntityTypeLength = 50
)

type Type string

const (
	TypeInfo                    Type = "Info"
	TypeSuccess                 Type = "Success"
	TypeWarning                 Type = "Warning"
	TypeError                   Type = "Error"
	TypeProjectCreated          Type = "ProjectCreated"
	TypeProjectUpdated          Type = "ProjectUpdated"
	TypeProjectCompleted        Type = "ProjectCompleted"
	TypeCapabilityCreated       Type = "CapabilityCreated"
	TypeCapabilityUpdated       Type = "CapabilityUpdated"
	TypeBusinessRuleCreated     Type = "BusinessRuleCreated"
	TypeBusinessRuleActivated   Type = "BusinessRuleActivated"
	TypeBusinessRuleDeactivated Type = "BusinessRuleDeactivated"
	TypeWikiPageCreated         Type = "WikiPageCreated"
	TypeWikiPagePublished       Type = "WikiPagePublished"
	TypeWikiPageUpdated         Type = "WikiPageUpdated"
)

var Types = []Type{
	TypeInfo, TypeSuccess, TypeWarning, TypeError,
	TypeProjectCreated, TypeProjectUpdated, TypeProjectCompleted,
	TypeCapabilityCreated, TypeCapabilityUpdated,
	TypeBusinessRuleCreated, TypeBusinessRuleActivated, TypeBusinessRuleDeactivated,
	TypeWikiPageCreated, TypeWikiPagePublished, TypeWikiPageUpdated,
}

// ParseType accepts a type name (case-insensitive). Blank input means Info.
func ParseType(raw string) (Type, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TypeInfo, nil
	}
	for _, t := range Types {
		if strings.EqualFold(string(t), raw) {
			return t, nil
		}
	}
	return "", domainagg.Validationf("notification.type", "Invalid notification type '%s'", raw)
}

// Notification is addressed to one user, or to everyone when UserID is nil.
type Notification struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string     `gorm:"size:200;not null" json:"title"`
	Message    string     `gorm:"size:1000;not null" json:"message"`
	Type       Type       `gorm:"size:40;not null" json:"type"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"userId,omitempty"`
	IsRead     bool       `gorm:"not null;default:false;index" json:"isRead"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
	EntityType string     `gorm:"size:50" json:"entityType,omitempty"`
	EntityID   *uuid.UUID `gorm:"type:uuid" json:"entityId,omitempty"`

	domainagg.Audit         `gorm:"embedded"`
	domainagg.EventRecorder `gorm:"-" json:"-"`
}

func (Notification) TableName() string { return "notifications" }

func New(title, message string, typ Type, userID *uuid.UUID, entityType string, entityID *uuid.UUID) (*Notification, error) {
	const op = "notification.create"
	title, err := domainagg.RequireText(op, "Title", title, MaxTitleLength)
	if err != nil {
		return nil, err
	}
	message, err = domainagg.RequireText(op, "Message", message, MaxMessageLength)
	if err != nil {
		return nil, err
	}
	entityType, err = domainagg.OptionalText(op, "Entity type", entityType, MaxEntityTypeLength)
	if err != nil {
		return nil, err
	}
	if typ == "" {
		typ = TypeInfo
	}
	if userID != nil && *userID == uuid.Nil {
		userID = nil
	}
	return &Notification{
		ID:         uuid.New(),
		Title:      title,
		Message:    message,
		Type:       typ,
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
	}, nil
}

func (n *Notification) IsBroadcast() bool { return n.UserID == nil }

func (n *Notification) MarkAsRead(at time.Time) {
	if n.IsRead {
		return
	}
	at = at.UTC()
	n.IsRead = true
	n.ReadAt = &at
}

func (n *Notification) MarkAsUnread() {
	n.IsRead = false
	n.ReadAt = nil
}
