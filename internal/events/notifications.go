package events

import (
	"context"
	"fmt"

	"github.com/yungbote/cleanarch-backend/internal/data/repos"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	domainnotification "github.com/yungbote/cleanarch-backend/internal/domain/notification"
	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/domain/wiki"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
	"github.com/yungbote/cleanarch-backend/internal/services"
)

// NotificationHandler turns portfolio and wiki events into broadcast
// notifications: persisted first, then pushed to every connected client.
type NotificationHandler struct {
	repo     repos.NotificationRepo
	notifier services.Notifier
}

func NewNotificationHandler(repo repos.NotificationRepo, notifier services.Notifier) *NotificationHandler {
	return &NotificationHandler{repo: repo, notifier: notifier}
}

func (h *NotificationHandler) Name() string { return "notifications" }

func (h *NotificationHandler) Handle(ctx context.Context, event domainagg.Event) error {
	draft, ok := NotificationFor(event)
	if !ok {
		return nil
	}
	entityID := event.AggregateID()
	note, err := domainnotification.New(draft.Title, draft.Message, draft.Type, nil, draft.EntityType, &entityID)
	if err != nil {
		return err
	}
	if h.repo != nil {
		if err := h.repo.Add(dbctx.New(ctx), note); err != nil {
			return fmt.Errorf("persist notification: %w", err)
		}
	}
	h.notifier.Push(ctx, note)
	return nil
}

// Draft is the notification content derived from an event.
type Draft struct {
	Title      string
	Message    string
	Type       domainnotification.Type
	EntityType string
}

// NotificationFor maps an event to the notification it should raise. Events
// without a user-facing meaning report false.
func NotificationFor(event domainagg.Event) (Draft, bool) {
	switch e := event.(type) {
	case portfolio.ProjectCreated:
		return Draft{
			Title:      "New Project Created",
			Message:    fmt.Sprintf("Project '%s' (%s) has been created", e.Name, e.Code),
			Type:       domainnotification.TypeProjectCreated,
			EntityType: "Project",
		}, true
	case portfolio.ProjectStatusChanged:
		if e.NewStatus == portfolio.ProjectStatusCompleted {
			return Draft{
				Title:      "Project Completed",
				Message:    fmt.Sprintf("Project '%s' has been completed", e.Name),
				Type:       domainnotification.TypeProjectCompleted,
				EntityType: "Project",
			}, true
		}
		return Draft{
			Title:      "Project Status Changed",
			Message:    fmt.Sprintf("Project '%s' moved from %s to %s", e.Name, e.OldStatus, e.NewStatus),
			Type:       domainnotification.TypeProjectUpdated,
			EntityType: "Project",
		}, true
	case portfolio.ProjectDetailsUpdated:
		return Draft{
			Title:      "Project Updated",
			Message:    fmt.Sprintf("Project '%s' has been updated", e.Name),
			Type:       domainnotification.TypeProjectUpdated,
			EntityType: "Project",
		}, true
	case portfolio.ApplicationCreated:
		return Draft{
			Title:      "New Application",
			Message:    fmt.Sprintf("Application '%s' has been added", e.Name),
			Type:       domainnotification.TypeInfo,
			EntityType: "Application",
		}, true
	case portfolio.CapabilityCreated:
		return Draft{
			Title:      "New Capability Created",
			Message:    fmt.Sprintf("Capability '%s' has been created", e.Name),
			Type:       domainnotification.TypeCapabilityCreated,
			EntityType: "Capability",
		}, true
	case portfolio.CapabilityStatusChanged:
		return Draft{
			Title:      "Capability Updated",
			Message:    fmt.Sprintf("Capability '%s' moved from %s to %s", e.Name, e.OldStatus, e.NewStatus),
			Type:       domainnotification.TypeCapabilityUpdated,
			EntityType: "Capability",
		}, true
	case portfolio.BusinessRuleCreated:
		return Draft{
			Title:      "New Business Rule",
			Message:    fmt.Sprintf("Business rule '%s' (%s) has been created", e.Name, e.Code),
			Type:       domainnotification.TypeBusinessRuleCreated,
			EntityType: "BusinessRule",
		}, true
	case portfolio.BusinessRuleStatusChanged:
		d := Draft{EntityType: "BusinessRule"}
		switch e.NewStatus {
		case portfolio.BusinessRuleStatusActive:
			d.Title, d.Type = "Business Rule Activated", domainnotification.TypeBusinessRuleActivated
		case portfolio.BusinessRuleStatusInactive:
			d.Title, d.Type = "Business Rule Deactivated", domainnotification.TypeBusinessRuleDeactivated
		default:
			d.Title, d.Type = "Business Rule Deprecated", domainnotification.TypeWarning
		}
		d.Message = fmt.Sprintf("Business rule %s is now %s", e.Code, e.NewStatus)
		return d, true
	case wiki.PageCreated:
		return Draft{
			Title:      "New Wiki Page",
			Message:    fmt.Sprintf("Wiki page '%s' has been created", e.Title),
			Type:       domainnotification.TypeWikiPageCreated,
			EntityType: "WikiPage",
		}, true
	case wiki.PagePublished:
		return Draft{
			Title:      "Wiki Page Published",
			Message:    fmt.Sprintf("Wiki page '%s' has been published", e.Title),
			Type:       domainnotification.TypeWikiPagePublished,
			EntityType: "WikiPage",
		}, true
	case wiki.PageVersionCreated:
		if e.VersionNumber <= 1 {
			return Draft{}, false
		}
		return Draft{
			Title:      "Wiki Page Updated",
			Message:    fmt.Sprintf("Wiki page '%s' has a new version (v%d)", e.Title, e.VersionNumber),
			Type:       domainnotification.TypeWikiPageUpdated,
			EntityType: "WikiPage",
		}, true
	}
	return Draft{}, false
}
