// Package domain re-exports the persisted aggregates so infrastructure code
// can refer to them through one import.
package domain

import (
	"github.com/yungbote/cleanarch-backend/internal/domain/notification"
	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/domain/user"
	"github.com/yungbote/cleanarch-backend/internal/domain/wiki"
)

type (
	Project         = portfolio.Project
	Application     = portfolio.Application
	Capability      = portfolio.Capability
	BusinessRule    = portfolio.BusinessRule
	WikiPage        = wiki.Page
	WikiPageVersion = wiki.Version
	User            = user.User
	Notification    = notification.Notification
)

type (
	ProjectStatus      = portfolio.ProjectStatus
	ApplicationType    = portfolio.ApplicationType
	ApplicationStatus  = portfolio.ApplicationStatus
	CapabilityCategory = portfolio.CapabilityCategory
	CapabilityStatus   = portfolio.CapabilityStatus
	BusinessRuleType   = portfolio.BusinessRuleType
	BusinessRuleStatus = portfolio.BusinessRuleStatus
	Priority           = portfolio.Priority
	WikiEntityType     = wiki.EntityType
	NotificationType   = notification.Type
)

const (
	RoleAdmin = user.RoleAdmin
	RoleUser  = user.RoleUser
)

// Models lists every persisted model in dependency order.
func Models() []any {
	return []any{
		&User{},
		&Project{},
		&Application{},
		&Capability{},
		&BusinessRule{},
		&WikiPage{},
		&WikiPageVersion{},
		&Notification{},
	}
}
