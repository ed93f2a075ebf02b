package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/cleanarch-backend/internal/data/repos/notification"
	"github.com/yungbote/cleanarch-backend/internal/data/repos/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/data/repos/user"
	"github.com/yungbote/cleanarch-backend/internal/data/repos/wiki"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

type ProjectRepo = portfolio.ProjectRepo
type ApplicationRepo = portfolio.ApplicationRepo
type CapabilityRepo = portfolio.CapabilityRepo
type BusinessRuleRepo = portfolio.BusinessRuleRepo
type WikiPageRepo = wiki.WikiPageRepo
type UserRepo = user.UserRepo
type NotificationRepo = notification.NotificationRepo

type ProjectFilter = portfolio.ProjectFilter
type CapabilityFilter = portfolio.CapabilityFilter
type CapabilityRuleCount = portfolio.CapabilityRuleCount
type BusinessRuleFilter = portfolio.BusinessRuleFilter
type WikiPageFilter = wiki.WikiPageFilter

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return portfolio.NewProjectRepo(db, baseLog)
}
func NewApplicationRepo(db *gorm.DB, baseLog *logger.Logger) ApplicationRepo {
	return portfolio.NewApplicationRepo(db, baseLog)
}
func NewCapabilityRepo(db *gorm.DB, baseLog *logger.Logger) CapabilityRepo {
	return portfolio.NewCapabilityRepo(db, baseLog)
}
func NewBusinessRuleRepo(db *gorm.DB, baseLog *logger.Logger) BusinessRuleRepo {
	return portfolio.NewBusinessRuleRepo(db, baseLog)
}
func NewWikiPageRepo(db *gorm.DB, baseLog *logger.Logger) WikiPageRepo {
	return wiki.NewWikiPageRepo(db, baseLog)
}
func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return notification.NewNotificationRepo(db, baseLog)
}

// Set bundles every repository for wiring.
type Set struct {
	Projects      ProjectRepo
	Applications  ApplicationRepo
	Capabilities  CapabilityRepo
	BusinessRules BusinessRuleRepo
	WikiPages     WikiPageRepo
	Users         UserRepo
	Notifications NotificationRepo
}

func NewSet(db *gorm.DB, baseLog *logger.Logger) Set {
	return Set{
		Projects:      NewProjectRepo(db, baseLog),
		Applications:  NewApplicationRepo(db, baseLog),
		Capabilities:  NewCapabilityRepo(db, baseLog),
		BusinessRules: NewBusinessRuleRepo(db, baseLog),
		WikiPages:     NewWikiPageRepo(db, baseLog),
		Users:         NewUserRepo(db, baseLog),
		Notifications: NewNotificationRepo(db, baseLog),
	}
}
