package portfolio

import (
	"strings"
	"time"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/valueobject"
)

const MaxTechnologyStackLength = 500

type Application struct {
	ID              uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID       uuid.UUID                      `gorm:"type:uuid;not null;index" json:"projectId"`
	Name            string                         `gorm:"size:200;not null" json:"name"`
	Description     string                         `gorm:"size:2000;not null" json:"description"`
	Type            ApplicationType                `gorm:"size:20;not null" json:"type"`
	Version         valueobject.ApplicationVersion `gorm:"type:varchar(50);not null" json:"version"`
	Status          ApplicationStatus              `gorm:"size:20;not null;index" json:"status"`
	TechnologyStack string                         `gorm:"size:500" json:"technologyStack,omitempty"`
	StartDate       *time.Time                     `json:"startDate,omitempty"`
	EndDate         *time.Time                     `json:"endDate,omitempty"`
	Capabilities    []*Capability                  `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE" json:"capabilities,omitempty"`

	domainagg.Audit         `gorm:"embedded"`
	domainagg.EventRecorder `gorm:"-" json:"-"`
}

func (Application) TableName() string { return "applications" }

func NewApplication(projectID uuid.UUID, name, description string, appType ApplicationType, version valueobject.ApplicationVersion) (*Application, error) {
	const op = "application.create"
	if err := domainagg.RequireID(op, "Project ID", projectID); err != nil {
		return nil, err
	}
	name, err := domainagg.RequireText(op, "Application name", name, MaxNameLength)
	if err != nil {
		return nil, err
	}
	description, err = domainagg.RequireText(op, "Application description", description, MaxDescriptionLength)
	if err != nil {
		return nil, err
	}
	if appType == "" {
		appType = ApplicationTypeNew
	}
	if version.IsZero() {
		version = valueobject.InitialVersion()
	}

	a := &Application{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Name:        name,
		Description: description,
		Type:        appType,
		Version:     version,
		Status:      ApplicationStatusPlanning,
	}
	a.Raise(ApplicationCreated{EventMeta: domainagg.NewEventMeta(), ApplicationID: a.ID, ProjectID: projectID, Name: name})
	return a, nil
}

func (a *Application) ChangeStatus(status ApplicationStatus) error {
	if a.Status == status {
		return domainagg.Validationf("application.change_status", "Application is already in %s status", status)
	}
	old := a.Status
	a.Status = status
	a.Raise(ApplicationStatusChanged{EventMeta: domainagg.NewEventMeta(), ApplicationID: a.ID, OldStatus: old, NewStatus: status})
	return nil
}

// UpgradeVersion only moves forward.
func (a *Application) UpgradeVersion(next valueobject.ApplicationVersion) error {
	if !next.GreaterThan(a.Version) {
		return domainagg.Validationf("application.upgrade_version", "New version %s must be greater than current version %s", next, a.Version)
	}
	from := a.Version.String()
	a.Version = next
	a.Raise(ApplicationVersionUpgraded{EventMeta: domainagg.NewEventMeta(), ApplicationID: a.ID, From: from, To: next.String()})
	return nil
}

func (a *Application) SetTechnologyStack(stack string) error {
	stack, err := domainagg.OptionalText("application.technology_stack", "Technology stack", stack, MaxTechnologyStackLength)
	if err != nil {
		return err
	}
	a.TechnologyStack = stack
	return nil
}

func (a *Application) SetDates(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return domainagg.Validation("application.dates", "End date cannot be before start date")
	}
	start = start.UTC()
	a.StartDate = &start
	a.EndDate = end
	return nil
}

func (a *Application) UpdateDetails(name, description string) error {
	const op = "application.update"
	name, err := domainagg.RequireText(op, "Application name", name, MaxNameLength)
	if err != nil {
		return err
	}
	description, err = domainagg.RequireText(op, "Application description", description, MaxDescriptionLength)
	if err != nil {
		return err
	}
	a.Name = name
	a.Description = description
	return nil
}

func (a *Application) AddCapability(c *Capability) error {
	const op = "application.add_capability"
	if c == nil {
		return domainagg.Validation(op, "Capability cannot be null")
	}
	for _, existing := range a.Capabilities {
		if existing.ID == c.ID || strings.EqualFold(existing.Name, c.Name) {
			return domainagg.Validation(op, "Capability already exists in this application")
		}
	}
	c.ApplicationID = a.ID
	a.Capabilities = append(a.Capabilities, c)
	return nil
}

func (a *Application) RemoveCapability(capabilityID uuid.UUID) error {
	for i, existing := range a.Capabilities {
		if existing.ID == capabilityID {
			a.Capabilities = append(a.Capabilities[:i], a.Capabilities[i+1:]...)
			return nil
		}
	}
	return domainagg.NotFound("application.remove_capability", "Capability not found in this application")
}
