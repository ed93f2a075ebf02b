package portfolio

import (
	"strings"
	"time"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/valueobject"
)

const (
	MaxNameLength        = 200
	MaxDescriptionLength = 2000
	MaxManagerLength     = 100
)

// Project is the root of the portfolio: it owns applications, which own
// capabilities, which own business rules.
type Project struct {
	ID             uuid.UUID               `gorm:"type:uuid;primaryKey" json:"id"`
	Code           valueobject.ProjectCode `gorm:"type:varchar(30);uniqueIndex;not null" json:"code"`
	Name           string                  `gorm:"size:200;not null" json:"name"`
	Description    string                  `gorm:"size:2000;not null" json:"description"`
	Status         ProjectStatus           `gorm:"size:20;not null;index" json:"status"`
	StartDate      time.Time               `gorm:"not null" json:"startDate"`
	PlannedEndDate *time.Time              `json:"plannedEndDate,omitempty"`
	ActualEndDate  *time.Time              `json:"actualEndDate,omitempty"`
	ProjectManager string                  `gorm:"size:100;not null" json:"projectManager"`
	Budget         *valueobject.Money      `gorm:"type:varchar(64)" json:"budget,omitempty"`
	Applications   []*Application          `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"applications,omitempty"`

	domainagg.Audit         `gorm:"embedded"`
	domainagg.EventRecorder `gorm:"-" json:"-"`
}

func (Project) TableName() string { return "projects" }

func NewProject(code valueobject.ProjectCode, name, description string, startDate time.Time, manager string) (*Project, error) {
	const op = "project.create"
	if code.IsZero() {
		return nil, domainagg.Validation(op, "Project code cannot be empty")
	}
	name, err := domainagg.RequireText(op, "Project name", name, MaxNameLength)
	if err != nil {
		return nil, err
	}
	description, err = domainagg.RequireText(op, "Project description", description, MaxDescriptionLength)
	if err != nil {
		return nil, err
	}
	manager, err = domainagg.RequireText(op, "Project manager", manager, MaxManagerLength)
	if err != nil {
		return nil, err
	}
	if startDate.IsZero() {
		return nil, domainagg.Validation(op, "Project start date is required")
	}

	p := &Project{
		ID:             uuid.New(),
		Code:           code,
		Name:           name,
		Description:    description,
		Status:         ProjectStatusPlanning,
		StartDate:      startDate.UTC(),
		ProjectManager: manager,
	}
	p.Raise(ProjectCreated{EventMeta: domainagg.NewEventMeta(), ProjectID: p.ID, Code: code.String(), Name: name})
	return p, nil
}

func (p *Project) ChangeStatus(status ProjectStatus) error {
	if p.Status == status {
		return domainagg.Validationf("project.change_status", "Project is already in %s status", status)
	}
	p.transition(status)
	return nil
}

func (p *Project) transition(status ProjectStatus) {
	old := p.Status
	p.Status = status
	p.Raise(ProjectStatusChanged{
		EventMeta: domainagg.NewEventMeta(),
		ProjectID: p.ID,
		Name:      p.Name,
		OldStatus: old,
		NewStatus: status,
	})
}

func (p *Project) SetPlannedEndDate(end time.Time) error {
	if end.Before(p.StartDate) {
		return domainagg.Validation("project.planned_end", "Planned end date cannot be before start date")
	}
	end = end.UTC()
	p.PlannedEndDate = &end
	return nil
}

func (p *Project) Complete(actualEnd time.Time) error {
	const op = "project.complete"
	if p.Status == ProjectStatusCompleted {
		return domainagg.Validationf(op, "Project is already in %s status", ProjectStatusCompleted)
	}
	if p.Status == ProjectStatusCancelled {
		return domainagg.Validation(op, "A cancelled project cannot be completed")
	}
	if actualEnd.Before(p.StartDate) {
		return domainagg.Validation(op, "Actual end date cannot be before start date")
	}
	actualEnd = actualEnd.UTC()
	p.ActualEndDate = &actualEnd
	p.transition(ProjectStatusCompleted)
	return nil
}

func (p *Project) Cancel() error {
	if p.Status == ProjectStatusCancelled {
		return domainagg.Validationf("project.cancel", "Project is already in %s status", ProjectStatusCancelled)
	}
	p.transition(ProjectStatusCancelled)
	return nil
}

func (p *Project) UpdateDetails(name, description string) error {
	const op = "project.update"
	name, err := domainagg.RequireText(op, "Project name", name, MaxNameLength)
	if err != nil {
		return err
	}
	description, err = domainagg.RequireText(op, "Project description", description, MaxDescriptionLength)
	if err != nil {
		return err
	}
	p.Name = name
	p.Description = description
	p.Raise(ProjectDetailsUpdated{EventMeta: domainagg.NewEventMeta(), ProjectID: p.ID, Name: name})
	return nil
}

func (p *Project) SetBudget(budget valueobject.Money) {
	p.Budget = &budget
}

// AddApplication attaches app to the project. Applications are unique by id and
// by case-insensitive name within a project.
func (p *Project) AddApplication(app *Application) error {
	const op = "project.add_application"
	if app == nil {
		return domainagg.Validation(op, "Application cannot be null")
	}
	for _, existing := range p.Applications {
		if existing.ID == app.ID || strings.EqualFold(existing.Name, app.Name) {
			return domainagg.Validation(op, "Application already exists in this project")
		}
	}
	app.ProjectID = p.ID
	p.Applications = append(p.Applications, app)
	p.Raise(ApplicationAddedToProject{
		EventMeta:       domainagg.NewEventMeta(),
		ProjectID:       p.ID,
		ApplicationID:   app.ID,
		ApplicationName: app.Name,
	})
	return nil
}

func (p *Project) RemoveApplication(applicationID uuid.UUID) error {
	for i, existing := range p.Applications {
		if existing.ID == applicationID {
			p.Applications = append(p.Applications[:i], p.Applications[i+1:]...)
			return nil
		}
	}
	return domainagg.NotFound("project.remove_application", "Application not found in this project")
}

func (p *Project) IsActive() bool {
	return p.Status == ProjectStatusInProgress
}
