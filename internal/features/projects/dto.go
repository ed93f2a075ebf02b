package projects

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	types "github.com/yungbote/cleanarch-backend/internal/domain"
	"github.com/yungbote/cleanarch-backend/internal/domain/valueobject"
)

type ProjectListItem struct {
	ID               uuid.UUID  `json:"id"`
	Code             string     `json:"code"`
	Name             string     `json:"name"`
	Status           string     `json:"status"`
	StartDate        time.Time  `json:"startDate"`
	PlannedEndDate   *time.Time `json:"plannedEndDate,omitempty"`
	ProjectManager   string     `json:"projectManager"`
	ApplicationCount int        `json:"applicationCount"`
}

type ApplicationSummary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Version string    `json:"version"`
	Status  string    `json:"status"`
}

type ProjectDTO struct {
	ID               uuid.UUID            `json:"id"`
	Code             string               `json:"code"`
	Name             string               `json:"name"`
	Description      string               `json:"description"`
	Status           string               `json:"status"`
	StartDate        time.Time            `json:"startDate"`
	PlannedEndDate   *time.Time           `json:"plannedEndDate,omitempty"`
	ActualEndDate    *time.Time           `json:"actualEndDate,omitempty"`
	ProjectManager   string               `json:"projectManager"`
	Budget           *valueobject.Money   `json:"budget,omitempty"`
	ApplicationCount int                  `json:"applicationCount"`
	Applications     []ApplicationSummary `json:"applications"`
	CreatedAt        time.Time            `json:"createdAt"`
	CreatedBy        string               `json:"createdBy,omitempty"`
	ModifiedAt       *time.Time           `json:"modifiedAt,omitempty"`
	ModifiedBy       string               `json:"modifiedBy,omitempty"`
}

func toListItem(p *types.Project) ProjectListItem {
	return ProjectListItem{
		ID:               p.ID,
		Code:             p.Code.String(),
		Name:             p.Name,
		Status:           string(p.Status),
		StartDate:        p.StartDate,
		PlannedEndDate:   p.PlannedEndDate,
		ProjectManager:   p.ProjectManager,
		ApplicationCount: len(p.Applications),
	}
}

func toDTO(p *types.Project) ProjectDTO {
	return ProjectDTO{
		ID:               p.ID,
		Code:             p.Code.String(),
		Name:             p.Name,
		Description:      p.Description,
		Status:           string(p.Status),
		StartDate:        p.StartDate,
		PlannedEndDate:   p.PlannedEndDate,
		ActualEndDate:    p.ActualEndDate,
		ProjectManager:   p.ProjectManager,
		Budget:           p.Budget,
		ApplicationCount: len(p.Applications),
		Applications: lo.Map(p.Applications, func(a *types.Application, _ int) ApplicationSummary {
			return ApplicationSummary{
				ID:      a.ID,
				Name:    a.Name,
				Type:    string(a.Type),
				Version: a.Version.String(),
				Status:  string(a.Status),
			}
		}),
		CreatedAt:  p.CreatedAt,
		CreatedBy:  p.CreatedBy,
		ModifiedAt: p.ModifiedAt,
		ModifiedBy: p.ModifiedBy,
	}
}
