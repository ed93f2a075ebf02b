package applications

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	types "github.com/yungbote/cleanarch-backend/internal/domain"
)

type ApplicationDTO struct {
	ID              uuid.UUID  `json:"id"`
	ProjectID       uuid.UUID  `json:"projectId"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Type            string     `json:"type"`
	Version         string     `json:"version"`
	Status          string     `json:"status"`
	TechnologyStack string     `json:"technologyStack,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	CapabilityCount int        `json:"capabilityCount"`
	CreatedAt       time.Time  `json:"createdAt"`
	CreatedBy       string     `json:"createdBy,omitempty"`
	ModifiedAt      *time.Time `json:"modifiedAt,omitempty"`
	ModifiedBy      string     `json:"modifiedBy,omitempty"`
}

type CapabilitySummary struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Category           string    `json:"category"`
	Priority           string    `json:"priority"`
	Status             string    `json:"status"`
	BusinessRulesCount int       `json:"businessRulesCount"`
}

type ApplicationDetailDTO struct {
	ApplicationDTO
	Capabilities []CapabilitySummary `json:"capabilities"`
}

func toDTO(a *types.Application) ApplicationDTO {
	return ApplicationDTO{
		ID:              a.ID,
		ProjectID:       a.ProjectID,
		Name:            a.Name,
		Description:     a.Description,
		Type:            string(a.Type),
		Version:         a.Version.String(),
		Status:          string(a.Status),
		TechnologyStack: a.TechnologyStack,
		StartDate:       a.StartDate,
		EndDate:         a.EndDate,
		CapabilityCount: len(a.Capabilities),
		CreatedAt:       a.CreatedAt,
		CreatedBy:       a.CreatedBy,
		ModifiedAt:      a.ModifiedAt,
		ModifiedBy:      a.ModifiedBy,
	}
}

func toDetail(a *types.Application) ApplicationDetailDTO {
	return ApplicationDetailDTO{
		ApplicationDTO: toDTO(a),
		Capabilities: lo.Map(a.Capabilities, func(c *types.Capability, _ int) CapabilitySummary {
			return CapabilitySummary{
				ID:                 c.ID,
				Name:               c.Name,
				Category:           string(c.Category),
				Priority:           c.Priority.String(),
				Status:             string(c.Status),
				BusinessRulesCount: len(c.BusinessRules),
			}
		}),
	}
}
