package capabilities

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	types "github.com/yungbote/cleanarch-backend/internal/domain"
)

type CapabilityDTO struct {
	ID                 uuid.UUID  `json:"id"`
	ApplicationID      uuid.UUID  `json:"applicationId"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	Category           string     `json:"category"`
	Priority           string     `json:"priority"`
	Status             string     `json:"status"`
	StartDate          *time.Time `json:"startDate,omitempty"`
	EndDate            *time.Time `json:"endDate,omitempty"`
	BusinessRulesCount int        `json:"businessRulesCount"`
	CreatedAt          time.Time  `json:"createdAt"`
	CreatedBy          string     `json:"createdBy,omitempty"`
	ModifiedAt         *time.Time `json:"modifiedAt,omitempty"`
	ModifiedBy         string     `json:"modifiedBy,omitempty"`
}

type RuleSummary struct {
	ID       uuid.UUID `json:"id"`
	Code     string    `json:"code"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Priority string    `json:"priority"`
	Status   string    `json:"status"`
}

type CapabilityDetailDTO struct {
	CapabilityDTO
	BusinessRules []RuleSummary `json:"businessRules"`
}

func toDTO(c *types.Capability) CapabilityDTO {
	return CapabilityDTO{
		ID:                 c.ID,
		ApplicationID:      c.ApplicationID,
		Name:               c.Name,
		Description:        c.Description,
		Category:           string(c.Category),
		Priority:           c.Priority.String(),
		Status:             string(c.Status),
		StartDate:          c.StartDate,
		EndDate:            c.EndDate,
		BusinessRulesCount: len(c.BusinessRules),
		CreatedAt:          c.CreatedAt,
		CreatedBy:          c.CreatedBy,
		ModifiedAt:         c.ModifiedAt,
		ModifiedBy:         c.ModifiedBy,
	}
}

func toDetail(c *types.Capability) CapabilityDetailDTO {
	return CapabilityDetailDTO{
		CapabilityDTO: toDTO(c),
		BusinessRules: lo.Map(c.BusinessRules, func(r *types.BusinessRule, _ int) RuleSummary {
			return RuleSummary{
				ID:       r.ID,
				Code:     r.Code.String(),
				Name:     r.Name,
				Type:     string(r.Type),
				Priority: r.Priority.String(),
				Status:   string(r.Status),
			}
		}),
	}
}
