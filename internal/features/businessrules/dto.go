package businessrules

import (
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/cleanarch-backend/internal/domain"
)

type BusinessRuleDTO struct {
	ID             uuid.UUID  `json:"id"`
	CapabilityID   uuid.UUID  `json:"capabilityId"`
	Code           string     `json:"code"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	Status         string     `json:"status"`
	Implementation string     `json:"implementation,omitempty"`
	Examples       []string   `json:"examples"`
	CreatedAt      time.Time  `json:"createdAt"`
	CreatedBy      string     `json:"createdBy,omitempty"`
	ModifiedAt     *time.Time `json:"modifiedAt,omitempty"`
	ModifiedBy     string     `json:"modifiedBy,omitempty"`
}

func toDTO(r *types.BusinessRule) BusinessRuleDTO {
	examples := make([]string, len(r.Examples))
	copy(examples, r.Examples)
	return BusinessRuleDTO{
		ID:             r.ID,
		CapabilityID:   r.CapabilityID,
		Code:           r.Code.String(),
		Name:           r.Name,
		Description:    r.Description,
		Type:           string(r.Type),
		Priority:       r.Priority.String(),
		Status:         string(r.Status),
		Implementation: r.Implementation,
		Examples:       examples,
		CreatedAt:      r.CreatedAt,
		CreatedBy:      r.CreatedBy,
		ModifiedAt:     r.ModifiedAt,
		ModifiedBy:     r.ModifiedBy,
	}
}
