package portfolio

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/valueobject"
)

const (
	MaxImplementationLength = 4000
	MaxExampleLength        = 1000
)

type BusinessRule struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	CapabilityID   uuid.UUID                   `gorm:"type:uuid;not null;index" json:"capabilityId"`
	Code           valueobject.RuleCode        `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Name           string                      `gorm:"size:200;not null" json:"name"`
	Description    string                      `gorm:"size:2000;not null" json:"description"`
	Type           BusinessRuleType            `gorm:"size:30;not null" json:"type"`
	Priority       Priority                    `gorm:"not null" json:"priority"`
	Status         BusinessRuleStatus          `gorm:"size:20;not null;index" json:"status"`
	Implementation string                      `gorm:"size:4000" json:"implementation,omitempty"`
	Examples       datatypes.JSONSlice[string] `json:"examples"`

	domainagg.Audit         `gorm:"embedded"`
	domainagg.EventRecorder `gorm:"-" json:"-"`
}

func (BusinessRule) TableName() string { return "business_rules" }

func NewBusinessRule(capabilityID uuid.UUID, code valueobject.RuleCode, name, description string, ruleType BusinessRuleType, priority Priority) (*BusinessRule, error) {
	const op = "business_rule.create"
	name, err := domainagg.RequireText(op, "Business rule name", name, MaxNameLength)
	if err != nil {
		return nil, err
	}
	description, err = domainagg.RequireText(op, "Business rule description", description, MaxDescriptionLength)
	if err != nil {
		return nil, err
	}
	if err := domainagg.RequireID(op, "Capability ID", capabilityID); err != nil {
		return nil, err
	}
	if code.IsZero() {
		return nil, domainagg.Validation(op, "Rule code cannot be empty")
	}
	if ruleType == "" {
		ruleType = BusinessRuleTypeValidation
	}
	if !priority.Valid() {
		priority = PriorityMedium
	}

	r := &BusinessRule{
		ID:           uuid.New(),
		CapabilityID: capabilityID,
		Code:         code,
		Name:         name,
		Description:  description,
		Type:         ruleType,
		Priority:     priority,
		Status:       BusinessRuleStatusActive,
		Examples:     datatypes.JSONSlice[string]{},
	}
	r.Raise(BusinessRuleCreated{EventMeta: domainagg.NewEventMeta(), BusinessRuleID: r.ID, CapabilityID: capabilityID, Code: code.String(), Name: name})
	return r, nil
}

func (r *BusinessRule) Activate() error   { return r.setStatus(BusinessRuleStatusActive) }
func (r *BusinessRule) Deactivate() error { return r.setStatus(BusinessRuleStatusInactive) }
func (r *BusinessRule) Deprecate() error  { return r.setStatus(BusinessRuleStatusDeprecated) }

func (r *BusinessRule) setStatus(status BusinessRuleStatus) error {
	if r.Status == status {
		return domainagg.Validationf("business_rule.change_status", "Business rule is already in %s status", status)
	}
	old := r.Status
	r.Status = status
	r.Raise(BusinessRuleStatusChanged{
		EventMeta:      domainagg.NewEventMeta(),
		BusinessRuleID: r.ID,
		Code:           r.Code.String(),
		OldStatus:      old,
		NewStatus:      status,
	})
	return nil
}

func (r *BusinessRule) SetImplementation(implementation string) error {
	implementation, err := domainagg.RequireText("business_rule.implementation", "Implementation", implementation, MaxImplementationLength)
	if err != nil {
		return err
	}
	r.Implementation = implementation
	return nil
}

func (r *BusinessRule) AddExample(example string) error {
	example, err := domainagg.RequireText("business_rule.example", "Example", example, MaxExampleLength)
	if err != nil {
		return err
	}
	r.Examples = append(r.Examples, example)
	return nil
}

func (r *BusinessRule) UpdateDetails(name, description string, ruleType BusinessRuleType, priority Priority) error {
	const op = "business_rule.update"
	name, err := domainagg.RequireText(op, "Business rule name", name, MaxNameLength)
	if err != nil {
		return err
	}
	description, err = domainagg.RequireText(op, "Business rule description", description, MaxDescriptionLength)
	if err != nil {
		return err
	}
	if !priority.Valid() {
		return domainagg.Validation(op, "Business rule priority is invalid")
	}
	r.Name = name
	r.Description = description
	if ruleType != "" {
		r.Type = ruleType
	}
	r.Priority = priority
	return nil
}
