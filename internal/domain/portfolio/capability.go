package portfolio

import (
	"time"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
)

type Capability struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID          `gorm:"type:uuid;not null;index" json:"applicationId"`
	Name          string             `gorm:"size:200;not null" json:"name"`
	Description   string             `gorm:"size:2000;not null" json:"description"`
	Category      CapabilityCategory `gorm:"size:30;not null" json:"category"`
	Priority      Priority           `gorm:"not null" json:"priority"`
	Status        CapabilityStatus   `gorm:"size:20;not null;index" json:"status"`
	StartDate     *time.Time         `json:"startDate,omitempty"`
	EndDate       *time.Time         `json:"endDate,omitempty"`
	BusinessRules []*BusinessRule    `gorm:"foreignKey:CapabilityID;constraint:OnDelete:CASCADE" json:"businessRules,omitempty"`

	domainagg.Audit         `gorm:"embedded"`
	domainagg.EventRecorder `gorm:"-" json:"-"`
}

func (Capability) TableName() string { return "capabilities" }

func NewCapability(applicationID uuid.UUID, name, description string, category CapabilityCategory, priority Priority) (*Capability, error) {
	const op = "capability.create"
	name, err := domainagg.RequireText(op, "Capability name", name, MaxNameLength)
	if err != nil {
		return nil, err
	}
	description, err = domainagg.RequireText(op, "Capability description", description, MaxDescriptionLength)
	if err != nil {
		return nil, err
	}
	if err := domainagg.RequireID(op, "Application ID", applicationID); err != nil {
		return nil, err
	}
	if category == "" {
		category = CapabilityCategoryFeature
	}
	if !priority.Valid() {
		priority = PriorityMedium
	}

	c := &Capability{
		ID:            uuid.New(),
		ApplicationID: applicationID,
		Name:          name,
		Description:   description,
		Category:      category,
		Priority:      priority,
		Status:        CapabilityStatusPlanned,
	}
	c.Raise(CapabilityCreated{EventMeta: domainagg.NewEventMeta(), CapabilityID: c.ID, ApplicationID: applicationID, Name: name})
	return c, nil
}

func (c *Capability) ChangeStatus(status CapabilityStatus) error {
	if c.Status == status {
		return domainagg.Validationf("capability.change_status", "Capability is already in %s status", status)
	}
	old := c.Status
	c.Status = status
	c.Raise(CapabilityStatusChanged{EventMeta: domainagg.NewEventMeta(), CapabilityID: c.ID, Name: c.Name, OldStatus: old, NewStatus: status})
	return nil
}

// Complete marks the capability done and stamps the end date with now.
func (c *Capability) Complete(now time.Time) error {
	if err := c.ChangeStatus(CapabilityStatusCompleted); err != nil {
		return err
	}
	now = now.UTC()
	c.EndDate = &now
	return nil
}

func (c *Capability) SetDates(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return domainagg.Validation("capability.dates", "End date cannot be before start date")
	}
	start = start.UTC()
	c.StartDate = &start
	c.EndDate = end
	return nil
}

func (c *Capability) UpdateDetails(name, description string, category CapabilityCategory, priority Priority) error {
	const op = "capability.update"
	name, err := domainagg.RequireText(op, "Capability name", name, MaxNameLength)
	if err != nil {
		return err
	}
	description, err = domainagg.RequireText(op, "Capability description", description, MaxDescriptionLength)
	if err != nil {
		return err
	}
	if !priority.Valid() {
		return domainagg.Validation(op, "Capability priority is invalid")
	}
	c.Name = name
	c.Description = description
	if category != "" {
		c.Category = category
	}
	c.Priority = priority
	return nil
}

func (c *Capability) AddBusinessRule(rule *BusinessRule) error {
	const op = "capability.add_business_rule"
	if rule == nil {
		return domainagg.Validation(op, "Business rule cannot be null")
	}
	for _, existing := range c.BusinessRules {
		if existing.ID == rule.ID || existing.Code.String() == rule.Code.String() {
			return domainagg.Validation(op, "Business rule already exists in this capability")
		}
	}
	rule.CapabilityID = c.ID
	c.BusinessRules = append(c.BusinessRules, rule)
	return nil
}

func (c *Capability) RemoveBusinessRule(ruleID uuid.UUID) error {
	for i, existing := range c.BusinessRules {
		if existing.ID == ruleID {
			c.BusinessRules = append(c.BusinessRules[:i], c.BusinessRules[i+1:]...)
			return nil
		}
	}
	return domainagg.NotFound("capability.remove_business_rule", "Business rule not found in this capability")
}
