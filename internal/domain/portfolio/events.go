package portfolio

import (
	"github.com/google/uuid"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
)

const (
	EventProjectCreated             = "ProjectCreated"
	EventProjectStatusChanged       = "ProjectStatusChanged"
	EventProjectDetailsUpdated      = "ProjectDetailsUpdated"
	EventApplicationAddedToProject  = "ApplicationAddedToProject"
	EventApplicationCreated         = "ApplicationCreated"
	EventApplicationStatusChanged   = "ApplicationStatusChanged"
	EventApplicationVersionUpgraded = "ApplicationVersionUpgraded"
	EventCapabilityCreated          = "CapabilityCreated"
	EventCapabilityStatusChanged    = "CapabilityStatusChanged"
	EventBusinessRuleCreated        = "BusinessRuleCreated"
	EventBusinessRuleStatusChanged  = "BusinessRuleStatusChanged"
)

type ProjectCreated struct {
	domainagg.EventMeta
	ProjectID uuid.UUID `json:"projectId"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
}

func (ProjectCreated) EventName() string        { return EventProjectCreated }
func (e ProjectCreated) AggregateID() uuid.UUID { return e.ProjectID }

type ProjectStatusChanged struct {
	domainagg.EventMeta
	ProjectID uuid.UUID     `json:"projectId"`
	Name      string        `json:"name"`
	OldStatus ProjectStatus `json:"oldStatus"`
	NewStatus ProjectStatus `json:"newStatus"`
}

func (ProjectStatusChanged) EventName() string        { return EventProjectStatusChanged }
func (e ProjectStatusChanged) AggregateID() uuid.UUID { return e.ProjectID }

type ProjectDetailsUpdated struct {
	domainagg.EventMeta
	ProjectID uuid.UUID `json:"projectId"`
	Name      string    `json:"name"`
}

func (ProjectDetailsUpdated) EventName() string        { return EventProjectDetailsUpdated }
func (e ProjectDetailsUpdated) AggregateID() uuid.UUID { return e.ProjectID }

type ApplicationAddedToProject struct {
	domainagg.EventMeta
	ProjectID       uuid.UUID `json:"projectId"`
	ApplicationID   uuid.UUID `json:"applicationId"`
	ApplicationName string    `json:"applicationName"`
}

func (ApplicationAddedToProject) EventName() string        { return EventApplicationAddedToProject }
func (e ApplicationAddedToProject) AggregateID() uuid.UUID { return e.ProjectID }

type ApplicationCreated struct {
	domainagg.EventMeta
	ApplicationID uuid.UUID `json:"applicationId"`
	ProjectID     uuid.UUID `json:"projectId"`
	Name          string    `json:"name"`
}

func (ApplicationCreated) EventName() string        { return EventApplicationCreated }
func (e ApplicationCreated) AggregateID() uuid.UUID { return e.ApplicationID }

type ApplicationStatusChanged struct {
	domainagg.EventMeta
	ApplicationID uuid.UUID         `json:"applicationId"`
	OldStatus     ApplicationStatus `json:"oldStatus"`
	NewStatus     ApplicationStatus `json:"newStatus"`
}

func (ApplicationStatusChanged) EventName() string        { return EventApplicationStatusChanged }
func (e ApplicationStatusChanged) AggregateID() uuid.UUID { return e.ApplicationID }

type ApplicationVersionUpgraded struct {
	domainagg.EventMeta
	ApplicationID uuid.UUID `json:"applicationId"`
	From          string    `json:"from"`
	To            string    `json:"to"`
}

func (ApplicationVersionUpgraded) EventName() string        { return EventApplicationVersionUpgraded }
func (e ApplicationVersionUpgraded) AggregateID() uuid.UUID { return e.ApplicationID }

type CapabilityCreated struct {
	domainagg.EventMeta
	CapabilityID  uuid.UUID `json:"capabilityId"`
	ApplicationID uuid.UUID `json:"applicationId"`
	Name          string    `json:"name"`
}

func (CapabilityCreated) EventName() string        { return EventCapabilityCreated }
func (e CapabilityCreated) AggregateID() uuid.UUID { return e.CapabilityID }

type CapabilityStatusChanged struct {
	domainagg.EventMeta
	CapabilityID uuid.UUID        `json:"capabilityId"`
	Name         string           `json:"name"`
	OldStatus    CapabilityStatus `json:"oldStatus"`
	NewStatus    CapabilityStatus `json:"newStatus"`
}

func (CapabilityStatusChanged) EventName() string        { return EventCapabilityStatusChanged }
func (e CapabilityStatusChanged) AggregateID() uuid.UUID { return e.CapabilityID }

type BusinessRuleCreated struct {
	domainagg.EventMeta
	BusinessRuleID uuid.UUID `json:"businessRuleId"`
	CapabilityID   uuid.UUID `json:"capabilityId"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
}

func (BusinessRuleCreated) EventName() string        { return EventBusinessRuleCreated }
func (e BusinessRuleCreated) AggregateID() uuid.UUID { return e.BusinessRuleID }

type BusinessRuleStatusChanged struct {
	domainagg.EventMeta
	BusinessRuleID uuid.UUID          `json:"businessRuleId"`
	Code           string             `json:"code"`
	OldStatus      BusinessRuleStatus `json:"oldStatus"`
	NewStatus      BusinessRuleStatus `json:"newStatus"`
}

func (BusinessRuleStatusChanged) EventName() string        { return EventBusinessRuleStatusChanged }
func (e BusinessRuleStatusChanged) AggregateID() uuid.UUID { return e.BusinessRuleID }
