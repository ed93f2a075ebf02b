package portfolio

import (
	"strconv"
	"strings"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
)

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "Planning"
	ProjectStatusInProgress ProjectStatus = "InProgress"
	ProjectStatusOnHold     ProjectStatus = "OnHold"
	ProjectStatusCompleted  ProjectStatus = "Completed"
	ProjectStatusCancelled  ProjectStatus = "Cancelled"
)

var ProjectStatuses = []ProjectStatus{
	ProjectStatusPlanning,
	ProjectStatusInProgress,
	ProjectStatusOnHold,
	ProjectStatusCompleted,
	ProjectStatusCancelled,
}

type ApplicationType string

const (
	ApplicationTypeNew      ApplicationType = "New"
	ApplicationTypeModified ApplicationType = "Modified"
	ApplicationTypeLegacy   ApplicationType = "Legacy"
)

var ApplicationTypes = []ApplicationType{ApplicationTypeNew, ApplicationTypeModified, ApplicationTypeLegacy}

type ApplicationStatus string

const (
	ApplicationStatusPlanning    ApplicationStatus = "Planning"
	ApplicationStatusDevelopment ApplicationStatus = "Development"
	ApplicationStatusTesting     ApplicationStatus = "Testing"
	ApplicationStatusProduction  ApplicationStatus = "Production"
	ApplicationStatusDeprecated  ApplicationStatus = "Deprecated"
)

var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPlanning,
	ApplicationStatusDevelopment,
	ApplicationStatusTesting,
	ApplicationStatusProduction,
	ApplicationStatusDeprecated,
}

type CapabilityCategory string

const (
	CapabilityCategoryFeature        CapabilityCategory = "Feature"
	CapabilityCategoryIntegration    CapabilityCategory = "Integration"
	CapabilityCategoryReport         CapabilityCategory = "Report"
	CapabilityCategoryAPI            CapabilityCategory = "API"
	CapabilityCategorySecurity       CapabilityCategory = "Security"
	CapabilityCategoryInfrastructure CapabilityCategory = "Infrastructure"
)

var CapabilityCategories = []CapabilityCategory{
	CapabilityCategoryFeature,
	CapabilityCategoryIntegration,
	CapabilityCategoryReport,
	CapabilityCategoryAPI,
	CapabilityCategorySecurity,
	CapabilityCategoryInfrastructure,
}

type CapabilityStatus string

const (
	CapabilityStatusPlanned    CapabilityStatus = "Planned"
	CapabilityStatusInProgress CapabilityStatus = "InProgress"
	CapabilityStatusCompleted  CapabilityStatus = "Completed"
	CapabilityStatusDeprecated CapabilityStatus = "Deprecated"
)

var CapabilityStatuses = []CapabilityStatus{
	CapabilityStatusPlanned,
	CapabilityStatusInProgress,
	CapabilityStatusCompleted,
	CapabilityStatusDeprecated,
}

type BusinessRuleType string

const (
	BusinessRuleTypeValidation         BusinessRuleType = "Validation"
	BusinessRuleTypeCalculation        BusinessRuleType = "Calculation"
	BusinessRuleTypeAuthorization      BusinessRuleType = "Authorization"
	BusinessRuleTypeWorkflow           BusinessRuleType = "Workflow"
	BusinessRuleTypeDataTransformation BusinessRuleType = "DataTransformation"
)

var BusinessRuleTypes = []BusinessRuleType{
	BusinessRuleTypeValidation,
	BusinessRuleTypeCalculation,
	BusinessRuleTypeAuthorization,
	BusinessRuleTypeWorkflow,
	BusinessRuleTypeDataTransformation,
}

type BusinessRuleStatus string

const (
	BusinessRuleStatusActive     BusinessRuleStatus = "Active"
	BusinessRuleStatusInactive   BusinessRuleStatus = "Inactive"
	BusinessRuleStatusDeprecated BusinessRuleStatus = "Deprecated"
)

var BusinessRuleStatuses = []BusinessRuleStatus{
	BusinessRuleStatusActive,
	BusinessRuleStatusInactive,
	BusinessRuleStatusDeprecated,
}

// Priority is ordered: Critical sorts above Low.
type Priority int

const (
	PriorityLow      Priority = 1
	PriorityMedium   Priority = 2
	PriorityHigh     Priority = 3
	PriorityCritical Priority = 4
)

var priorityNames = map[Priority]string{
	PriorityLow:      "Low",
	PriorityMedium:   "Medium",
	PriorityHigh:     "High",
	PriorityCritical: "Critical",
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return strconv.Itoa(int(p))
}

func (p Priority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

func (p Priority) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Priority) UnmarshalText(b []byte) error {
	parsed, err := ParsePriority(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func ParsePriority(raw string) (Priority, error) {
	raw = strings.TrimSpace(raw)
	for p, name := range priorityNames {
		if strings.EqualFold(name, raw) {
			return p, nil
		}
	}
	if n, err := strconv.Atoi(raw); err == nil && Priority(n).Valid() {
		return Priority(n), nil
	}
	return 0, domainagg.Validationf("portfolio.priority", "Invalid priority '%s'", raw)
}

func ParseProjectStatus(raw string) (ProjectStatus, error) {
	return parseEnum("Project status", raw, ProjectStatuses)
}

func ParseApplicationType(raw string) (ApplicationType, error) {
	return parseEnum("Application type", raw, ApplicationTypes)
}

func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	return parseEnum("Application status", raw, ApplicationStatuses)
}

func ParseCapabilityCategory(raw string) (CapabilityCategory, error) {
	return parseEnum("Capability category", raw, CapabilityCategories)
}

func ParseCapabilityStatus(raw string) (CapabilityStatus, error) {
	return parseEnum("Capability status", raw, CapabilityStatuses)
}

func ParseBusinessRuleType(raw string) (BusinessRuleType, error) {
	return parseEnum("Business rule type", raw, BusinessRuleTypes)
}

func ParseBusinessRuleStatus(raw string) (BusinessRuleStatus, error) {
	return parseEnum("Business rule status", raw, BusinessRuleStatuses)
}

// parseEnum matches raw case-insensitively, or as a 1-based ordinal.
func parseEnum[T ~string](label, raw string, values []T) (T, error) {
	raw = strings.TrimSpace(raw)
	for _, v := range values {
		if strings.EqualFold(string(v), raw) {
			return v, nil
		}
	}
	if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(values) {
		return values[n-1], nil
	}
	var zero T
	return zero, domainagg.Validationf("portfolio.enum", "Invalid %s '%s'", strings.ToLower(label), raw)
}
