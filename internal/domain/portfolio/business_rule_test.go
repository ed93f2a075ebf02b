package portfolio

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/valueobject"
)

func newTestRule(t *testing.T) *BusinessRule {
	t.Helper()
	code, err := valueobject.NewRuleCode("br-val-001")
	require.NoError(t, err)
	r, err := NewBusinessRule(uuid.New(), code, "Email format", "Emails must be valid", BusinessRuleTypeValidation, PriorityHigh)
	require.NoError(t, err)
	return r
}

func TestNewBusinessRule(t *testing.T) {
	r := newTestRule(t)
	assert.Equal(t, BusinessRuleStatusActive, r.Status)
	assert.Equal(t, "BR-VAL-001", r.Code.String())
	require.Len(t, r.PendingEvents(), 1)
	assert.Equal(t, EventBusinessRuleCreated, r.PendingEvents()[0].EventName())

	code, err := valueobject.NewRuleCode("br-val-002")
	require.NoError(t, err)
	_, err = NewBusinessRule(uuid.New(), code, " ", "desc", BusinessRuleTypeValidation, PriorityLow)
	require.Error(t, err)
	assert.Contains(t, domainagg.MessageOf(err), "name")

	_, err = NewBusinessRule(uuid.Nil, code, "n", "desc", BusinessRuleTypeValidation, PriorityLow)
	require.Error(t, err)
	assert.Equal(t, "Capability ID cannot be empty", domainagg.MessageOf(err))
}

func TestBusinessRuleStatusTransitions(t *testing.T) {
	r := newTestRule(t)
	r.ClearEvents()

	assert.Error(t, r.Activate())
	require.NoError(t, r.Deactivate())
	assert.Error(t, r.Deactivate())
	require.NoError(t, r.Deprecate())
	require.NoError(t, r.Activate())

	events := r.PendingEvents()
	require.Len(t, events, 3)
	last := events[2].(BusinessRuleStatusChanged)
	assert.Equal(t, BusinessRuleStatusDeprecated, last.OldStatus)
	assert.Equal(t, BusinessRuleStatusActive, last.NewStatus)
}

func TestBusinessRuleExamplesAndImplementation(t *testing.T) {
	r := newTestRule(t)

	assert.Error(t, r.AddExample(" "))
	assert.Error(t, r.AddExample(strings.Repeat("e", MaxExampleLength+1)))
	require.NoError(t, r.AddExample("a@b.co is valid"))
	assert.Equal(t, []string{"a@b.co is valid"}, []string(r.Examples))

	assert.Error(t, r.SetImplementation(""))
	assert.Error(t, r.SetImplementation(strings.Repeat("i", MaxImplementationLength+1)))
	require.NoError(t, r.SetImplementation("regexp match"))
}

func TestParseEnums(t *testing.T) {
	s, err := ParseProjectStatus("inprogress")
	require.NoError(t, err)
	assert.Equal(t, ProjectStatusInProgress, s)

	s, err = ParseProjectStatus("4")
	require.NoError(t, err)
	assert.Equal(t, ProjectStatusCompleted, s)

	_, err = ParseProjectStatus("Done")
	assert.Error(t, err)

	p, err := ParsePriority("critical")
	require.NoError(t, err)
	assert.Equal(t, PriorityCritical, p)
	assert.True(t, PriorityCritical > PriorityLow)

	_, err = ParsePriority("7")
	assert.Error(t, err)
}
