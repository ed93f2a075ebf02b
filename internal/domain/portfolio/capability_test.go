package portfolio

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/valueobject"
)

func TestNewCapability(t *testing.T) {
	appID := uuid.New()
	c, err := NewCapability(appID, "Login", "User login", CapabilityCategorySecurity, PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, CapabilityStatusPlanned, c.Status)
	require.Len(t, c.PendingEvents(), 1)
	created := c.PendingEvents()[0].(CapabilityCreated)
	assert.Equal(t, appID, created.ApplicationID)

	_, err = NewCapability(appID, "", "desc", CapabilityCategoryFeature, PriorityLow)
	require.Error(t, err)
	assert.Equal(t, "Capability name cannot be empty", domainagg.MessageOf(err))

	_, err = NewCapability(appID, strings.Repeat("x", 201), "desc", CapabilityCategoryFeature, PriorityLow)
	assert.Error(t, err)

	_, err = NewCapability(uuid.Nil, "Login", "desc", CapabilityCategoryFeature, PriorityLow)
	require.Error(t, err)
	assert.Equal(t, "Application ID cannot be empty", domainagg.MessageOf(err))
}

func TestCapabilityLifecycle(t *testing.T) {
	c, err := NewCapability(uuid.New(), "Login", "User login", CapabilityCategorySecurity, PriorityHigh)
	require.NoError(t, err)

	err = c.ChangeStatus(CapabilityStatusPlanned)
	require.Error(t, err)
	assert.Equal(t, "Capability is already in Planned status", domainagg.MessageOf(err))

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, c.Complete(now))
	assert.Equal(t, CapabilityStatusCompleted, c.Status)
	require.NotNil(t, c.EndDate)
	assert.True(t, c.EndDate.Equal(now))
}

func TestCapabilityBusinessRules(t *testing.T) {
	c, err := NewCapability(uuid.New(), "Login", "User login", CapabilityCategorySecurity, PriorityHigh)
	require.NoError(t, err)
	code, err := valueobject.NewRuleCode("BR-SEC-001")
	require.NoError(t, err)
	rule, err := NewBusinessRule(c.ID, code, "Lockout", "Lock after 5 attempts", BusinessRuleTypeAuthorization, PriorityCritical)
	require.NoError(t, err)

	require.NoError(t, c.AddBusinessRule(rule))
	err = c.AddBusinessRule(rule)
	require.Error(t, err)
	assert.Equal(t, "Business rule already exists in this capability", domainagg.MessageOf(err))

	require.NoError(t, c.RemoveBusinessRule(rule.ID))
	err = c.RemoveBusinessRule(rule.ID)
	require.Error(t, err)
	assert.Equal(t, "Business rule not found in this capability", domainagg.MessageOf(err))
}
