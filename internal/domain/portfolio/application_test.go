package portfolio

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/valueobject"
)

func TestNewApplication(t *testing.T) {
	projectID := uuid.New()
	app, err := NewApplication(projectID, "Billing", "Invoices", "", valueobject.ApplicationVersion{})
	require.NoError(t, err)
	assert.Equal(t, ApplicationTypeNew, app.Type)
	assert.Equal(t, "1.0.0", app.Version.String())
	assert.Equal(t, ApplicationStatusPlanning, app.Status)
	require.Len(t, app.PendingEvents(), 1)
	assert.Equal(t, EventApplicationCreated, app.PendingEvents()[0].EventName())

	_, err = NewApplication(projectID, "  ", "Invoices", ApplicationTypeNew, valueobject.InitialVersion())
	require.Error(t, err)
	assert.Contains(t, domainagg.MessageOf(err), "name")

	_, err = NewApplication(uuid.Nil, "Billing", "Invoices", ApplicationTypeNew, valueobject.InitialVersion())
	assert.Error(t, err)
}

func TestApplicationUpgradeVersion(t *testing.T) {
	app, err := NewApplication(uuid.New(), "Billing", "Invoices", ApplicationTypeNew, valueobject.InitialVersion())
	require.NoError(t, err)
	app.ClearEvents()

	same, err := valueobject.NewApplicationVersion("1.0.0")
	require.NoError(t, err)
	assert.Error(t, app.UpgradeVersion(same))

	require.NoError(t, app.UpgradeVersion(app.Version.IncrementMinor()))
	assert.Equal(t, "1.1.0", app.Version.String())
	require.Len(t, app.PendingEvents(), 1)
}

func TestApplicationStatusAndStack(t *testing.T) {
	app, err := NewApplication(uuid.New(), "Billing", "Invoices", ApplicationTypeLegacy, valueobject.InitialVersion())
	require.NoError(t, err)

	assert.Error(t, app.ChangeStatus(ApplicationStatusPlanning))
	require.NoError(t, app.ChangeStatus(ApplicationStatusDevelopment))

	require.NoError(t, app.SetTechnologyStack("Go, Postgres"))
	assert.Equal(t, "Go, Postgres", app.TechnologyStack)

	start := projectStart
	before := start.AddDate(0, 0, -1)
	assert.Error(t, app.SetDates(start, &before))
}
