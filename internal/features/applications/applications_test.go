package applications_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/features/applications"
	"github.com/yungbote/cleanarch-backend/internal/features/featuretest"
	"github.com/yungbote/cleanarch-backend/internal/features/projects"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

func setup(t *testing.T) (*featuretest.Harness, uuid.UUID) {
	t.Helper()
	h := featuretest.New(t)
	projects.Register(h.Mediator, h.Deps)
	applications.Register(h.Mediator, h.Deps)

	projectID, err := mediator.Send[projects.CreateProjectCommand, uuid.UUID](context.Background(), h.Mediator, projects.CreateProjectCommand{
		Code:           featuretest.Unique("APP"),
		Name:           "Platform",
		Description:    "Shared platform",
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ProjectManager: "Ana",
	})
	require.NoError(t, err)
	return h, projectID
}

func TestCreateApplicationAttachesToProject(t *testing.T) {
	h, projectID := setup(t)
	ctx := context.Background()

	id, err := mediator.Send[applications.CreateApplicationCommand, uuid.UUID](ctx, h.Mediator, applications.CreateApplicationCommand{
		ProjectID:       projectID,
		Name:            "Billing API",
		Description:     "Invoices",
		Type:            "Modified",
		TechnologyStack: "Go, Postgres",
	})
	require.NoError(t, err)

	got, err := mediator.Send[applications.GetApplicationByIDQuery, applications.ApplicationDetailDTO](ctx, h.Mediator, applications.GetApplicationByIDQuery{ID: id})
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", got.Version)
	assert.Equal(t, "Modified", got.Type)
	assert.Equal(t, "Planning", got.Status)
	assert.Empty(t, got.Capabilities)

	names := h.Events.Names()
	assert.Contains(t, names, portfolio.EventApplicationCreated)
	assert.Contains(t, names, portfolio.EventApplicationAddedToProject)

	project, err := mediator.Send[projects.GetProjectByIDQuery, projects.ProjectDTO](ctx, h.Mediator, projects.GetProjectByIDQuery{ID: projectID})
	require.NoError(t, err)
	assert.Equal(t, 1, project.ApplicationCount)

	_, err = mediator.Send[applications.CreateApplicationCommand, uuid.UUID](ctx, h.Mediator, applications.CreateApplicationCommand{
		ProjectID:   projectID,
		Name:        "billing api",
		Description: "Duplicate",
	})
	require.Error(t, err)
	assert.Equal(t, "Application already exists in this project", domainagg.MessageOf(err))
}

func TestCreateApplicationUnknownProject(t *testing.T) {
	h, _ := setup(t)
	_, err := mediator.Send[applications.CreateApplicationCommand, uuid.UUID](context.Background(), h.Mediator, applications.CreateApplicationCommand{
		ProjectID:   uuid.New(),
		Name:        "Orphan",
		Description: "No project",
	})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeNotFound))
}

func TestUpgradeVersion(t *testing.T) {
	h, projectID := setup(t)
	ctx := context.Background()
	id, err := mediator.Send[applications.CreateApplicationCommand, uuid.UUID](ctx, h.Mediator, applications.CreateApplicationCommand{
		ProjectID:   projectID,
		Name:        "Portal",
		Description: "Web",
		Version:     "2.1.0",
	})
	require.NoError(t, err)

	_, err = mediator.Send[applications.UpgradeApplicationVersionCommand, mediator.Unit](ctx, h.Mediator, applications.UpgradeApplicationVersionCommand{ID: id, Bump: "minor"})
	require.NoError(t, err)

	_, err = mediator.Send[applications.UpgradeApplicationVersionCommand, mediator.Unit](ctx, h.Mediator, applications.UpgradeApplicationVersionCommand{ID: id, Version: "2.0.0"})
	require.Error(t, err)
	assert.True(t, domainagg.IsCode(err, domainagg.CodeValidation))

	_, err = mediator.Send[applications.UpgradeApplicationVersionCommand, mediator.Unit](ctx, h.Mediator, applications.UpgradeApplicationVersionCommand{ID: id})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeValidation))

	got, err := mediator.Send[applications.GetApplicationByIDQuery, applications.ApplicationDetailDTO](ctx, h.Mediator, applications.GetApplicationByIDQuery{ID: id})
	require.NoError(t, err)
	assert.Equal(t, "2.2.0", got.Version)
}

func TestChangeStatusAndList(t *testing.T) {
	h, projectID := setup(t)
	ctx := context.Background()
	id, err := mediator.Send[applications.CreateApplicationCommand, uuid.UUID](ctx, h.Mediator, applications.CreateApplicationCommand{
		ProjectID:   projectID,
		Name:        "Reports",
		Description: "BI",
	})
	require.NoError(t, err)

	_, err = mediator.Send[applications.ChangeApplicationStatusCommand, mediator.Unit](ctx, h.Mediator, applications.ChangeApplicationStatusCommand{ID: id, Status: "Development"})
	require.NoError(t, err)

	list, err := mediator.Send[applications.GetApplicationsByProjectQuery, []applications.ApplicationDTO](ctx, h.Mediator, applications.GetApplicationsByProjectQuery{ProjectID: projectID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Development", list[0].Status)

	_, err = mediator.Send[applications.DeleteApplicationCommand, mediator.Unit](ctx, h.Mediator, applications.DeleteApplicationCommand{ID: id})
	require.NoError(t, err)
	list, err = mediator.Send[applications.GetApplicationsByProjectQuery, []applications.ApplicationDTO](ctx, h.Mediator, applications.GetApplicationsByProjectQuery{ProjectID: projectID})
	require.NoError(t, err)
	assert.Empty(t, list)
}
