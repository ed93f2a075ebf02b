package applications

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	types "github.com/yungbote/cleanarch-backend/internal/domain"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

type GetApplicationsByProjectQuery struct {
	ProjectID uuid.UUID
}

type GetApplicationByIDQuery struct {
	ID uuid.UUID
}

func (h handlers) listByProject(ctx context.Context, q GetApplicationsByProjectQuery) ([]ApplicationDTO, error) {
	const op = "applications.list_by_project"
	dbc := dbctx.New(ctx)
	project, err := h.d.Repos.Projects.GetByID(dbc, q.ProjectID)
	if err != nil {
		return nil, features.Read(op, err)
	}
	if project == nil {
		return nil, features.NotFound(op, "Project", q.ProjectID)
	}
	apps, err := h.d.Repos.Applications.ListByProject(dbc, q.ProjectID)
	if err != nil {
		return nil, features.Read(op, err)
	}
	return lo.Map(apps, func(a *types.Application, _ int) ApplicationDTO { return toDTO(a) }), nil
}

func (h handlers) getByID(ctx context.Context, q GetApplicationByIDQuery) (ApplicationDetailDTO, error) {
	const op = "applications.get"
	app, err := h.d.Repos.Applications.GetWithCapabilities(dbctx.New(ctx), q.ID)
	if err != nil {
		return ApplicationDetailDTO{}, features.Read(op, err)
	}
	if app == nil {
		return ApplicationDetailDTO{}, features.NotFound(op, "Application", q.ID)
	}
	return toDetail(app), nil
}
