package projects

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/yungbote/cleanarch-backend/internal/data/repos"
	types "github.com/yungbote/cleanarch-backend/internal/domain"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

type GetProjectsQuery struct {
	Status        string     `form:"status"`
	SearchTerm    string     `form:"searchTerm" validate:"max=200"`
	StartDateFrom *time.Time `form:"startDateFrom" time_format:"2006-01-02"`
	StartDateTo   *time.Time `form:"startDateTo" time_format:"2006-01-02"`
}

func (q GetProjectsQuery) Validate() []domainagg.FieldError {
	if q.StartDateFrom != nil && q.StartDateTo != nil && q.StartDateTo.Before(*q.StartDateFrom) {
		return []domainagg.FieldError{{Property: "startDateTo", Message: "'startDateTo' must not precede 'startDateFrom'."}}
	}
	return nil
}

type GetProjectByIDQuery struct {
	ID uuid.UUID
}

type GetProjectByCodeQuery struct {
	Code string `validate:"notblank"`
}

func (h handlers) list(ctx context.Context, q GetProjectsQuery) ([]ProjectListItem, error) {
	const op = "projects.list"
	filter := repos.ProjectFilter{
		SearchTerm:    q.SearchTerm,
		StartDateFrom: q.StartDateFrom,
		StartDateTo:   q.StartDateTo,
	}
	if q.Status != "" {
		status, err := portfolio.ParseProjectStatus(q.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}
	found, err := h.d.Repos.Projects.Search(dbctx.New(ctx), filter)
	if err != nil {
		return nil, features.Read(op, err)
	}
	return lo.Map(found, func(p *types.Project, _ int) ProjectListItem { return toListItem(p) }), nil
}

func (h handlers) getByID(ctx context.Context, q GetProjectByIDQuery) (ProjectDTO, error) {
	const op = "projects.get"
	p, err := h.d.Repos.Projects.GetWithApplications(dbctx.New(ctx), q.ID)
	if err != nil {
		return ProjectDTO{}, features.Read(op, err)
	}
	if p == nil {
		return ProjectDTO{}, features.NotFound(op, "Project", q.ID)
	}
	return toDTO(p), nil
}

func (h handlers) getByCode(ctx context.Context, q GetProjectByCodeQuery) (ProjectDTO, error) {
	const op = "projects.get_by_code"
	dbc := dbctx.New(ctx)
	p, err := h.d.Repos.Projects.GetByCode(dbc, q.Code)
	if err != nil {
		return ProjectDTO{}, features.Read(op, err)
	}
	if p == nil {
		return ProjectDTO{}, domainagg.NotFound(op, "Project with code '"+q.Code+"' not found")
	}
	if p, err = h.d.Repos.Projects.GetWithApplications(dbc, p.ID); err != nil {
		return ProjectDTO{}, features.Read(op, err)
	}
	return toDTO(p), nil
}
