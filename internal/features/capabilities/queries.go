package capabilities

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/yungbote/cleanarch-backend/internal/data/repos"
	types "github.com/yungbote/cleanarch-backend/internal/domain"
	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

type GetCapabilitiesByApplicationQuery struct {
	ApplicationID uuid.UUID
}

type GetCapabilityByIDQuery struct {
	ID uuid.UUID
}

type SearchCapabilitiesQuery struct {
	SearchTerm    string     `form:"searchTerm" validate:"max=200"`
	ApplicationID *uuid.UUID `form:"-"`
	Status        string     `form:"status"`
	Category      string     `form:"category"`
	Priority      string     `form:"priority"`
	Limit         int        `form:"limit" validate:"gte=0"`
}

func (h handlers) listByApplication(ctx context.Context, q GetCapabilitiesByApplicationQuery) ([]CapabilityDTO, error) {
	const op = "capabilities.list_by_application"
	dbc := dbctx.New(ctx)
	app, err := h.d.Repos.Applications.GetByID(dbc, q.ApplicationID)
	if err != nil {
		return nil, features.Read(op, err)
	}
	if app == nil {
		return nil, features.NotFound(op, "Application", q.ApplicationID)
	}
	found, err := h.d.Repos.Capabilities.ListByApplication(dbc, q.ApplicationID)
	if err != nil {
		return nil, features.Read(op, err)
	}
	return lo.Map(found, func(c *types.Capability, _ int) CapabilityDTO { return toDTO(c) }), nil
}

func (h handlers) getByID(ctx context.Context, q GetCapabilityByIDQuery) (CapabilityDetailDTO, error) {
	const op = "capabilities.get"
	c, err := h.d.Repos.Capabilities.GetWithRules(dbctx.New(ctx), q.ID)
	if err != nil {
		return CapabilityDetailDTO{}, features.Read(op, err)
	}
	if c == nil {
		return CapabilityDetailDTO{}, features.NotFound(op, "Capability", q.ID)
	}
	return toDetail(c), nil
}

func (h handlers) search(ctx context.Context, q SearchCapabilitiesQuery) ([]CapabilityDTO, error) {
	const op = "capabilities.search"
	filter := repos.CapabilityFilter{
		SearchTerm:    q.SearchTerm,
		ApplicationID: q.ApplicationID,
		Limit:         features.Page(q.Limit, 100, 500),
	}
	if q.Status != "" {
		status, err := portfolio.ParseCapabilityStatus(q.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}
	if q.Category != "" {
		category, err := portfolio.ParseCapabilityCategory(q.Category)
		if err != nil {
			return nil, err
		}
		filter.Category = &category
	}
	if q.Priority != "" {
		priority, err := portfolio.ParsePriority(q.Priority)
		if err != nil {
			return nil, err
		}
		filter.Priority = &priority
	}
	found, err := h.d.Repos.Capabilities.Search(dbctx.New(ctx), filter)
	if err != nil {
		return nil, features.Read(op, err)
	}
	return lo.Map(found, func(c *types.Capability, _ int) CapabilityDTO { return toDTO(c) }), nil
}
