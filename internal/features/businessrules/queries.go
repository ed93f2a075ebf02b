package businessrules

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/yungbote/cleanarch-backend/internal/data/repos"
	types "github.com/yungbote/cleanarch-backend/internal/domain"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

type GetBusinessRulesByCapabilityQuery struct {
	CapabilityID uuid.UUID
}

type GetBusinessRuleByIDQuery struct {
	ID uuid.UUID
}

type GetBusinessRuleByCodeQuery struct {
	Code string `validate:"notblank"`
}

type SearchBusinessRulesQuery struct {
	SearchTerm   string     `form:"searchTerm" validate:"max=200"`
	CapabilityID *uuid.UUID `form:"-"`
	Status       string     `form:"status"`
	Type         string     `form:"type"`
	Priority     string     `form:"priority"`
	Limit        int        `form:"limit" validate:"gte=0"`
}

func (h handlers) listByCapability(ctx context.Context, q GetBusinessRulesByCapabilityQuery) ([]BusinessRuleDTO, error) {
	const op = "business_rules.list_by_capability"
	dbc := dbctx.New(ctx)
	capability, err := h.d.Repos.Capabilities.GetByID(dbc, q.CapabilityID)
	if err != nil {
		return nil, features.Read(op, err)
	}
	if capability == nil {
		return nil, features.NotFound(op, "Capability", q.CapabilityID)
	}
	found, err := h.d.Repos.BusinessRules.ListByCapability(dbc, q.CapabilityID)
	if err != nil {
		return nil, features.Read(op, err)
	}
	return lo.Map(found, func(r *types.BusinessRule, _ int) BusinessRuleDTO { return toDTO(r) }), nil
}

func (h handlers) getByID(ctx context.Context, q GetBusinessRuleByIDQuery) (BusinessRuleDTO, error) {
	const op = "business_rules.get"
	r, err := h.d.Repos.BusinessRules.GetByID(dbctx.New(ctx), q.ID)
	if err != nil {
		return BusinessRuleDTO{}, features.Read(op, err)
	}
	if r == nil {
		return BusinessRuleDTO{}, features.NotFound(op, "BusinessRule", q.ID)
	}
	return toDTO(r), nil
}

func (h handlers) getByCode(ctx context.Context, q GetBusinessRuleByCodeQuery) (BusinessRuleDTO, error) {
	const op = "business_rules.get_by_code"
	r, err := h.d.Repos.BusinessRules.GetByCode(dbctx.New(ctx), q.Code)
	if err != nil {
		return BusinessRuleDTO{}, features.Read(op, err)
	}
	if r == nil {
		return BusinessRuleDTO{}, domainagg.NotFound(op, "BusinessRule with code '"+q.Code+"' not found")
	}
	return toDTO(r), nil
}

func (h handlers) search(ctx context.Context, q SearchBusinessRulesQuery) ([]BusinessRuleDTO, error) {
	const op = "business_rules.search"
	filter := repos.BusinessRuleFilter{
		SearchTerm:   q.SearchTerm,
		CapabilityID: q.CapabilityID,
		Limit:        features.Page(q.Limit, 100, 500),
	}
	if q.Status != "" {
		status, err := portfolio.ParseBusinessRuleStatus(q.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}
	if q.Type != "" {
		ruleType, err := portfolio.ParseBusinessRuleType(q.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = &ruleType
	}
	if q.Priority != "" {
		priority, err := portfolio.ParsePriority(q.Priority)
		if err != nil {
			return nil, err
		}
		filter.Priority = &priority
	}
	found, err := h.d.Repos.BusinessRules.Search(dbctx.New(ctx), filter)
	if err != nil {
		return nil, features.Read(op, err)
	}
	return lo.Map(found, func(r *types.BusinessRule, _ int) BusinessRuleDTO { return toDTO(r) }), nil
}
