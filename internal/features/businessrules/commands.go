package businessrules

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/domain/valueobject"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

type CreateBusinessRuleCommand struct {
	CapabilityID   uuid.UUID `json:"capabilityId" validate:"required"`
	Code           string    `json:"code" validate:"notblank,min=5,max=20"`
	Name           string    `json:"name" validate:"notblank,max=200"`
	Description    string    `json:"description" validate:"notblank,max=2000"`
	Type           string    `json:"type"`
	Priority       string    `json:"priority"`
	Implementation string    `json:"implementation" validate:"max=4000"`
	Examples       []string  `json:"examples" validate:"dive,notblank"`
}

type UpdateBusinessRuleCommand struct {
	ID          uuid.UUID `json:"-"`
	Name        string    `json:"name" validate:"notblank,max=200"`
	Description string    `json:"description" validate:"notblank,max=2000"`
	Type        string    `json:"type"`
	Priority    string    `json:"priority" validate:"notblank"`
}

// ChangeBusinessRuleStatusCommand routes to Activate, Deactivate or Deprecate.
type ChangeBusinessRuleStatusCommand struct {
	ID     uuid.UUID `json:"-"`
	Status string    `json:"status" validate:"notblank"`
}

type SetImplementationCommand struct {
	ID             uuid.UUID `json:"-"`
	Implementation string    `json:"implementation" validate:"notblank,max=4000"`
}

type AddExampleCommand struct {
	ID      uuid.UUID `json:"-"`
	Example string    `json:"example" validate:"notblank,max=1000"`
}

type DeleteBusinessRuleCommand struct {
	ID uuid.UUID `json:"-"`
}

type handlers struct {
	d features.Deps
}

func parseClassification(ruleType, priority string) (portfolio.BusinessRuleType, portfolio.Priority, error) {
	var (
		typ portfolio.BusinessRuleType
		pri portfolio.Priority
	)
	if ruleType != "" {
		parsed, err := portfolio.ParseBusinessRuleType(ruleType)
		if err != nil {
			return "", 0, err
		}
		typ = parsed
	}
	if priority != "" {
		parsed, err := portfolio.ParsePriority(priority)
		if err != nil {
			return "", 0, err
		}
		pri = parsed
	}
	return typ, pri, nil
}

func (h handlers) create(ctx context.Context, cmd CreateBusinessRuleCommand) (uuid.UUID, error) {
	const op = "business_rules.create"
	code, err := valueobject.NewRuleCode(cmd.Code)
	if err != nil {
		return uuid.Nil, err
	}
	ruleType, priority, err := parseClassification(cmd.Type, cmd.Priority)
	if err != nil {
		return uuid.Nil, err
	}
	rule, err := portfolio.NewBusinessRule(cmd.CapabilityID, code, cmd.Name, cmd.Description, ruleType, priority)
	if err != nil {
		return uuid.Nil, err
	}
	if cmd.Implementation != "" {
		if err := rule.SetImplementation(cmd.Implementation); err != nil {
			return uuid.Nil, err
		}
	}
	for _, example := range cmd.Examples {
		if err := rule.AddExample(example); err != nil {
			return uuid.Nil, err
		}
	}

	err = h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		capability, err := h.d.Repos.Capabilities.GetWithRules(dbc, cmd.CapabilityID)
		if err != nil {
			return err
		}
		if capability == nil {
			return features.NotFound(op, "Capability", cmd.CapabilityID)
		}
		exists, err := h.d.Repos.BusinessRules.CodeExists(dbc, code.String())
		if err != nil {
			return err
		}
		if exists {
			return domainagg.Conflict(op, fmt.Sprintf("A business rule with code '%s' already exists", code))
		}
		if err := capability.AddBusinessRule(rule); err != nil {
			return err
		}
		return h.d.Repos.BusinessRules.Add(dbc, rule)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return rule.ID, nil
}

func (h handlers) mutate(ctx context.Context, op string, id uuid.UUID, fn func(r *portfolio.BusinessRule) error) (mediator.Unit, error) {
	err := h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		rule, err := h.d.Repos.BusinessRules.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if rule == nil {
			return features.NotFound(op, "BusinessRule", id)
		}
		if err := fn(rule); err != nil {
			return err
		}
		return h.d.Repos.BusinessRules.Update(dbc, rule)
	})
	return mediator.Unit{}, err
}

func (h handlers) update(ctx context.Context, cmd UpdateBusinessRuleCommand) (mediator.Unit, error) {
	ruleType, priority, err := parseClassification(cmd.Type, cmd.Priority)
	if err != nil {
		return mediator.Unit{}, err
	}
	return h.mutate(ctx, "business_rules.update", cmd.ID, func(r *portfolio.BusinessRule) error {
		return r.UpdateDetails(cmd.Name, cmd.Description, ruleType, priority)
	})
}

func (h handlers) changeStatus(ctx context.Context, cmd ChangeBusinessRuleStatusCommand) (mediator.Unit, error) {
	status, err := portfolio.ParseBusinessRuleStatus(cmd.Status)
	if err != nil {
		return mediator.Unit{}, err
	}
	return h.mutate(ctx, "business_rules.change_status", cmd.ID, func(r *portfolio.BusinessRule) error {
		switch status {
		case portfolio.BusinessRuleStatusActive:
			return r.Activate()
		case portfolio.BusinessRuleStatusInactive:
			return r.Deactivate()
		default:
			return r.Deprecate()
		}
	})
}

func (h handlers) setImplementation(ctx context.Context, cmd SetImplementationCommand) (mediator.Unit, error) {
	return h.mutate(ctx, "business_rules.set_implementation", cmd.ID, func(r *portfolio.BusinessRule) error {
		return r.SetImplementation(cmd.Implementation)
	})
}

func (h handlers) addExample(ctx context.Context, cmd AddExampleCommand) (mediator.Unit, error) {
	return h.mutate(ctx, "business_rules.add_example", cmd.ID, func(r *portfolio.BusinessRule) error {
		return r.AddExample(cmd.Example)
	})
}

func (h handlers) delete(ctx context.Context, cmd DeleteBusinessRuleCommand) (mediator.Unit, error) {
	const op = "business_rules.delete"
	err := h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		rule, err := h.d.Repos.BusinessRules.GetByID(dbc, cmd.ID)
		if err != nil {
			return err
		}
		if rule == nil {
			return features.NotFound(op, "BusinessRule", cmd.ID)
		}
		return h.d.Repos.BusinessRules.Delete(dbc, rule)
	})
	return mediator.Unit{}, err
}
