package capabilities

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

type CreateCapabilityCommand struct {
	ApplicationID uuid.UUID  `json:"applicationId" validate:"required"`
	Name          string     `json:"name" validate:"notblank,max=200"`
	Description   string     `json:"description" validate:"notblank,max=2000"`
	Category      string     `json:"category"`
	Priority      string     `json:"priority"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
}

func (c CreateCapabilityCommand) Validate() []domainagg.FieldError {
	if c.EndDate != nil && c.StartDate == nil {
		return []domainagg.FieldError{{Property: "startDate", Message: "'startDate' is required when 'endDate' is set."}}
	}
	return nil
}

type UpdateCapabilityCommand struct {
	ID          uuid.UUID `json:"-"`
	Name        string    `json:"name" validate:"notblank,max=200"`
	Description string    `json:"description" validate:"notblank,max=2000"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority" validate:"notblank"`
}

type ChangeCapabilityStatusCommand struct {
	ID     uuid.UUID `json:"-"`
	Status string    `json:"status" validate:"notblank"`
}

type CompleteCapabilityCommand struct {
	ID uuid.UUID `json:"-"`
}

type DeleteCapabilityCommand struct {
	ID uuid.UUID `json:"-"`
}

type handlers struct {
	d features.Deps
}

func parseClassification(category, priority string) (portfolio.CapabilityCategory, portfolio.Priority, error) {
	var (
		cat portfolio.CapabilityCategory
		pri portfolio.Priority
	)
	if category != "" {
		parsed, err := portfolio.ParseCapabilityCategory(category)
		if err != nil {
			return "", 0, err
		}
		cat = parsed
	}
	if priority != "" {
		parsed, err := portfolio.ParsePriority(priority)
		if err != nil {
			return "", 0, err
		}
		pri = parsed
	}
	return cat, pri, nil
}

func (h handlers) create(ctx context.Context, cmd CreateCapabilityCommand) (uuid.UUID, error) {
	const op = "capabilities.create"
	category, priority, err := parseClassification(cmd.Category, cmd.Priority)
	if err != nil {
		return uuid.Nil, err
	}
	capability, err := portfolio.NewCapability(cmd.ApplicationID, cmd.Name, cmd.Description, category, priority)
	if err != nil {
		return uuid.Nil, err
	}
	if cmd.StartDate != nil {
		if err := capability.SetDates(*cmd.StartDate, cmd.EndDate); err != nil {
			return uuid.Nil, err
		}
	}

	err = h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		app, err := h.d.Repos.Applications.GetWithCapabilities(dbc, cmd.ApplicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return features.NotFound(op, "Application", cmd.ApplicationID)
		}
		if err := app.AddCapability(capability); err != nil {
			return err
		}
		return h.d.Repos.Capabilities.Add(dbc, capability)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return capability.ID, nil
}

func (h handlers) mutate(ctx context.Context, op string, id uuid.UUID, fn func(c *portfolio.Capability) error) (mediator.Unit, error) {
	err := h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		capability, err := h.d.Repos.Capabilities.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if capability == nil {
			return features.NotFound(op, "Capability", id)
		}
		if err := fn(capability); err != nil {
			return err
		}
		return h.d.Repos.Capabilities.Update(dbc, capability)
	})
	return mediator.Unit{}, err
}

func (h handlers) update(ctx context.Context, cmd UpdateCapabilityCommand) (mediator.Unit, error) {
	category, priority, err := parseClassification(cmd.Category, cmd.Priority)
	if err != nil {
		return mediator.Unit{}, err
	}
	return h.mutate(ctx, "capabilities.update", cmd.ID, func(c *portfolio.Capability) error {
		return c.UpdateDetails(cmd.Name, cmd.Description, category, priority)
	})
}

func (h handlers) changeStatus(ctx context.Context, cmd ChangeCapabilityStatusCommand) (mediator.Unit, error) {
	status, err := portfolio.ParseCapabilityStatus(cmd.Status)
	if err != nil {
		return mediator.Unit{}, err
	}
	return h.mutate(ctx, "capabilities.change_status", cmd.ID, func(c *portfolio.Capability) error {
		return c.ChangeStatus(status)
	})
}

func (h handlers) complete(ctx context.Context, cmd CompleteCapabilityCommand) (mediator.Unit, error) {
	now := h.d.Now()
	return h.mutate(ctx, "capabilities.complete", cmd.ID, func(c *portfolio.Capability) error {
		return c.Complete(now)
	})
}

func (h handlers) delete(ctx context.Context, cmd DeleteCapabilityCommand) (mediator.Unit, error) {
	const op = "capabilities.delete"
	err := h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		capability, err := h.d.Repos.Capabilities.GetByID(dbc, cmd.ID)
		if err != nil {
			return err
		}
		if capability == nil {
			return features.NotFound(op, "Capability", cmd.ID)
		}
		return h.d.Repos.Capabilities.Delete(dbc, capability)
	})
	return mediator.Unit{}, err
}
