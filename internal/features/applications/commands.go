package applications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/cleanarch-backend/internal/data/uow"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/domain/valueobject"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

type CreateApplicationCommand struct {
	ProjectID       uuid.UUID  `json:"projectId" validate:"required"`
	Name            string     `json:"name" validate:"notblank,max=200"`
	Description     string     `json:"description" validate:"notblank,max=2000"`
	Type            string     `json:"type"`
	Version         string     `json:"version"`
	TechnologyStack string     `json:"technologyStack" validate:"max=500"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
}

func (c CreateApplicationCommand) Validate() []domainagg.FieldError {
	if c.EndDate != nil && c.StartDate == nil {
		return []domainagg.FieldError{{Property: "startDate", Message: "'startDate' is required when 'endDate' is set."}}
	}
	return nil
}

type UpdateApplicationCommand struct {
	ID              uuid.UUID `json:"-"`
	Name            string    `json:"name" validate:"notblank,max=200"`
	Description     string    `json:"description" validate:"notblank,max=2000"`
	TechnologyStack string    `json:"technologyStack" validate:"max=500"`
}

type ChangeApplicationStatusCommand struct {
	ID     uuid.UUID `json:"-"`
	Status string    `json:"status" validate:"notblank"`
}

// UpgradeApplicationVersionCommand takes an explicit version, or a bump of
// "major", "minor" or "patch" applied to the current one.
type UpgradeApplicationVersionCommand struct {
	ID      uuid.UUID `json:"-"`
	Version string    `json:"version"`
	Bump    string    `json:"bump" validate:"omitempty,oneof=major minor patch"`
}

func (c UpgradeApplicationVersionCommand) Validate() []domainagg.FieldError {
	if (c.Version == "") == (c.Bump == "") {
		return []domainagg.FieldError{{Property: "version", Message: "Exactly one of 'version' or 'bump' must be provided."}}
	}
	return nil
}

type DeleteApplicationCommand struct {
	ID uuid.UUID `json:"-"`
}

type handlers struct {
	d features.Deps
}

func (h handlers) create(ctx context.Context, cmd CreateApplicationCommand) (uuid.UUID, error) {
	const op = "applications.create"
	var appType portfolio.ApplicationType
	if cmd.Type != "" {
		parsed, err := portfolio.ParseApplicationType(cmd.Type)
		if err != nil {
			return uuid.Nil, err
		}
		appType = parsed
	}
	var version valueobject.ApplicationVersion
	if cmd.Version != "" {
		parsed, err := valueobject.NewApplicationVersion(cmd.Version)
		if err != nil {
			return uuid.Nil, err
		}
		version = parsed
	}
	app, err := portfolio.NewApplication(cmd.ProjectID, cmd.Name, cmd.Description, appType, version)
	if err != nil {
		return uuid.Nil, err
	}
	if err := app.SetTechnologyStack(cmd.TechnologyStack); err != nil {
		return uuid.Nil, err
	}
	if cmd.StartDate != nil {
		if err := app.SetDates(*cmd.StartDate, cmd.EndDate); err != nil {
			return uuid.Nil, err
		}
	}

	err = h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		project, err := h.d.Repos.Projects.GetWithApplications(dbc, cmd.ProjectID)
		if err != nil {
			return err
		}
		if project == nil {
			return features.NotFound(op, "Project", cmd.ProjectID)
		}
		if err := project.AddApplication(app); err != nil {
			return err
		}
		if err := h.d.Repos.Applications.Add(dbc, app); err != nil {
			return err
		}
		uow.Track(dbc.Ctx, project)
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return app.ID, nil
}

func (h handlers) mutate(ctx context.Context, op string, id uuid.UUID, fn func(a *portfolio.Application) error) (mediator.Unit, error) {
	err := h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		app, err := h.d.Repos.Applications.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if app == nil {
			return features.NotFound(op, "Application", id)
		}
		if err := fn(app); err != nil {
			return err
		}
		return h.d.Repos.Applications.Update(dbc, app)
	})
	return mediator.Unit{}, err
}

func (h handlers) update(ctx context.Context, cmd UpdateApplicationCommand) (mediator.Unit, error) {
	return h.mutate(ctx, "applications.update", cmd.ID, func(a *portfolio.Application) error {
		if err := a.UpdateDetails(cmd.Name, cmd.Description); err != nil {
			return err
		}
		return a.SetTechnologyStack(cmd.TechnologyStack)
	})
}

func (h handlers) changeStatus(ctx context.Context, cmd ChangeApplicationStatusCommand) (mediator.Unit, error) {
	status, err := portfolio.ParseApplicationStatus(cmd.Status)
	if err != nil {
		return mediator.Unit{}, err
	}
	return h.mutate(ctx, "applications.change_status", cmd.ID, func(a *portfolio.Application) error {
		return a.ChangeStatus(status)
	})
}

func (h handlers) upgradeVersion(ctx context.Context, cmd UpgradeApplicationVersionCommand) (mediator.Unit, error) {
	var explicit valueobject.ApplicationVersion
	if cmd.Version != "" {
		parsed, err := valueobject.NewApplicationVersion(cmd.Version)
		if err != nil {
			return mediator.Unit{}, err
		}
		explicit = parsed
	}
	return h.mutate(ctx, "applications.upgrade_version", cmd.ID, func(a *portfolio.Application) error {
		next := explicit
		switch cmd.Bump {
		case "major":
			next = a.Version.IncrementMajor()
		case "minor":
			next = a.Version.IncrementMinor()
		case "patch":
			next = a.Version.IncrementPatch()
		}
		return a.UpgradeVersion(next)
	})
}

func (h handlers) delete(ctx context.Context, cmd DeleteApplicationCommand) (mediator.Unit, error) {
	const op = "applications.delete"
	err := h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		app, err := h.d.Repos.Applications.GetByID(dbc, cmd.ID)
		if err != nil {
			return err
		}
		if app == nil {
			return features.NotFound(op, "Application", cmd.ID)
		}
		return h.d.Repos.Applications.Delete(dbc, app)
	})
	return mediator.Unit{}, err
}
