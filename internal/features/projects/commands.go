package projects

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/domain/valueobject"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

type BudgetInput struct {
	Amount   string `json:"amount" validate:"required,numeric"`
	Currency string `json:"currency" validate:"required,len=3"`
}

type CreateProjectCommand struct {
	Code           string       `json:"code" validate:"notblank,min=3,max=30"`
	Name           string       `json:"name" validate:"notblank,max=200"`
	Description    string       `json:"description" validate:"notblank,max=2000"`
	StartDate      time.Time    `json:"startDate" validate:"required"`
	PlannedEndDate *time.Time   `json:"plannedEndDate"`
	ProjectManager string       `json:"projectManager" validate:"notblank,max=100"`
	Budget         *BudgetInput `json:"budget"`
}

func (c CreateProjectCommand) Validate() []domainagg.FieldError {
	if c.PlannedEndDate != nil && !c.StartDate.IsZero() && !c.PlannedEndDate.After(c.StartDate) {
		return []domainagg.FieldError{{Property: "plannedEndDate", Message: "Planned end date must be after start date"}}
	}
	return nil
}

type UpdateProjectCommand struct {
	ID          uuid.UUID `json:"-"`
	Name        string    `json:"name" validate:"notblank,max=200"`
	Description string    `json:"description" validate:"notblank,max=2000"`
}

type ChangeProjectStatusCommand struct {
	ID     uuid.UUID `json:"-"`
	Status string    `json:"status" validate:"notblank"`
}

type SetPlannedEndDateCommand struct {
	ID             uuid.UUID `json:"-"`
	PlannedEndDate time.Time `json:"plannedEndDate" validate:"required"`
}

type CompleteProjectCommand struct {
	ID            uuid.UUID  `json:"-"`
	ActualEndDate *time.Time `json:"actualEndDate"`
}

type CancelProjectCommand struct {
	ID uuid.UUID `json:"-"`
}

type SetProjectBudgetCommand struct {
	ID       uuid.UUID `json:"-"`
	Amount   string    `json:"amount" validate:"required,numeric"`
	Currency string    `json:"currency" validate:"required,len=3"`
}

type DeleteProjectCommand struct {
	ID uuid.UUID `json:"-"`
}

type handlers struct {
	d features.Deps
}

func (h handlers) createProject(ctx context.Context, cmd CreateProjectCommand) (uuid.UUID, error) {
	const op = "projects.create"
	code, err := valueobject.NewProjectCode(cmd.Code)
	if err != nil {
		return uuid.Nil, err
	}
	project, err := portfolio.NewProject(code, cmd.Name, cmd.Description, cmd.StartDate, cmd.ProjectManager)
	if err != nil {
		return uuid.Nil, err
	}
	if cmd.PlannedEndDate != nil {
		if err := project.SetPlannedEndDate(*cmd.PlannedEndDate); err != nil {
			return uuid.Nil, err
		}
	}
	if cmd.Budget != nil {
		budget, err := valueobject.ParseMoney(cmd.Budget.Amount, cmd.Budget.Currency)
		if err != nil {
			return uuid.Nil, err
		}
		project.SetBudget(budget)
	}

	err = h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		exists, err := h.d.Repos.Projects.CodeExists(dbc, code.String())
		if err != nil {
			return err
		}
		if exists {
			return domainagg.Conflict(op, fmt.Sprintf("A project with code '%s' already exists", code))
		}
		return h.d.Repos.Projects.Add(dbc, project)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return project.ID, nil
}

// mutate loads a project inside a unit of work, applies fn and saves it.
func (h handlers) mutate(ctx context.Context, op string, id uuid.UUID, fn func(p *portfolio.Project) error) (mediator.Unit, error) {
	err := h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		project, err := h.d.Repos.Projects.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if project == nil {
			return features.NotFound(op, "Project", id)
		}
		if err := fn(project); err != nil {
			return err
		}
		return h.d.Repos.Projects.Update(dbc, project)
	})
	return mediator.Unit{}, err
}

func (h handlers) updateProject(ctx context.Context, cmd UpdateProjectCommand) (mediator.Unit, error) {
	return h.mutate(ctx, "projects.update", cmd.ID, func(p *portfolio.Project) error {
		return p.UpdateDetails(cmd.Name, cmd.Description)
	})
}

func (h handlers) changeStatus(ctx context.Context, cmd ChangeProjectStatusCommand) (mediator.Unit, error) {
	status, err := portfolio.ParseProjectStatus(cmd.Status)
	if err != nil {
		return mediator.Unit{}, err
	}
	return h.mutate(ctx, "projects.change_status", cmd.ID, func(p *portfolio.Project) error {
		return p.ChangeStatus(status)
	})
}

func (h handlers) setPlannedEndDate(ctx context.Context, cmd SetPlannedEndDateCommand) (mediator.Unit, error) {
	return h.mutate(ctx, "projects.set_planned_end_date", cmd.ID, func(p *portfolio.Project) error {
		return p.SetPlannedEndDate(cmd.PlannedEndDate)
	})
}

func (h handlers) complete(ctx context.Context, cmd CompleteProjectCommand) (mediator.Unit, error) {
	end := h.d.Now()
	if cmd.ActualEndDate != nil {
		end = *cmd.ActualEndDate
	}
	return h.mutate(ctx, "projects.complete", cmd.ID, func(p *portfolio.Project) error {
		return p.Complete(end)
	})
}

func (h handlers) cancel(ctx context.Context, cmd CancelProjectCommand) (mediator.Unit, error) {
	return h.mutate(ctx, "projects.cancel", cmd.ID, func(p *portfolio.Project) error {
		return p.Cancel()
	})
}

func (h handlers) setBudget(ctx context.Context, cmd SetProjectBudgetCommand) (mediator.Unit, error) {
	budget, err := valueobject.ParseMoney(cmd.Amount, cmd.Currency)
	if err != nil {
		return mediator.Unit{}, err
	}
	return h.mutate(ctx, "projects.set_budget", cmd.ID, func(p *portfolio.Project) error {
		p.SetBudget(budget)
		return nil
	})
}

func (h handlers) deleteProject(ctx context.Context, cmd DeleteProjectCommand) (mediator.Unit, error) {
	const op = "projects.delete"
	err := h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		project, err := h.d.Repos.Projects.GetByID(dbc, cmd.ID)
		if err != nil {
			return err
		}
		if project == nil {
			return features.NotFound(op, "Project", cmd.ID)
		}
		return h.d.Repos.Projects.Delete(dbc, project)
	})
	return mediator.Unit{}, err
}
