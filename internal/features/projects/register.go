package projects

import (
	"github.com/google/uuid"

	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

func Register(m *mediator.Mediator, d features.Deps) {
	h := handlers{d: d}
	mediator.Register[CreateProjectCommand, uuid.UUID](m, h.createProject)
	mediator.Register[UpdateProjectCommand, mediator.Unit](m, h.updateProject)
	mediator.Register[ChangeProjectStatusCommand, mediator.Unit](m, h.changeStatus)
	mediator.Register[SetPlannedEndDateCommand, mediator.Unit](m, h.setPlannedEndDate)
	mediator.Register[CompleteProjectCommand, mediator.Unit](m, h.complete)
	mediator.Register[CancelProjectCommand, mediator.Unit](m, h.cancel)
	mediator.Register[SetProjectBudgetCommand, mediator.Unit](m, h.setBudget)
	mediator.Register[DeleteProjectCommand, mediator.Unit](m, h.deleteProject)
	mediator.Register[GetProjectsQuery, []ProjectListItem](m, h.list)
	mediator.Register[GetProjectByIDQuery, ProjectDTO](m, h.getByID)
	mediator.Register[GetProjectByCodeQuery, ProjectDTO](m, h.getByCode)
}
