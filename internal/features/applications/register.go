package applications

import (
	"github.com/google/uuid"

	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

func Register(m *mediator.Mediator, d features.Deps) {
	h := handlers{d: d}
	mediator.Register[CreateApplicationCommand, uuid.UUID](m, h.create)
	mediator.Register[UpdateApplicationCommand, mediator.Unit](m, h.update)
	mediator.Register[ChangeApplicationStatusCommand, mediator.Unit](m, h.changeStatus)
	mediator.Register[UpgradeApplicationVersionCommand, mediator.Unit](m, h.upgradeVersion)
	mediator.Register[DeleteApplicationCommand, mediator.Unit](m, h.delete)
	mediator.Register[GetApplicationsByProjectQuery, []ApplicationDTO](m, h.listByProject)
	mediator.Register[GetApplicationByIDQuery, ApplicationDetailDTO](m, h.getByID)
}
