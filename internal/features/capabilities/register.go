package capabilities

import (
	"github.com/google/uuid"

	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

func Register(m *mediator.Mediator, d features.Deps) {
	h := handlers{d: d}
	mediator.Register[CreateCapabilityCommand, uuid.UUID](m, h.create)
	mediator.Register[UpdateCapabilityCommand, mediator.Unit](m, h.update)
	mediator.Register[ChangeCapabilityStatusCommand, mediator.Unit](m, h.changeStatus)
	mediator.Register[CompleteCapabilityCommand, mediator.Unit](m, h.complete)
	mediator.Register[DeleteCapabilityCommand, mediator.Unit](m, h.delete)
	mediator.Register[GetCapabilitiesByApplicationQuery, []CapabilityDTO](m, h.listByApplication)
	mediator.Register[GetCapabilityByIDQuery, CapabilityDetailDTO](m, h.getByID)
	mediator.Register[SearchCapabilitiesQuery, []CapabilityDTO](m, h.search)
}
