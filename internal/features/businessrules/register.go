package businessrules

import (
	"github.com/google/uuid"

	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

func Register(m *mediator.Mediator, d features.Deps) {
	h := handlers{d: d}
	mediator.Register[CreateBusinessRuleCommand, uuid.UUID](m, h.create)
	mediator.Register[UpdateBusinessRuleCommand, mediator.Unit](m, h.update)
	mediator.Register[ChangeBusinessRuleStatusCommand, mediator.Unit](m, h.changeStatus)
	mediator.Register[SetImplementationCommand, mediator.Unit](m, h.setImplementation)
	mediator.Register[AddExampleCommand, mediator.Unit](m, h.addExample)
	mediator.Register[DeleteBusinessRuleCommand, mediator.Unit](m, h.delete)
	mediator.Register[GetBusinessRulesByCapabilityQuery, []BusinessRuleDTO](m, h.listByCapability)
	mediator.Register[GetBusinessRuleByIDQuery, BusinessRuleDTO](m, h.getByID)
	mediator.Register[GetBusinessRuleByCodeQuery, BusinessRuleDTO](m, h.getByCode)
	mediator.Register[SearchBusinessRulesQuery, []BusinessRuleDTO](m, h.search)
}
