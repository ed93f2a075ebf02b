package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/features/businessrules"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

type BusinessRuleHandler struct {
	m *mediator.Mediator
}

func NewBusinessRuleHandler(m *mediator.Mediator) *BusinessRuleHandler {
	return &BusinessRuleHandler{m: m}
}

// GET /api/businessrules/capability/:capabilityId
func (bh *BusinessRuleHandler) ListByCapability(c *gin.Context) {
	capID, ok := pathID(c, "capabilityId")
	if !ok {
		return
	}
	q := businessrules.GetBusinessRulesByCapabilityQuery{CapabilityID: capID}
	reply[businessrules.GetBusinessRulesByCapabilityQuery, []businessrules.BusinessRuleDTO](c, bh.m, q, http.StatusOK)
}

// GET /api/businessrules/:id
func (bh *BusinessRuleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	q := businessrules.GetBusinessRuleByIDQuery{ID: id}
	reply[businessrules.GetBusinessRuleByIDQuery, businessrules.BusinessRuleDTO](c, bh.m, q, http.StatusOK)
}

// GET /api/businessrules/code/:code
func (bh *BusinessRuleHandler) GetByCode(c *gin.Context) {
	q := businessrules.GetBusinessRuleByCodeQuery{Code: c.Param("code")}
	reply[businessrules.GetBusinessRuleByCodeQuery, businessrules.BusinessRuleDTO](c, bh.m, q, http.StatusOK)
}

// GET /api/businessrules/search?searchTerm=&capabilityId=&status=&type=&priority=&limit=
func (bh *BusinessRuleHandler) Search(c *gin.Context) {
	var q businessrules.SearchBusinessRulesQuery
	if !bindQuery(c, &q) {
		return
	}
	capID, ok := queryID(c, "capabilityId")
	if !ok {
		return
	}
	q.CapabilityID = capID
	reply[businessrules.SearchBusinessRulesQuery, []businessrules.BusinessRuleDTO](c, bh.m, q, http.StatusOK)
}

// POST /api/businessrules
func (bh *BusinessRuleHandler) Create(c *gin.Context) {
	var cmd businessrules.CreateBusinessRuleCommand
	if !bindJSON(c, &cmd) {
		return
	}
	created(c, bh.m, cmd)
}

// PUT /api/businessrules/:id
func (bh *BusinessRuleHandler) Update(c *gin.Context) {
	var cmd businessrules.UpdateBusinessRuleCommand
	if !bindJSON(c, &cmd) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cmd.ID = id
	replyNoContent(c, bh.m, cmd)
}

// PUT /api/businessrules/:id/activate
func (bh *BusinessRuleHandler) Activate(c *gin.Context) {
	bh.changeStatus(c, portfolio.BusinessRuleStatusActive)
}

// PUT /api/businessrules/:id/deactivate
func (bh *BusinessRuleHandler) Deactivate(c *gin.Context) {
	bh.changeStatus(c, portfolio.BusinessRuleStatusInactive)
}

// PUT /api/businessrules/:id/deprecate
func (bh *BusinessRuleHandler) Deprecate(c *gin.Context) {
	bh.changeStatus(c, portfolio.BusinessRuleStatusDeprecated)
}

func (bh *BusinessRuleHandler) changeStatus(c *gin.Context, status portfolio.BusinessRuleStatus) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyNoContent(c, bh.m, businessrules.ChangeBusinessRuleStatusCommand{ID: id, Status: string(status)})
}

// PUT /api/businessrules/:id/implementation
func (bh *BusinessRuleHandler) SetImplementation(c *gin.Context) {
	var cmd businessrules.SetImplementationCommand
	if !bindJSON(c, &cmd) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cmd.ID = id
	replyNoContent(c, bh.m, cmd)
}

// POST /api/businessrules/:id/examples
func (bh *BusinessRuleHandler) AddExample(c *gin.Context) {
	var cmd businessrules.AddExampleCommand
	if !bindJSON(c, &cmd) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cmd.ID = id
	replyNoContent(c, bh.m, cmd)
}

// DELETE /api/businessrules/:id
func (bh *BusinessRuleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyNoContent(c, bh.m, businessrules.DeleteBusinessRuleCommand{ID: id})
}
