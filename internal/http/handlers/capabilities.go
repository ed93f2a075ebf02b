package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cleanarch-backend/internal/features/capabilities"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

type CapabilityHandler struct {
	m *mediator.Mediator
}

func NewCapabilityHandler(m *mediator.Mediator) *CapabilityHandler {
	return &CapabilityHandler{m: m}
}

// GET /api/capabilities/application/:applicationId
func (ch *CapabilityHandler) ListByApplication(c *gin.Context) {
	appID, ok := pathID(c, "applicationId")
	if !ok {
		return
	}
	q := capabilities.GetCapabilitiesByApplicationQuery{ApplicationID: appID}
	reply[capabilities.GetCapabilitiesByApplicationQuery, []capabilities.CapabilityDTO](c, ch.m, q, http.StatusOK)
}

// GET /api/capabilities/:id
func (ch *CapabilityHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	q := capabilities.GetCapabilityByIDQuery{ID: id}
	reply[capabilities.GetCapabilityByIDQuery, capabilities.CapabilityDetailDTO](c, ch.m, q, http.StatusOK)
}

// GET /api/capabilities/search?searchTerm=&applicationId=&status=&category=&priority=&limit=
func (ch *CapabilityHandler) Search(c *gin.Context) {
	var q capabilities.SearchCapabilitiesQuery
	if !bindQuery(c, &q) {
		return
	}
	appID, ok := queryID(c, "applicationId")
	if !ok {
		return
	}
	q.ApplicationID = appID
	reply[capabilities.SearchCapabilitiesQuery, []capabilities.CapabilityDTO](c, ch.m, q, http.StatusOK)
}

// POST /api/capabilities
func (ch *CapabilityHandler) Create(c *gin.Context) {
	var cmd capabilities.CreateCapabilityCommand
	if !bindJSON(c, &cmd) {
		return
	}
	created(c, ch.m, cmd)
}

// PUT /api/capabilities/:id
func (ch *CapabilityHandler) Update(c *gin.Context) {
	var cmd capabilities.UpdateCapabilityCommand
	if !bindJSON(c, &cmd) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cmd.ID = id
	replyNoContent(c, ch.m, cmd)
}

// PUT /api/capabilities/:id/status
func (ch *CapabilityHandler) ChangeStatus(c *gin.Context) {
	var cmd capabilities.ChangeCapabilityStatusCommand
	if !bindJSON(c, &cmd) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cmd.ID = id
	replyNoContent(c, ch.m, cmd)
}

// POST /api/capabilities/:id/complete
func (ch *CapabilityHandler) Complete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyNoContent(c, ch.m, capabilities.CompleteCapabilityCommand{ID: id})
}

// DELETE /api/capabilities/:id
func (ch *CapabilityHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyNoContent(c, ch.m, capabilities.DeleteCapabilityCommand{ID: id})
}
