package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cleanarch-backend/internal/features/applications"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

type ApplicationHandler struct {
	m *mediator.Mediator
}

func NewApplicationHandler(m *mediator.Mediator) *ApplicationHandler {
	return &ApplicationHandler{m: m}
}

// GET /api/applications/project/:projectId
func (ah *ApplicationHandler) ListByProject(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	q := applications.GetApplicationsByProjectQuery{ProjectID: projectID}
	reply[applications.GetApplicationsByProjectQuery, []applications.ApplicationDTO](c, ah.m, q, http.StatusOK)
}

// GET /api/applications/:id
func (ah *ApplicationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	q := applications.GetApplicationByIDQuery{ID: id}
	reply[applications.GetApplicationByIDQuery, applications.ApplicationDetailDTO](c, ah.m, q, http.StatusOK)
}

// POST /api/applications
func (ah *ApplicationHandler) Create(c *gin.Context) {
	var cmd applications.CreateApplicationCommand
	if !bindJSON(c, &cmd) {
		return
	}
	created(c, ah.m, cmd)
}

// PUT /api/applications/:id
func (ah *ApplicationHandler) Update(c *gin.Context) {
	var cmd applications.UpdateApplicationCommand
	if !bindJSON(c, &cmd) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cmd.ID = id
	replyNoContent(c, ah.m, cmd)
}

// PUT /api/applications/:id/status
func (ah *ApplicationHandler) ChangeStatus(c *gin.Context) {
	var cmd applications.ChangeApplicationStatusCommand
	if !bindJSON(c, &cmd) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cmd.ID = id
	replyNoContent(c, ah.m, cmd)
}

// PUT /api/applications/:id/version
// body: { "version": "2.0.0" } or { "bump": "minor" }
func (ah *ApplicationHandler) UpgradeVersion(c *gin.Context) {
	var cmd applications.UpgradeApplicationVersionCommand
	if !bindJSON(c, &cmd) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cmd.ID = id
	replyNoContent(c, ah.m, cmd)
}

// DELETE /api/applications/:id
func (ah *ApplicationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyNoContent(c, ah.m, applications.DeleteApplicationCommand{ID: id})
}
