package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cleanarch-backend/internal/features/projects"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

type ProjectHandler struct {
	m *mediator.Mediator
}

func NewProjectHandler(m *mediator.Mediator) *ProjectHandler {
	return &ProjectHandler{m: m}
}

// GET /api/projects?status=&searchTerm=&startDateFrom=&startDateTo=
func (ph *ProjectHandler) List(c *gin.Context) {
	var q projects.GetProjectsQuery
	if !bindQuery(c, &q) {
		return
	}
	reply[projects.GetProjectsQuery, []projects.ProjectListItem](c, ph.m, q, http.StatusOK)
}

// GET /api/projects/:id
func (ph *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	reply[projects.GetProjectByIDQuery, projects.ProjectDTO](c, ph.m, projects.GetProjectByIDQuery{ID: id}, http.StatusOK)
}

// GET /api/projects/:id/code
func (ph *ProjectHandler) Code(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, ok := send[projects.GetProjectByIDQuery, projects.ProjectDTO](c, ph.m, projects.GetProjectByIDQuery{ID: id})
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": p.Code})
}

// GET /api/projects/by-code/:code
func (ph *ProjectHandler) GetByCode(c *gin.Context) {
	q := projects.GetProjectByCodeQuery{Code: c.Param("code")}
	reply[projects.GetProjectByCodeQuery, projects.ProjectDTO](c, ph.m, q, http.StatusOK)
}

// POST /api/projects
func (ph *ProjectHandler) Create(c *gin.Context) {
	var cmd projects.CreateProjectCommand
	if !bindJSON(c, &cmd) {
		return
	}
	created(c, ph.m, cmd)
}

// PUT /api/projects/:id
func (ph *ProjectHandler) Update(c *gin.Context) {
	var cmd projects.UpdateProjectCommand
	if !bindJSON(c, &cmd) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cmd.ID = id
	replyNoContent(c, ph.m, cmd)
}

// PUT /api/projects/:id/status
func (ph *ProjectHandler) ChangeStatus(c *gin.Context) {
	var cmd projects.ChangeProjectStatusCommand
	if !bindJSON(c, &cmd) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cmd.ID = id
	replyNoContent(c, ph.m, cmd)
}

// PUT /api/projects/:id/planned-end-date
func (ph *ProjectHandler) SetPlannedEndDate(c *gin.Context) {
	var cmd projects.SetPlannedEndDateCommand
	if !bindJSON(c, &cmd) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cmd.ID = id
	replyNoContent(c, ph.m, cmd)
}

// PUT /api/projects/:id/budget
func (ph *ProjectHandler) SetBudget(c *gin.Context) {
	var cmd projects.SetProjectBudgetCommand
	if !bindJSON(c, &cmd) {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cmd.ID = id
	replyNoContent(c, ph.m, cmd)
}

// POST /api/projects/:id/complete
// The body is optional; an absent actualEndDate means now.
func (ph *ProjectHandler) Complete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var cmd projects.CompleteProjectCommand
	if c.Request.ContentLength > 0 && !bindJSON(c, &cmd) {
		return
	}
	cmd.ID = id
	replyNoContent(c, ph.m, cmd)
}

// POST /api/projects/:id/cancel
func (ph *ProjectHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyNoContent(c, ph.m, projects.CancelProjectCommand{ID: id})
}

// DELETE /api/projects/:id
func (ph *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyNoContent(c, ph.m, projects.DeleteProjectCommand{ID: id})
}
