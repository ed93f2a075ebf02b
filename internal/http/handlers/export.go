package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cleanarch-backend/internal/features/export"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

type ExportHandler struct {
	m *mediator.Mediator
}

func NewExportHandler(m *mediator.Mediator) *ExportHandler {
	return &ExportHandler{m: m}
}

// GET /api/export/projects
func (eh *ExportHandler) Projects(c *gin.Context) {
	download(c, eh.m, export.ExportProjectsQuery{})
}

// GET /api/export/capabilities
func (eh *ExportHandler) Capabilities(c *gin.Context) {
	download(c, eh.m, export.ExportCapabilitiesQuery{})
}

// GET /api/export/dashboard
func (eh *ExportHandler) Dashboard(c *gin.Context) {
	download(c, eh.m, export.ExportDashboardQuery{})
}

// GET /api/export/full-report
func (eh *ExportHandler) FullReport(c *gin.Context) {
	download(c, eh.m, export.ExportFullReportQuery{})
}

func download[Req any](c *gin.Context, m *mediator.Mediator, req Req) {
	file, ok := send[Req, export.File](c, m, req)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
