package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cleanarch-backend/internal/features/admin"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

type AdminHandler struct {
	m *mediator.Mediator
}

func NewAdminHandler(m *mediator.Mediator) *AdminHandler {
	return &AdminHandler{m: m}
}

// GET /api/admin/database/info
func (ah *AdminHandler) DatabaseInfo(c *gin.Context) {
	reply[admin.GetDatabaseInfoQuery, admin.DatabaseInfo](c, ah.m, admin.GetDatabaseInfoQuery{}, http.StatusOK)
}

// POST /api/admin/database/migrate
func (ah *AdminHandler) Migrate(c *gin.Context) {
	reply[admin.MigrateDatabaseCommand, admin.MigrationResult](c, ah.m, admin.MigrateDatabaseCommand{}, http.StatusOK)
}

// POST /api/admin/database/seed
func (ah *AdminHandler) Seed(c *gin.Context) {
	reply[admin.SeedDatabaseCommand, admin.SeedResult](c, ah.m, admin.SeedDatabaseCommand{}, http.StatusOK)
}

// DELETE /api/admin/database/clear?confirmation=CONFIRM_DELETE_ALL_DATA
func (ah *AdminHandler) Clear(c *gin.Context) {
	var cmd admin.ClearDatabaseCommand
	if !bindQuery(c, &cmd) {
		return
	}
	reply[admin.ClearDatabaseCommand, admin.ClearResult](c, ah.m, cmd, http.StatusOK)
}
