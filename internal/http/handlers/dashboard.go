package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cleanarch-backend/internal/features/dashboard"
	"github.com/yungbote/cleanarch-backend/internal/features/search"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

type DashboardHandler struct {
	m *mediator.Mediator
}

func NewDashboardHandler(m *mediator.Mediator) *DashboardHandler {
	return &DashboardHandler{m: m}
}

// GET /api/dashboard/stats
func (dh *DashboardHandler) Stats(c *gin.Context) {
	reply[dashboard.GetDashboardStatsQuery, dashboard.StatsDTO](c, dh.m, dashboard.GetDashboardStatsQuery{}, http.StatusOK)
}

// GET /api/dashboard/summary
func (dh *DashboardHandler) Summary(c *gin.Context) {
	reply[dashboard.GetDashboardSummaryQuery, dashboard.SummaryDTO](c, dh.m, dashboard.GetDashboardSummaryQuery{}, http.StatusOK)
}

// GET /api/search?q=&limit=
func (dh *DashboardHandler) Search(c *gin.Context) {
	var q search.GlobalSearchQuery
	if !bindQuery(c, &q) {
		return
	}
	reply[search.GlobalSearchQuery, search.ResultDTO](c, dh.m, q, http.StatusOK)
}
