package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/cleanarch-backend/internal/data/db"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(gdb *gorm.DB) *HealthHandler { return &HealthHandler{db: gdb} }

// GET /healthcheck
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.db != nil && !db.CanConnect(h.db) {
		c.String(http.StatusServiceUnavailable, "unhealthy")
		return
	}
	c.String(http.StatusOK, "ok")
}
