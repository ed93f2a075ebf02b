package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/http/response"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

// Recovery turns a handler panic into a 500 envelope.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Error("panic while handling request", "path", c.Request.URL.Path, "panic", recovered)
		response.RespondStatus(c, http.StatusInternalServerError, domainagg.CodeInternal, "An unexpected error occurred")
	})
}
