package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
)

const internalMessage = "An unexpected error occurred"

// ErrorEnvelope is the body of every failed request.
type ErrorEnvelope struct {
	Error  string                 `json:"error"`
	Code   string                 `json:"code"`
	Errors []domainagg.FieldError `json:"errors,omitempty"`
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeValidation, domainagg.CodeConflict, domainagg.CodeInvariantViolation, domainagg.CodePreconditionFailed:
		return http.StatusBadRequest
	case domainagg.CodeUnauthorized:
		return http.StatusUnauthorized
	case domainagg.CodeForbidden:
		return http.StatusForbidden
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as an envelope. Errors without a known code, and
// internal ones, are reported with a generic message.
func RespondError(c *gin.Context, err error) {
	if err == nil {
		err = domainagg.NewError(domainagg.CodeInternal, "http", internalMessage, nil)
	}
	_ = c.Error(err)

	var de *domainagg.Error
	if !errors.As(err, &de) || de.Code == domainagg.CodeInternal || de.Code == "" {
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorEnvelope{
			Error: internalMessage,
			Code:  string(domainagg.CodeInternal),
		})
		return
	}
	c.AbortWithStatusJSON(StatusFor(de.Code), ErrorEnvelope{
		Error:  de.Message,
		Code:   string(de.Code),
		Errors: de.Fields,
	})
}

// RespondStatus writes an envelope for failures raised by the HTTP layer itself.
func RespondStatus(c *gin.Context, status int, code domainagg.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: message, Code: string(code)})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
