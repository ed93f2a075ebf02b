package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/http/response"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

// send runs req through the mediator. On failure the error envelope has
// already been written and ok is false.
func send[Req any, Resp any](c *gin.Context, m *mediator.Mediator, req Req) (resp Resp, ok bool) {
	resp, err := mediator.Send[Req, Resp](c.Request.Context(), m, req)
	if err != nil {
		response.RespondError(c, err)
		return resp, false
	}
	return resp, true
}

// reply writes the handler result with status.
func reply[Req any, Resp any](c *gin.Context, m *mediator.Mediator, req Req, status int) {
	resp, ok := send[Req, Resp](c, m, req)
	if !ok {
		return
	}
	c.JSON(status, resp)
}

// replyNoContent is reply for commands that return nothing.
func replyNoContent[Req any](c *gin.Context, m *mediator.Mediator, req Req) {
	if _, ok := send[Req, mediator.Unit](c, m, req); !ok {
		return
	}
	response.RespondNoContent(c)
}

// created answers a create command with {"id": ...}.
func created[Req any](c *gin.Context, m *mediator.Mediator, req Req) {
	id, ok := send[Req, uuid.UUID](c, m, req)
	if !ok {
		return
	}
	response.RespondCreated(c, gin.H{"id": id})
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.RespondError(c, domainagg.NewError(domainagg.CodeValidation, "http.bind", "Request body is invalid: "+bindMessage(err), err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.RespondError(c, domainagg.NewError(domainagg.CodeValidation, "http.bind", "Query string is invalid: "+bindMessage(err), err))
		return false
	}
	return true
}

func bindMessage(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i > 0 {
		msg = msg[:i]
	}
	return msg
}

// pathID parses a uuid route parameter.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		response.RespondError(c, domainagg.ValidationFields("http.path", "Invalid route parameter", []domainagg.FieldError{
			{Property: name, Message: "'" + name + "' must be a valid GUID."},
		}))
		return uuid.Nil, false
	}
	return id, true
}

// queryID parses an optional uuid query parameter.
func queryID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.RespondError(c, domainagg.ValidationFields("http.query", "Invalid query parameter", []domainagg.FieldError{
			{Property: name, Message: "'" + name + "' must be a valid GUID."},
		}))
		return nil, false
	}
	return &id, true
}
