package ctxutil

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// SystemActor is recorded in audit columns when no authenticated principal exists.
const SystemActor = "system"

type requestDataKey struct{}

// RequestData is the authenticated principal attached by the auth middleware.
type RequestData struct {
	UserID      uuid.UUID
	Username    string
	Email       string
	FullName    string
	Roles       []string
	TokenString string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

func (rd *RequestData) HasRole(role string) bool {
	if rd == nil {
		return false
	}
	return slices.ContainsFunc(rd.Roles, func(r string) bool {
		return strings.EqualFold(r, role)
	})
}

// Actor names whoever is acting in ctx for audit stamping.
func Actor(ctx context.Context) string {
	rd := GetRequestData(ctx)
	if rd == nil {
		return SystemActor
	}
	if name := strings.TrimSpace(rd.Username); name != "" {
		return name
	}
	if rd.UserID != uuid.Nil {
		return rd.UserID.String()
	}
	return SystemActor
}
