// Package features holds the dependencies shared by the command and query
// handlers under internal/features/<area>.
package features

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/cleanarch-backend/internal/data/repos"
	"github.com/yungbote/cleanarch-backend/internal/data/uow"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/platform/ctxutil"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
	"github.com/yungbote/cleanarch-backend/internal/services"
)

type Deps struct {
	Log       *logger.Logger
	Repos     repos.Set
	UoW       *uow.UnitOfWork
	Notifier  services.Notifier
	Tokens    services.TokenService
	Passwords services.PasswordHasher
	Clock     func() time.Time
}

func (d Deps) Now() time.Time {
	if d.Clock == nil {
		return time.Now().UTC()
	}
	return d.Clock().UTC()
}

// CurrentUser returns the authenticated caller or an unauthorized error.
func CurrentUser(ctx context.Context, op string) (*ctxutil.RequestData, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, domainagg.Unauthorized(op, "Authentication required")
	}
	return rd, nil
}

// RequireRole returns the caller when they hold role.
func RequireRole(ctx context.Context, op, role string) (*ctxutil.RequestData, error) {
	rd, err := CurrentUser(ctx, op)
	if err != nil {
		return nil, err
	}
	if !rd.HasRole(role) {
		return nil, domainagg.Forbidden(op, "You do not have permission to perform this action")
	}
	return rd, nil
}

// NotFound reports a missing entity by kind and id.
func NotFound(op, kind string, id uuid.UUID) error {
	return domainagg.NotFound(op, kind+" with ID "+id.String()+" not found")
}

// Read normalizes errors coming from read-only repository calls.
func Read(op string, err error) error {
	return uow.MapError(op, err)
}

// Page clamps a caller-supplied limit.
func Page(limit, def, max int) int {
	switch {
	case limit <= 0:
		return def
	case limit > max:
		return max
	default:
		return limit
	}
}
