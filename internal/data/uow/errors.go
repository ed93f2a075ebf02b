package uow

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
)

const (
	conflictMessage     = "A record with the same unique value already exists"
	preconditionMessage = "A referenced record does not exist"
)

// MapError maps infrastructure failures onto domain error codes. Errors that
// already carry a code pass through untouched.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *domainagg.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainagg.Wrap(domainagg.CodeNotFound, op, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainagg.NewError(domainagg.CodeConflict, op, conflictMessage, err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domainagg.NewError(domainagg.CodePreconditionFailed, op, preconditionMessage, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return domainagg.NewError(domainagg.CodeConflict, op, conflictMessage, err) // unique_violation
		case "23503":
			return domainagg.NewError(domainagg.CodePreconditionFailed, op, preconditionMessage, err) // foreign_key_violation
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "already exists"),
		strings.Contains(msg, "unique constraint failed"):
		return domainagg.NewError(domainagg.CodeConflict, op, conflictMessage, err)
	case strings.Contains(msg, "foreign key constraint failed"):
		return domainagg.NewError(domainagg.CodePreconditionFailed, op, preconditionMessage, err)
	default:
		return domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
}

func errorStatus(err error) string {
	if err == nil {
		return "success"
	}
	code := strings.TrimSpace(string(domainagg.CodeOf(err)))
	if code == "" {
		return "failure"
	}
	return code
}
