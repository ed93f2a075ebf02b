package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context carries the request context together with an optional open transaction.
// Repositories fall back to their own *gorm.DB when Tx is nil.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

func New(ctx context.Context) Context {
	return Context{Ctx: ctx}
}

// Context returns Ctx, or context.Background when unset.
func (c Context) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}
