package mediator

import (
	"context"
	"time"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/observability"
	"github.com/yungbote/cleanarch-backend/internal/platform/ctxutil"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

// Logging records start, end and duration of every request. Expected
// failures log at warn, everything else at error.
func Logging(log *logger.Logger) Behavior {
	log = log.With("component", "Mediator")
	return func(ctx context.Context, name string, req any, next Next) (any, error) {
		kv := []any{"request", name, "actor", ctxutil.Actor(ctx)}
		if td := ctxutil.GetTraceData(ctx); td != nil {
			kv = append(kv, "request_id", td.RequestID)
		}
		log.Debug("Handling request", kv...)
		start := time.Now()
		out, err := next(ctx)
		kv = append(kv, "duration_ms", time.Since(start).Milliseconds())
		switch code := domainagg.CodeOf(err); {
		case err == nil:
			log.Info("Handled request", kv...)
		case code != "" && code != domainagg.CodeInternal:
			log.Warn("Request failed", append(kv, "code", code, "error", err)...)
		default:
			log.Error("Request errored", append(kv, "error", err)...)
		}
		return out, err
	}
}

// Metrics observes request latency labelled by outcome.
func Metrics(metrics *observability.Metrics) Behavior {
	return func(ctx context.Context, name string, req any, next Next) (any, error) {
		start := time.Now()
		out, err := next(ctx)
		status := "ok"
		if err != nil {
			status = string(domainagg.CodeOf(err))
			if status == "" {
				status = string(domainagg.CodeInternal)
			}
		}
		metrics.ObserveMediatorRequest(name, status, time.Since(start))
		return out, err
	}
}

// Validating fails fast with a validation error before the handler runs.
func Validating(v *Validator) Behavior {
	return func(ctx context.Context, name string, req any, next Next) (any, error) {
		if err := v.Validate(ctx, name, req); err != nil {
			return nil, err
		}
		return next(ctx)
	}
}
