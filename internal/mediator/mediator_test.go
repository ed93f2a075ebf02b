package mediator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/observability"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

type pingQuery struct {
	Name string `json:"name" validate:"notblank,max=10"`
	Tier int    `json:"tier" validate:"gte=0,lte=3"`
}

type pingResult struct{ Greeting string }

type rangeCommand struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (c rangeCommand) Validate() []domainagg.FieldError {
	if c.To < c.From {
		return []domainagg.FieldError{{Property: "to", Message: "'to' must not precede 'from'."}}
	}
	return nil
}

func TestSendDispatchesToRegisteredHandler(t *testing.T) {
	m := New()
	Register(m, func(_ context.Context, q pingQuery) (pingResult, error) {
		return pingResult{Greeting: "hello " + q.Name}, nil
	})

	out, err := Send[pingQuery, pingResult](context.Background(), m, pingQuery{Name: "ada"})
	require.NoError(t, err)
	assert.Equal(t, "hello ada", out.Greeting)
}

func TestSendWithoutHandlerIsInternal(t *testing.T) {
	_, err := Send[pingQuery, pingResult](context.Background(), New(), pingQuery{Name: "x"})
	require.Error(t, err)
	assert.True(t, domainagg.IsCode(err, domainagg.CodeInternal))
	assert.Contains(t, domainagg.MessageOf(err), "pingQuery")
}

func TestRegisterTwicePanics(t *testing.T) {
	m := New()
	h := func(context.Context, pingQuery) (pingResult, error) { return pingResult{}, nil }
	Register(m, h)
	assert.Panics(t, func() { Register(m, h) })
}

func TestBehaviorsRunInRegistrationOrder(t *testing.T) {
	var trace []string
	mark := func(label string) Behavior {
		return func(ctx context.Context, name string, req any, next Next) (any, error) {
			trace = append(trace, label+">"+name)
			out, err := next(ctx)
			trace = append(trace, "<"+label)
			return out, err
		}
	}
	m := New(mark("outer"), mark("inner"))
	Register(m, func(context.Context, pingQuery) (pingResult, error) {
		trace = append(trace, "handler")
		return pingResult{}, nil
	})

	_, err := Send[pingQuery, pingResult](context.Background(), m, pingQuery{Name: "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer>pingQuery", "inner>pingQuery", "handler", "<inner", "<outer"}, trace)
}

func TestValidationBehaviorFailsFast(t *testing.T) {
	called := false
	m := New(Logging(logger.Nop()), Metrics(observability.NewMetrics()), Validating(NewValidator()))
	Register(m, func(context.Context, pingQuery) (pingResult, error) {
		called = true
		return pingResult{}, nil
	})

	_, err := Send[pingQuery, pingResult](context.Background(), m, pingQuery{Name: "   ", Tier: 9})
	require.Error(t, err)
	assert.False(t, called)
	assert.True(t, domainagg.IsCode(err, domainagg.CodeValidation))

	fields := domainagg.FieldsOf(err)
	require.Len(t, fields, 2)
	assert.Equal(t, "name", fields[0].Property)
	assert.Equal(t, "'name' must not be empty.", fields[0].Message)
	assert.Equal(t, "tier", fields[1].Property)
}

func TestValidationRunsSelfChecks(t *testing.T) {
	m := New(Validating(NewValidator()))
	Register(m, func(context.Context, rangeCommand) (int, error) { return 1, nil })

	_, err := Send[rangeCommand, int](context.Background(), m, rangeCommand{From: 5, To: 1})
	require.Error(t, err)
	assert.Equal(t, "to", domainagg.FieldsOf(err)[0].Property)

	n, err := Send[rangeCommand, int](context.Background(), m, rangeCommand{From: 1, To: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestHandlerErrorsPassThroughBehaviors(t *testing.T) {
	m := New(Logging(logger.Nop()), Metrics(nil))
	boom := errors.New("boom")
	Register(m, func(context.Context, pingQuery) (pingResult, error) { return pingResult{}, boom })

	_, err := Send[pingQuery, pingResult](context.Background(), m, pingQuery{Name: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestRequestName(t *testing.T) {
	assert.Equal(t, "pingQuery", RequestName(pingQuery{}))
	assert.Equal(t, "pingQuery", RequestName(&pingQuery{}))
	assert.Equal(t, "<nil>", RequestName(nil))
}
