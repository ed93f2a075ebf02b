package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
)

// SelfValidating requests add checks struct tags cannot express, such as
// cross-field rules.
type SelfValidating interface {
	Validate() []domainagg.FieldError
}

type Validator struct {
	v *validator.Validate
}

// NewValidator reports failing fields by their JSON name.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return true
		}
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &Validator{v: v}
}

func (val *Validator) Validate(ctx context.Context, name string, req any) error {
	var fields []domainagg.FieldError
	if isStruct(req) {
		err := val.v.StructCtx(ctx, req)
		var verrs validator.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			for _, fe := range verrs {
				fields = append(fields, domainagg.FieldError{Property: fe.Field(), Message: fieldMessage(fe)})
			}
		case err != nil:
			return domainagg.NewError(domainagg.CodeInternal, name, "request validation failed", err)
		}
	}
	if sv, ok := req.(SelfValidating); ok {
		fields = append(fields, sv.Validate()...)
	}
	if len(fields) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f.Message)
	}
	return domainagg.ValidationFields(name, strings.Join(msgs, " "), fields)
}

func isStruct(req any) bool {
	t := reflect.TypeOf(req)
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Pointer {
		if reflect.ValueOf(req).IsNil() {
			return false
		}
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("'%s' must not be empty.", field)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("'%s' must be %s characters or fewer.", field, fe.Param())
		}
		return fmt.Sprintf("'%s' must be less than or equal to %s.", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("'%s' must be at least %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("'%s' must be greater than or equal to %s.", field, fe.Param())
	case "len":
		return fmt.Sprintf("'%s' must be exactly %s characters.", field, fe.Param())
	case "email":
		return fmt.Sprintf("'%s' is not a valid email address.", field)
	case "oneof":
		return fmt.Sprintf("'%s' must be one of: %s.", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt", "gte", "lt", "lte":
		return fmt.Sprintf("'%s' is out of range (%s %s).", field, fe.Tag(), fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("'%s' must be a valid id.", field)
	case "eqfield":
		return fmt.Sprintf("'%s' must match '%s'.", field, fe.Param())
	default:
		return fmt.Sprintf("'%s' is invalid (%s).", field, fe.Tag())
	}
}
