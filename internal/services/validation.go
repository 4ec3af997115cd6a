package services

import (
	"reflect"
	"strings"

	"procurement-service/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateInput runs the struct tags of in and turns the first failure into
// a ValidationError with a readable message.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return domain.ErrValidation.Wrap(err)
	}

	fe := ves[0]
	switch fe.Tag() {
	case "required":
		return domain.ErrValidation
	case "email":
		return domain.ErrValidation.WithMessage("Invalid email address")
	case "oneof":
		return domain.ErrValidation.WithMessage(fe.Field() + " must be one of: " + fe.Param())
	case "gt":
		return domain.ErrValidation.WithMessage(fe.Field() + " must be greater than " + fe.Param())
	case "gte":
		return domain.ErrValidation.WithMessage(fe.Field() + " must not be negative")
	default:
		return domain.ErrValidation.WithMessage("Invalid " + fe.Field())
	}
}

func requirePositive(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return domain.ErrValidation.WithMessage(field + " must be greater than 0")
	}
	return nil
}

func requireNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return domain.ErrValidation.WithMessage(field + " must not be negative")
	}
	return nil
}

// storeError passes AppErrors through and reports anything else as a store failure.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return domain.ErrStore.Wrap(err)
}
