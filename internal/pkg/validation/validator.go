package validation

import (
	"errors"
	"reflect"
	"strings"

	"jamii/internal/pkg/errs"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Validator struct {
	validate *validatorv10.Validate
}

// New настраивает валидатор DTO: имена полей берутся из json-тегов,
// decimal.Decimal проверяется как число.
func New() *Validator {
	v := validatorv10.New()

	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	return &Validator{validate: v}
}

// Struct возвращает ошибку вида errs.ErrValidation с перечнем невалидных полей.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validatorv10.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.New(errs.ErrValidation, err.Error())
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, describe(fe))
	}
	return errs.New(errs.ErrValidation, "invalid request: "+strings.Join(fields, "; "))
}

func describe(fe validatorv10.FieldError) string {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min", "gte":
		return field + " must be at least " + fe.Param()
	case "max", "lte":
		return field + " must be at most " + fe.Param()
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "len":
		return field + " must have length " + fe.Param()
	case "oneof":
		return field + " must be one of [" + fe.Param() + "]"
	default:
		return field + " failed " + fe.Tag()
	}
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func decimalValue(field reflect.Value) any {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	f, _ := d.Float64()
	return f
}
