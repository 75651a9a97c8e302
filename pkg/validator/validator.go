package validator

import (
	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{
		validator: validator.New(),
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FormatValidationErrors maps each failing field, keyed by its namespace
// below the request struct (e.g. "Responsaveis[0].Nome"), to a message.
func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := fieldPath(e)
			switch e.Tag() {
			case "required":
				errors[field] = field + " é obrigatório"
			case "email":
				errors[field] = field + " deve ser um email válido"
			case "datetime":
				errors[field] = field + " deve estar no formato " + dateFormatLabel(e.Param())
			case "min":
				errors[field] = field + " deve ter no mínimo " + e.Param() + " caracteres"
			case "max":
				errors[field] = field + " deve ter no máximo " + e.Param() + " caracteres"
			default:
				errors[field] = field + " é inválido"
			}
		}
	}

	return errors
}

func fieldPath(e validator.FieldError) string {
	ns := e.StructNamespace()
	for i := 0; i < len(ns); i++ {
		if ns[i] == '.' {
			return ns[i+1:]
		}
	}
	return e.Field()
}

func dateFormatLabel(layout string) string {
	if layout == "2006-01-02" {
		return "AAAA-MM-DD"
	}
	return layout
}
