package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"otica-store/internal/validation"
)

// Shared validator instance with the storefront's custom tags.
var validate = validation.New()

// DecodeAndValidate decodes a JSON request body and validates it against the
// struct's tags.
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return validate.Struct(v)
}

// FormatValidationErrors converts validator errors to field messages.
func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errors = append(errors, ValidationError{
				Field:   e.Field(),
				Message: fieldMessage(e),
			})
		}
	}

	return errors
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Por favor, preencha todos os campos obrigatórios."
	case "email":
		return "Formato de email inválido"
	case "brphone":
		return "Formato de telefone inválido. Use: (XX) XXXXX-XXXX"
	case "min":
		return "Senha deve ter pelo menos " + e.Param() + " caracteres"
	case "max":
		return "Valor muito longo"
	default:
		return "Valor inválido"
	}
}
