package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing Portuguese labels
var FieldLabels = map[string]string{
	// User fields
	"Name":     "Nome",
	"Email":    "Email",
	"Course":   "Curso",
	"Password": "Senha",

	// Vaga fields
	"Titulo":       "Título",
	"Empresa":      "Empresa",
	"Descricao":    "Descrição",
	"Requisitos":   "Requisitos",
	"Salario":      "Salário",
	"Localizacao":  "Localização",
	"TipoContrato": "Tipo de contrato",
	"Curso":        "Curso",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.StructField())

	switch e.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s: Campo obrigatório", label)
	case "email":
		return fmt.Sprintf("%s: Formato de email inválido", label)
	case "min":
		return fmt.Sprintf("%s: Mínimo de %s caracteres", label, e.Param())
	case "max":
		return fmt.Sprintf("%s: Máximo de %s caracteres", label, e.Param())
	default:
		return fmt.Sprintf("%s: Validação falhou (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
