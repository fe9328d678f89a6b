package validation_test

import (
	"errors"
	"testing"

	"go-jobboard-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `validate:"notblank"`
	Email string  `validate:"notblank,email"`
	Curso *string `validate:"omitempty,notblank"`
}

func TestNotBlank(t *testing.T) {
	v := validation.New()

	err := v.Struct(sample{Name: "   ", Email: "ana@x.com"})
	require.Error(t, err)
	assert.Equal(t, []string{"Nome: Campo obrigatório"}, validation.FormatValidationErrors(err))

	assert.NoError(t, v.Struct(sample{Name: "Ana", Email: "ana@x.com"}))
}

func TestEmailMessage(t *testing.T) {
	v := validation.New()

	err := v.Struct(sample{Name: "Ana", Email: "not-an-email"})
	require.Error(t, err)
	assert.Equal(t, []string{"Email: Formato de email inválido"}, validation.FormatValidationErrors(err))
}

func TestOptionalPointer(t *testing.T) {
	v := validation.New()
	blank := " "
	set := "CS"

	assert.NoError(t, v.Struct(sample{Name: "Ana", Email: "ana@x.com"}))
	assert.NoError(t, v.Struct(sample{Name: "Ana", Email: "ana@x.com", Curso: &set}))
	assert.Error(t, v.Struct(sample{Name: "Ana", Email: "ana@x.com", Curso: &blank}))
}

func TestFormatValidationErrorsFallback(t *testing.T) {
	assert.Equal(t, []string{"boom"}, validation.FormatValidationErrors(errors.New("boom")))
}

func TestUnknownFieldLabel(t *testing.T) {
	type other struct {
		MaxAttempts string `validate:"notblank"`
	}
	err := validation.New().Struct(other{})
	require.Error(t, err)
	assert.Equal(t, []string{"Max Attempts: Campo obrigatório"}, validation.FormatValidationErrors(err))
}
