package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Nome string `validate:"required"`
}

type form struct {
	DataNasc string `validate:"omitempty,datetime=2006-01-02"`
	Email    string `validate:"omitempty,email"`
	Rows     []row  `validate:"dive"`
}

func TestValidate_Valid(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&form{DataNasc: "1990-05-20"}))
	assert.NoError(t, v.Validate(&form{}))
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&form{DataNasc: "20/05/1990", Email: "x", Rows: []row{{}}})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "DataNasc deve estar no formato AAAA-MM-DD", errs["DataNasc"])
	assert.Equal(t, "Email deve ser um email válido", errs["Email"])
	assert.Equal(t, "Rows[0].Nome é obrigatório", errs["Rows[0].Nome"])
}
