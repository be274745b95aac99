package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type questionDTO struct {
	Question string `json:"question" validate:"required,max=10"`
}

func TestValidateDTO(t *testing.T) {
	require.NoError(t, ValidateDTO(&questionDTO{Question: "hola"}))

	err := ValidateDTO(&questionDTO{})
	require.Error(t, err)
	assert.Equal(t, "el campo [question] no cumple la regla [required]", err.Error())

	err = ValidateDTO(&questionDTO{Question: strings.Repeat("a", 11)})
	require.Error(t, err)
	assert.Equal(t, "el campo [question] no cumple la regla [max=10]", err.Error())
}
