package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Prenom     string `validate:"required,valid_name"`
	Telephone  string `validate:"omitempty,valid_phone"`
	CVLanguage string `validate:"omitempty,cv_language"`
	Email      string `validate:"required,email"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

func TestCustomRules(t *testing.T) {
	v := newValidator()

	ok := sample{Prenom: "Jean-Édouard d'Arc", Telephone: "+33 6 12 34 56 78", CVLanguage: "en", Email: "j@example.com"}
	assert.NoError(t, v.Struct(ok))

	bad := sample{Prenom: "R2D2", Telephone: "12ab", CVLanguage: "de", Email: "j@example.com"}
	err := v.Struct(bad)
	require.Error(t, err)

	msgs := FormatValidationErrors(err)
	assert.Len(t, msgs, 3)
	assert.Contains(t, msgs[0], "Prénom")
	assert.Contains(t, msgs[1], "Téléphone")
	assert.Contains(t, msgs[2], "fr ou en")
}

func TestFormatValidationErrors_Required(t *testing.T) {
	err := newValidator().Struct(sample{})
	require.Error(t, err)

	msgs := FormatValidationErrors(err)
	assert.Contains(t, msgs, "Prénom : champ obligatoire")
	assert.Contains(t, msgs, "Email : champ obligatoire")
}

func TestFormatCamelCase(t *testing.T) {
	assert.Equal(t, "Filter Name", getFieldLabel("FilterName"))
}
