package htmlsanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-cv-backend/pkg/htmlsanitize"
)

func TestSanitize(t *testing.T) {
	assert.Equal(t, "", htmlsanitize.Sanitize(""))
	assert.Equal(t, "Chef de projet", htmlsanitize.Sanitize("Chef de projet"))
	assert.Equal(t, "<p><strong>Go</strong> et <em>SQL</em></p>",
		htmlsanitize.Sanitize("<p><strong>Go</strong> et <em>SQL</em></p>"))
	assert.Equal(t, "<p>Bonjour</p>", htmlsanitize.Sanitize("<p>Bonjour</p><script>alert(1)</script>"))
	assert.NotContains(t, htmlsanitize.Sanitize(`<a href="javascript:alert(1)">x</a>`), "javascript:")
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Merci de mettre à jour", htmlsanitize.PlainText("<b>Merci</b> de mettre à jour"))
}
